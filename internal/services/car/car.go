// Package services содержит бизнес-логику для управления объявлениями и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/car-market/internal/models"
)

// ErrNotOwner возвращается при попытке изменить или удалить чужое объявление.
var ErrNotOwner = errors.New("car does not belong to user")

// CarRepository определяет методы для работы с объявлениями в хранилище.
type CarRepository interface {
	// CreateCar добавляет новое объявление и возвращает его с присвоенным ID.
	CreateCar(ctx context.Context, car models.Car) (*models.Car, error)
	// GetCar возвращает объявление по ID.
	GetCar(ctx context.Context, id string) (*models.Car, error)
	// UpdateCar заменяет объявление по ID.
	UpdateCar(ctx context.Context, car models.Car) (*models.Car, error)
	// DeleteCar удаляет объявление по ID.
	DeleteCar(ctx context.Context, id string) error
	// ListCars возвращает объявления, удовлетворяющие фильтру.
	ListCars(ctx context.Context, filter models.CarFilter) ([]*models.Car, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события активности объявлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// CarService реализует бизнес-логику работы с объявлениями,
// включая проверку владельца, кеширование и публикацию событий.
type CarService struct {
	repo   CarRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewCarService создает новый экземпляр CarService.
// events может быть nil, тогда события не публикуются.
func NewCarService(repo CarRepository, cache Cache, events EventPublisher, log *slog.Logger) *CarService {
	return &CarService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// List возвращает объявления по фильтру: подстрока производителя
// без учёта регистра и верхняя граница цены, объединённые через AND.
func (s *CarService) List(ctx context.Context, filter models.CarFilter) ([]*models.Car, error) {
	return s.repo.ListCars(ctx, filter)
}

// Get возвращает объявление по ID, используя кеш или репозиторий.
func (s *CarService) Get(ctx context.Context, id string) (*models.Car, error) {
	var result *models.Car
	cacheKey := fmt.Sprintf("car:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache car", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Save создаёт или обновляет объявление.
// Без ID — вставка с владельцем, равным действующему пользователю.
// С ID — замена по ID, разрешённая только владельцу: чужая запись
// завершается ErrNotOwner и остаётся без изменений.
func (s *CarService) Save(ctx context.Context, car models.Car, acting models.UserIdentity) (*models.Car, error) {
	if car.ID == "" {
		car.Owner = acting.AsOwner()
		created, err := s.repo.CreateCar(ctx, car)
		if err != nil {
			return nil, err
		}
		s.log.Info("created new car", slog.String("id", created.ID))
		s.cacheCar(created)
		s.publish("car.created", created)
		return created, nil
	}

	existing, err := s.repo.GetCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	if existing.Owner.UID != acting.UID {
		return nil, ErrNotOwner
	}
	// Владелец и сообщения не переписываются данными клиента.
	car.Owner = existing.Owner
	if car.Msgs == nil {
		car.Msgs = existing.Msgs
	}
	updated, err := s.repo.UpdateCar(ctx, car)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated car", slog.String("id", updated.ID))
	s.cacheCar(updated)
	return updated, nil
}

// Remove удаляет объявление. Разрешено только владельцу.
func (s *CarService) Remove(ctx context.Context, id string, acting models.UserIdentity) error {
	existing, err := s.repo.GetCar(ctx, id)
	if err != nil {
		return err
	}
	if existing.Owner.UID != acting.UID {
		return ErrNotOwner
	}

	cacheKey := fmt.Sprintf("car:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if err := s.repo.DeleteCar(ctx, id); err != nil {
		return err
	}
	s.log.Info("removed car", slog.String("id", id))
	s.publish("car.removed", existing)
	return nil
}

func (s *CarService) cacheCar(car *models.Car) {
	cacheKey := fmt.Sprintf("car:%s", car.ID)
	if err := s.cache.Set(cacheKey, car, time.Hour); err != nil {
		s.log.Warn("failed to cache car", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

func (s *CarService) publish(routingKey string, car *models.Car) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, car); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), slog.Any("err", err))
	}
}
