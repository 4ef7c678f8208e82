package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-market/internal/models"
	"github.com/magabrotheeeer/car-market/internal/storage"
)

// CreateCar сохраняет новое объявление и возвращает его с присвоенным ID.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (*models.Car, error) {
	const op = "repository.CreateCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	car.ID = uuid.NewString()
	msgs, err := json.Marshal(car.Msgs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO cars (uid, vendor, speed, price, owner_uid, owner_fullname, msgs)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		car.ID, car.Vendor, car.Speed, car.Price,
		car.Owner.UID, car.Owner.Fullname, msgs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &car, nil
}

// GetCar возвращает объявление по его ID.
func (s *Storage) GetCar(ctx context.Context, id string) (*models.Car, error) {
	const op = "repository.GetCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, vendor, speed, price, owner_uid, owner_fullname, msgs
			  FROM cars
			  WHERE uid = $1`
	car, err := scanCar(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return car, nil
}

// UpdateCar заменяет объявление по его ID.
func (s *Storage) UpdateCar(ctx context.Context, car models.Car) (*models.Car, error) {
	const op = "repository.UpdateCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	msgs, err := json.Marshal(car.Msgs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE cars
			  SET vendor = $1, speed = $2, price = $3, msgs = $4
			  WHERE uid = $5`
	res, err := s.DB.ExecContext(ctx, query,
		car.Vendor, car.Speed, car.Price, msgs, car.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &car, nil
}

// DeleteCar удаляет объявление по его ID.
func (s *Storage) DeleteCar(ctx context.Context, id string) error {
	const op = "repository.DeleteCar"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM cars WHERE uid = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ListCars возвращает объявления, удовлетворяющие фильтру.
// Подстрока производителя сравнивается без учёта регистра,
// ограничение по цене включительное; фильтры комбинируются через AND.
func (s *Storage) ListCars(ctx context.Context, filter models.CarFilter) ([]*models.Car, error) {
	const op = "repository.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, vendor, speed, price, owner_uid, owner_fullname, msgs
			  FROM cars`
	var conds []string
	var args []any
	if filter.Txt != "" {
		args = append(args, filter.Txt)
		conds = append(conds, fmt.Sprintf("vendor ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, car)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	var car models.Car
	var msgs []byte
	if err := row.Scan(&car.ID, &car.Vendor, &car.Speed, &car.Price,
		&car.Owner.UID, &car.Owner.Fullname, &msgs); err != nil {
		return nil, err
	}
	if len(msgs) > 0 {
		if err := json.Unmarshal(msgs, &car.Msgs); err != nil {
			return nil, err
		}
	}
	return &car, nil
}
