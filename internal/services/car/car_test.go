package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-market/internal/models"
	"github.com/magabrotheeeer/car-market/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCar(ctx context.Context, car models.Car) (*models.Car, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}
func (m *RepoMock) GetCar(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}
func (m *RepoMock) UpdateCar(ctx context.Context, car models.Car) (*models.Car, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}
func (m *RepoMock) DeleteCar(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) ListCars(ctx context.Context, filter models.CarFilter) ([]*models.Car, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var (
	ownerIdentity = models.UserIdentity{UID: "u1", Username: "seller", Fullname: "Seller One"}
	otherIdentity = models.UserIdentity{UID: "u2", Username: "stranger", Fullname: "Stranger Two"}
)

func TestCarService_Save_CreatesWithOwner(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	events := new(EventsMock)
	svc := NewCarService(repo, cacheMock, events, newNoopLogger())

	created := &models.Car{
		ID:     "car1",
		Vendor: "Tesla",
		Speed:  200,
		Price:  50000,
		Owner:  ownerIdentity.AsOwner(),
	}
	repo.On("CreateCar", mock.Anything, mock.MatchedBy(func(c models.Car) bool {
		return c.ID == "" && c.Owner.UID == "u1" && c.Owner.Fullname == "Seller One"
	})).Return(created, nil)
	cacheMock.On("Set", "car:car1", created, time.Hour).Return(nil)
	events.On("Publish", "car.created", created).Return(nil)

	got, err := svc.Save(context.Background(), models.Car{Vendor: "Tesla", Speed: 200, Price: 50000}, ownerIdentity)
	require.NoError(t, err)
	assert.Equal(t, "car1", got.ID)
	assert.Equal(t, "u1", got.Owner.UID)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCarService_Save_RejectsForeignCar(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	svc := NewCarService(repo, cacheMock, nil, newNoopLogger())

	existing := &models.Car{ID: "car1", Vendor: "Tesla", Owner: ownerIdentity.AsOwner()}
	repo.On("GetCar", mock.Anything, "car1").Return(existing, nil)

	_, err := svc.Save(context.Background(), models.Car{ID: "car1", Vendor: "Tesla", Price: 1}, otherIdentity)
	require.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "UpdateCar", mock.Anything, mock.Anything)
}

func TestCarService_Save_UpdatePreservesOwner(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	svc := NewCarService(repo, cacheMock, nil, newNoopLogger())

	existing := &models.Car{
		ID:     "car1",
		Vendor: "Tesla",
		Owner:  ownerIdentity.AsOwner(),
		Msgs:   []string{"first!"},
	}
	repo.On("GetCar", mock.Anything, "car1").Return(existing, nil)
	repo.On("UpdateCar", mock.Anything, mock.MatchedBy(func(c models.Car) bool {
		return c.Owner.UID == "u1" && len(c.Msgs) == 1
	})).Return(existing, nil)
	cacheMock.On("Set", "car:car1", existing, time.Hour).Return(nil)

	// Клиент прислал чужого владельца, он игнорируется.
	_, err := svc.Save(context.Background(), models.Car{
		ID:     "car1",
		Vendor: "Tesla",
		Price:  45000,
		Owner:  models.Owner{UID: "u99", Fullname: "Forged"},
	}, ownerIdentity)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCarService_Get_UsesCache(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	svc := NewCarService(repo, cacheMock, nil, newNoopLogger())

	cacheMock.On("Get", "car:car1", mock.Anything).Return(true, nil)

	_, err := svc.Get(context.Background(), "car1")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetCar", mock.Anything, mock.Anything)
}

func TestCarService_Get_FallsBackToRepo(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	svc := NewCarService(repo, cacheMock, nil, newNoopLogger())

	car := &models.Car{ID: "car1", Vendor: "Tesla"}
	cacheMock.On("Get", "car:car1", mock.Anything).Return(false, nil)
	repo.On("GetCar", mock.Anything, "car1").Return(car, nil)
	cacheMock.On("Set", "car:car1", car, time.Hour).Return(nil)

	got, err := svc.Get(context.Background(), "car1")
	require.NoError(t, err)
	assert.Equal(t, car, got)
}

func TestCarService_Remove(t *testing.T) {
	tests := []struct {
		name      string
		acting    models.UserIdentity
		setupMock func(repo *RepoMock, cacheMock *CacheMock, events *EventsMock)
		wantErr   error
	}{
		{
			name:   "владелец удаляет своё объявление",
			acting: ownerIdentity,
			setupMock: func(repo *RepoMock, cacheMock *CacheMock, events *EventsMock) {
				existing := &models.Car{ID: "car1", Owner: ownerIdentity.AsOwner()}
				repo.On("GetCar", mock.Anything, "car1").Return(existing, nil)
				cacheMock.On("Invalidate", "car:car1").Return(nil)
				repo.On("DeleteCar", mock.Anything, "car1").Return(nil)
				events.On("Publish", "car.removed", existing).Return(nil)
			},
		},
		{
			name:   "чужое объявление",
			acting: otherIdentity,
			setupMock: func(repo *RepoMock, _ *CacheMock, _ *EventsMock) {
				existing := &models.Car{ID: "car1", Owner: ownerIdentity.AsOwner()}
				repo.On("GetCar", mock.Anything, "car1").Return(existing, nil)
			},
			wantErr: ErrNotOwner,
		},
		{
			name:   "несуществующее объявление",
			acting: ownerIdentity,
			setupMock: func(repo *RepoMock, _ *CacheMock, _ *EventsMock) {
				repo.On("GetCar", mock.Anything, "car1").Return(nil, storage.ErrNotFound)
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cacheMock := new(CacheMock)
			events := new(EventsMock)
			tt.setupMock(repo, cacheMock, events)

			svc := NewCarService(repo, cacheMock, events, newNoopLogger())
			err := svc.Remove(context.Background(), "car1", tt.acting)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "DeleteCar", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				repo.AssertExpectations(t)
				events.AssertExpectations(t)
			}
		})
	}
}

func TestCarService_Remove_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	events := new(EventsMock)
	svc := NewCarService(repo, cacheMock, events, newNoopLogger())

	existing := &models.Car{ID: "car1", Owner: ownerIdentity.AsOwner()}
	repo.On("GetCar", mock.Anything, "car1").Return(existing, nil)
	cacheMock.On("Invalidate", "car:car1").Return(nil)
	repo.On("DeleteCar", mock.Anything, "car1").Return(nil)
	events.On("Publish", "car.removed", existing).Return(errors.New("broker down"))

	require.NoError(t, svc.Remove(context.Background(), "car1", ownerIdentity))
}

func TestCarService_List_PassesFilter(t *testing.T) {
	repo := new(RepoMock)
	svc := NewCarService(repo, new(CacheMock), nil, newNoopLogger())

	maxPrice := 100.0
	filter := models.CarFilter{Txt: "tes", MaxPrice: &maxPrice}
	repo.On("ListCars", mock.Anything, filter).Return([]*models.Car{}, nil)

	_, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
