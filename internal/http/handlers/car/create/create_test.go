package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-market/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Save(ctx context.Context, car models.Car, acting models.UserIdentity) (*models.Car, error) {
	args := m.Called(ctx, car, acting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	identity := models.UserIdentity{UID: "u1", Username: "seller", Fullname: "Seller One"}

	tests := []struct {
		name           string
		requestBody    string
		loggedIn       bool
		setupMock      func(*MockService)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:        "успешное создание объявления",
			requestBody: `{"vendor":"Tesla","speed":"200","price":"50000"}`,
			loggedIn:    true,
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, models.Car{Vendor: "Tesla", Speed: 200, Price: 50000}, mock.AnythingOfType("models.UserIdentity")).
					Return(&models.Car{
						ID:     "car1",
						Vendor: "Tesla",
						Speed:  200,
						Price:  50000,
						Owner:  models.Owner{UID: "u1", Fullname: "Seller One"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var car models.Car
				require.NoError(t, json.Unmarshal(body, &car))
				assert.Equal(t, "car1", car.ID)
				assert.Equal(t, float64(50000), car.Price)
				assert.Equal(t, "u1", car.Owner.UID)
			},
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			loggedIn:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "нечисловая цена",
			requestBody:    `{"vendor":"Tesla","speed":"200","price":"expensive"}`,
			loggedIn:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "отсутствует производитель",
			requestBody:    `{"speed":200,"price":50000}`,
			loggedIn:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    `{"vendor":"Tesla","speed":200,"price":50000}`,
			loggedIn:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "ошибка сервиса",
			requestBody: `{"vendor":"Tesla","speed":200,"price":50000}`,
			loggedIn:    true,
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/car", bytes.NewReader([]byte(tt.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			if tt.loggedIn {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, identity))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkBody != nil {
				tt.checkBody(t, rec.Body.Bytes())
			}
			mockService.AssertExpectations(t)
		})
	}
}
