package score

import (
	"bytes"
	"context"
	"encoding/json"
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
	authservices "github.com/magabrotheeeer/car-market/internal/services/auth"
)

// MockService реализует интерфейс score.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AdjustScore(ctx context.Context, userUID string, diff int) (*models.User, string, error) {
	args := m.Called(ctx, userUID, diff)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func TestScoreHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	identity := models.UserIdentity{UID: "u1", Username: "ivan", Fullname: "Ivan Petrov"}

	tests := []struct {
		name           string
		requestBody    string
		loggedIn       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectCookie   bool
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:        "списание в пределах баланса",
			requestBody: `{"diff":-50}`,
			loggedIn:    true,
			setupMock: func(m *MockService) {
				m.On("AdjustScore", mock.Anything, "u1", -50).
					Return(&models.User{UID: "u1", Username: "ivan", Score: 50}, "fresh-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
			checkBody: func(t *testing.T, body []byte) {
				var user models.User
				require.NoError(t, json.Unmarshal(body, &user))
				assert.Equal(t, 50, user.Score)
			},
		},
		{
			name:        "недостаточно кредита",
			requestBody: `{"diff":-200}`,
			loggedIn:    true,
			setupMock: func(m *MockService) {
				m.On("AdjustScore", mock.Anything, "u1", -200).
					Return(nil, "", authservices.ErrInsufficientCredit)
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"Error","error":"no credit"}`, string(body))
			},
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    `{"diff":-50}`,
			loggedIn:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"Error","error":"no logged in user"}`, string(body))
			},
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			loggedIn:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/user", bytes.NewReader([]byte(tt.requestBody)))
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

			var cookie *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == middlewarectx.CookieName {
					cookie = c
				}
			}
			if tt.expectCookie {
				require.NotNil(t, cookie)
				assert.Equal(t, "fresh-token", cookie.Value)
			} else {
				assert.Nil(t, cookie)
			}
			mockService.AssertExpectations(t)
		})
	}
}
