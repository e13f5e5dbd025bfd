package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/service"
)

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResult), args.Error(1)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileServiceInterface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateProfile(ctx context.Context, userID string, in *models.ProfileCreate) (*models.Profile, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, profileID, viewerUserID string) (*models.Profile, error) {
	args := m.Called(ctx, profileID, viewerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetMyProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID, profileID string, update *models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, userID, profileID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockSearchService is a mock implementation of SearchServiceInterface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) SearchProfiles(ctx context.Context, req *models.SearchRequest) ([]*models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockSearchService) FeaturedProfiles(ctx context.Context, limit int) ([]*models.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

// MockInterestService is a mock implementation of InterestServiceInterface
type MockInterestService struct {
	mock.Mock
}

func (m *MockInterestService) SendInterest(ctx context.Context, userID string, in *models.InterestCreate) (*models.Interest, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestService) RespondToInterest(ctx context.Context, userID, interestID, status string) (*models.Interest, error) {
	args := m.Called(ctx, userID, interestID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestService) ListReceived(ctx context.Context, userID, profileID string) ([]*models.Interest, error) {
	args := m.Called(ctx, userID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Interest), args.Error(1)
}

func (m *MockInterestService) ListSent(ctx context.Context, userID, profileID string) ([]*models.Interest, error) {
	args := m.Called(ctx, userID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Interest), args.Error(1)
}

// MockHealthService is a mock implementation of HealthServiceInterface
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (*service.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthStatus), args.Error(1)
}

// envelope mirrors utils.Response with a raw data payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Count int `json:"count"`
	} `json:"meta"`
}

// newRequest builds a request with an optional JSON body and authenticated user
func newRequest(t *testing.T, method, target string, body interface{}, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(auth.WithUser(req.Context(), userID, userID+"@example.com"))
	}
	return req
}

// withURLParams attaches chi route parameters to the request
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
