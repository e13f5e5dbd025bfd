package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

func TestClient_SearchProfiles(t *testing.T) {
	var got models.SearchRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constants.ProfileSearchPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get(constants.HeaderAuthorization)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		profiles := []*models.Profile{{ID: "AB12CD34", Name: "Asha", Age: 28}}
		utils.List(w, models.SearchResponse{Profiles: profiles}, len(profiles))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	filters := models.FilterCriteria{AgeMin: 25, AgeMax: 30, Religion: "Hinduism"}

	profiles, err := c.SearchProfiles(context.Background(), filters, "user-9")

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "AB12CD34", profiles[0].ID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.True(t, got.Filters.Equal(filters))
	assert.Equal(t, "user-9", got.ExcludeUserID)
}

func TestClient_SearchProfilesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(constants.HeaderAuthorization))
		utils.List(w, models.SearchResponse{}, 0)
	}))
	defer srv.Close()

	profiles, err := New(srv.URL).SearchProfiles(context.Background(), models.NewFilterCriteria(), "")

	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusBadRequest, constants.CodeValidationError, "Validation failed",
			map[string]string{"religion": "must be one of the catalog values"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchProfiles(context.Background(), models.FilterCriteria{Religion: "Nope"}, "")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, constants.CodeValidationError, apiErr.Code)
	assert.Contains(t, apiErr.Details, "religion")
	assert.True(t, IsAPIErrorCode(err, constants.CodeValidationError))
	assert.False(t, IsAPIErrorCode(err, constants.CodeNotFound))
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Catalog(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestClient_Featured(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		wantPath string
	}{
		{name: "server default", limit: 0, wantPath: constants.ProfileFeaturedPath},
		{name: "explicit limit", limit: 3, wantPath: constants.ProfileFeaturedPath + "/3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				profiles := []*models.Profile{{ID: "AAAA1111"}, {ID: "BBBB2222"}}
				utils.List(w, models.SearchResponse{Profiles: profiles}, len(profiles))
			}))
			defer srv.Close()

			profiles, err := New(srv.URL).Featured(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Len(t, profiles, 2)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestClient_LoginStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constants.AuthLoginPath, func(w http.ResponseWriter, r *http.Request) {
		var creds models.UserCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "Secret123!" {
			utils.Error(w, http.StatusUnauthorized, constants.CodeInvalidCredentials, "Invalid email or password", nil)
			return
		}
		utils.JSON(w, http.StatusOK, models.LoginResult{
			User:        &models.User{ID: "u1", Email: creds.Email},
			AccessToken: "jwt-token",
			TokenType:   constants.TokenTypeBearer,
			ExpiresIn:   3600,
		})
	})
	mux.HandleFunc(constants.AuthMePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constants.HeaderAuthorization) != "Bearer jwt-token" {
			utils.Error(w, http.StatusUnauthorized, constants.CodeUnauthorized, "Authentication required", nil)
			return
		}
		utils.JSON(w, http.StatusOK, models.User{ID: "u1", Email: "a@example.com"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL + "/")
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "wrong-pass")
	assert.True(t, IsAPIErrorCode(err, constants.CodeInvalidCredentials))
	assert.Empty(t, c.Token())

	_, err = c.Me(ctx)
	assert.True(t, IsAPIErrorCode(err, constants.CodeUnauthorized))

	result, err := c.Login(ctx, "a@example.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.AccessToken)
	assert.Equal(t, "jwt-token", c.Token())

	user, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestClient_CatalogAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constants.CatalogPath, func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string][]string{"gender": {"Male", "Female"}})
	})
	mux.HandleFunc(constants.ProfilesBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != constants.ProfilesBasePath+"/AB12CD34" {
			utils.NotFound(w, "Profile not found")
			return
		}
		utils.JSON(w, http.StatusOK, models.Profile{ID: "AB12CD34", Name: "Asha"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	lists, err := c.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Male", "Female"}, lists["gender"])

	profile, err := c.GetProfile(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.Name)

	_, err = c.GetProfile(ctx, "ZZZZ9999")
	assert.True(t, IsAPIErrorCode(err, constants.CodeNotFound))
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL, WithTimeout(time.Second)).Featured(ctx, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, constants.DefaultAPIBaseURL, c.BaseURL())

	hc := &http.Client{Timeout: time.Second}
	c = New("http://example.test/", WithHTTPClient(hc))
	assert.Equal(t, "http://example.test", c.BaseURL())
	assert.Same(t, hc, c.httpClient)
}
