package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/handlers"
	"github.com/vivahmatch/backend/internal/models"
)

func sampleProfiles() []*models.Profile {
	return []*models.Profile{
		{ID: "AAAA0001", Name: "Asha", Active: true},
		{ID: "AAAA0002", Name: "Meera", Active: true},
	}
}

func TestSearchHandler_SearchProfiles(t *testing.T) {
	t.Run("returns profiles without count metadata", func(t *testing.T) {
		svc := new(MockSearchService)
		svc.On("SearchProfiles", mock.Anything, mock.MatchedBy(func(r *models.SearchRequest) bool {
			return r.Filters.Religion == "Hindu" && r.ExcludeUserID == ""
		})).Return(sampleProfiles(), nil)

		body := map[string]interface{}{"filters": map[string]interface{}{"religion": "Hindu"}}
		rec := httptest.NewRecorder()
		handlers.NewSearchHandler(svc).SearchProfiles(rec, newRequest(t, http.MethodPost, constants.ProfileSearchPath, body, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Nil(t, env.Meta)
		assert.NotContains(t, rec.Body.String(), `"meta"`)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		require.Len(t, resp.Profiles, 2)
		assert.Equal(t, "AAAA0001", resp.Profiles[0].ID)
		svc.AssertExpectations(t)
	})

	t.Run("authenticated caller is excluded by default", func(t *testing.T) {
		svc := new(MockSearchService)
		svc.On("SearchProfiles", mock.Anything, mock.MatchedBy(func(r *models.SearchRequest) bool {
			return r.ExcludeUserID == "user-1"
		})).Return([]*models.Profile{}, nil)

		rec := httptest.NewRecorder()
		handlers.NewSearchHandler(svc).SearchProfiles(rec, newRequest(t, http.MethodPost, constants.ProfileSearchPath, map[string]interface{}{"filters": map[string]interface{}{}}, "user-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Nil(t, env.Meta)
		assert.JSONEq(t, `{"profiles":[]}`, string(env.Data))
		svc.AssertExpectations(t)
	})

	t.Run("explicit exclusion wins", func(t *testing.T) {
		svc := new(MockSearchService)
		svc.On("SearchProfiles", mock.Anything, mock.MatchedBy(func(r *models.SearchRequest) bool {
			return r.ExcludeUserID == "user-7"
		})).Return([]*models.Profile{}, nil)

		body := map[string]interface{}{"filters": map[string]interface{}{}, "excludeUserId": "user-7"}
		rec := httptest.NewRecorder()
		handlers.NewSearchHandler(svc).SearchProfiles(rec, newRequest(t, http.MethodPost, constants.ProfileSearchPath, body, "user-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockSearchService)

		rec := httptest.NewRecorder()
		handlers.NewSearchHandler(svc).SearchProfiles(rec, newRequest(t, http.MethodPost, constants.ProfileSearchPath, `{"filters":`, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, constants.CodeBadRequest, decodeEnvelope(t, rec).Error.Code)
		svc.AssertNotCalled(t, "SearchProfiles", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := new(MockSearchService)
		svc.On("SearchProfiles", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		rec := httptest.NewRecorder()
		handlers.NewSearchHandler(svc).SearchProfiles(rec, newRequest(t, http.MethodPost, constants.ProfileSearchPath, map[string]interface{}{"filters": map[string]interface{}{}}, ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constants.CodeInternalError, decodeEnvelope(t, rec).Error.Code)
	})
}

func TestSearchHandler_FeaturedProfiles(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		wantLimit  int
		wantStatus int
	}{
		{name: "no limit uses service default", limit: "", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "explicit limit", limit: "3", wantLimit: 3, wantStatus: http.StatusOK},
		{name: "zero is rejected", limit: "0", wantStatus: http.StatusBadRequest},
		{name: "negative is rejected", limit: "-2", wantStatus: http.StatusBadRequest},
		{name: "non numeric is rejected", limit: "six", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSearchService)
			if tt.wantStatus == http.StatusOK {
				svc.On("FeaturedProfiles", mock.Anything, tt.wantLimit).Return(sampleProfiles(), nil)
			}

			req := newRequest(t, http.MethodGet, constants.ProfileFeaturedPath, nil, "")
			if tt.limit != "" {
				req = withURLParams(req, map[string]string{constants.ParamLimit: tt.limit})
			}
			rec := httptest.NewRecorder()
			handlers.NewSearchHandler(svc).FeaturedProfiles(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, 2, env.Meta.Count)
			} else {
				assert.Equal(t, constants.CodeValidationError, env.Error.Code)
				assert.Contains(t, env.Error.Details, constants.ParamLimit)
			}
			svc.AssertExpectations(t)
		})
	}
}
