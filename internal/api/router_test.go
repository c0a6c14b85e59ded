package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/api/handlers/recipe"
	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *recipeService.Service) {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Enabled = false

	svc := recipeService.NewService(cfg, nil)
	router, err := SetupRouter(cfg, svc, nil)
	require.NoError(t, err)
	return router, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, r http.Handler) {
	t.Helper()
	for _, body := range []string{
		`{"title":"A","ingredients":["flour","water"],"instructions":"mix flour and water"}`,
		`{"title":"B","ingredients":["dough"],"instructions":"bake at 350 degrees"}`,
		`{"title":"C","ingredients":["everything"],"instructions":"mix all ingredients in a bowl"}`,
	} {
		w := do(r, http.MethodPost, "/api/v1/recipes", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestSetupRouter_RequiresService(t *testing.T) {
	_, err := SetupRouter(config.Default(), nil, nil)
	assert.Error(t, err)
}

func TestUnknownRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(r, http.MethodDelete, "/api/v1/recipes", "").Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := do(r, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["catalog_size"])
}

func TestUserRecommendation(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r)

	w := do(r, http.MethodPut, "/api/v1/users/JohnDoe/preferences", `{"instructions":"Mix all ingredients in a bowl"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/users/JohnDoe/recommendation", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recipe.RecommendationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "C", resp.Title)
	assert.InDelta(t, 1.0, resp.Score, 1e-9)
	assert.Equal(t, "Recommended Recipe: C", resp.Message)
}

func TestUserRecommendation_UnknownUser(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r)

	w := do(r, http.MethodGet, "/api/v1/users/nobody/recommendation", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/users/nobody/preferences", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/recommend", `{"instructions":"anything"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeNoRecommendation, resp.Code)
	assert.Equal(t, "No recipe recommendation available.", resp.Message)
}

func TestLikeCommentAndTop(t *testing.T) {
	r, svc := newTestRouter(t)
	seed(t, r)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/recipes/like", `{"title":"B"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/recipes/like", `{"title":"B"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/recipes/like", `{"title":"C"}`).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/recipes/comments", `{"title":"A","comment":"tasty"}`).Code)

	// 找不到的食譜不影響目錄
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/v1/recipes/like", `{"title":"Z"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/v1/recipes/comments", `{"title":"Z","comment":"?"}`).Code)
	assert.Equal(t, 3, svc.Catalog().Len())

	w := do(r, http.MethodGet, "/api/v1/recipes/top?n=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var top struct {
		Count   int                          `json:"count"`
		Recipes []recipeService.CatalogEntry `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))
	require.Equal(t, 2, top.Count)
	assert.Equal(t, "B", top.Recipes[0].Title())
	assert.Equal(t, 2, top.Recipes[0].Likes)
	assert.Equal(t, "C", top.Recipes[1].Title())

	entry, ok := svc.Catalog().Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"tasty"}, entry.Comments)
}

func TestRepeatedRequests_Accepted(t *testing.T) {
	r, svc := newTestRouter(t)
	seed(t, r)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/recipes/like", `{"title":"A"}`).Code)
		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/recipes/comments", `{"title":"A","comment":"again"}`).Code)
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/recommend", `{"instructions":"mix flour"}`).Code)
		assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/v1/users/JohnDoe/preferences", `{"instructions":"bake"}`).Code)
		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/recipes", `{"title":"D","instructions":"stir"}`).Code)
	}

	entry, ok := svc.Catalog().Get("A")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Likes)
	assert.Equal(t, []string{"again", "again"}, entry.Comments)
	// 同名食譜允許重複加入
	assert.Equal(t, 5, svc.Catalog().Len())
}

func TestScrapeRequests_Deduplicated(t *testing.T) {
	r, _ := newTestRouter(t)

	// 沒有 scraper 時第一次回傳 503，重複送出則在抓取前被擋下
	body := `{"url":"http://127.0.0.1/recipe"}`
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/api/v1/recipes", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/recipes", body).Code)

	imp := `{"urls":["http://127.0.0.1/recipe"]}`
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/api/v1/recipes/import", imp).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/recipes/import", imp).Code)
}

func TestTop_InvalidN(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/recipes/top?n=abc", "").Code)
}

func TestListRecipes(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r)

	w := do(r, http.MethodGet, "/api/v1/recipes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)
}

func TestAddRecipe_Invalid(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/recipes", `{"title":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/recipes", `not json`).Code)
}

func TestScraperRoutes_WithoutFetcher(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusServiceUnavailable,
		do(r, http.MethodPost, "/api/v1/recipes", `{"url":"http://127.0.0.1/recipe"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		do(r, http.MethodPost, "/api/v1/recipes/import", `{"urls":["http://127.0.0.1/recipe"]}`).Code)
}
