package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"campustrace/auth"
	"campustrace/campus"
	"campustrace/config"
	"campustrace/database"
	"campustrace/embedding"
	"campustrace/matching"
	"campustrace/metrics"
	"campustrace/middleware"
	"campustrace/models"
)

type testEnv struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	db     *sql.DB
	signer *auth.Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		AllowedEmailDomain: "college.edu",
		AppBaseURL:         "http://localhost:8080",
	}
	service := database.NewService(db)
	signer := auth.NewSigner("test-secret")
	boundary := campus.Boundary{CenterLat: 28.6139, CenterLng: 77.209, RadiusMeters: 1200}
	collector := metrics.NewCollector(prometheus.NewRegistry())
	matcher := matching.NewMatcher(service, service, embedding.Disabled(), collector)

	h := NewHandlers(service, matcher, signer, boundary, cfg, collector)

	router := gin.New()
	router.GET("/health", h.HealthCheck)
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(signer))
	protected.POST("/items", h.CreateItem)
	protected.GET("/matches", h.ListMatches)

	return &testEnv{router: router, mock: mock, db: db, signer: signer}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.signer.Sign(models.User{ID: userID, Name: "Test", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", w.Code)
	}
}

func itemPayload(lat, lng float64) []byte {
	payload := map[string]any{
		"kind":          "LOST",
		"title":         "Black iPhone 13",
		"description":   "black phone with a cracked corner",
		"category":      "Phone",
		"date_occurred": "2026-02-20T10:00:00Z",
		"latitude":      lat,
		"longitude":     lng,
	}
	body, _ := json.Marshal(payload)
	return body
}

func TestCreateItemRejectsOffCampusCoordinates(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(itemPayload(28.9, 77.5)))
	req.Header.Set("Authorization", "Bearer "+env.token(t, "alice"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for off-campus coordinates, got %d", w.Code)
	}
}

func TestCreateItemRejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader([]byte(`{"kind":"MISPLACED"}`)))
	req.Header.Set("Authorization", "Bearer "+env.token(t, "alice"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid payload, got %d", w.Code)
	}
}

func TestCreateItemRunsMatchingPass(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery("SELECT 1 FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	env.mock.ExpectExec("INSERT INTO items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// No open FOUND candidates: the pass completes with zero matches.
	env.mock.ExpectQuery("SELECT (.+) FROM items WHERE kind = (.+) AND status = (.+) LIMIT (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "title", "description",
			"category", "image_url", "image_hash", "date_occurred", "latitude", "longitude",
			"reward", "qr_token", "status", "created_at"}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(itemPayload(28.6140, 77.2091)))
	req.Header.Set("Authorization", "Bearer "+env.token(t, "alice"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		PotentialMatches int `json:"potential_matches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PotentialMatches != 0 {
		t.Errorf("expected 0 potential matches, got %d", resp.PotentialMatches)
	}
	if err := env.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDuplicatePostRejected(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery("SELECT 1 FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(itemPayload(28.6140, 77.2091)))
	req.Header.Set("Authorization", "Bearer "+env.token(t, "alice"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate post, got %d", w.Code)
	}
}
