package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ankadev/tripnest/internal/auth"
	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/service"
	"github.com/ankadev/tripnest/internal/storage"
	"github.com/ankadev/tripnest/internal/storage/sqlite"
)

const testSecret = "test-secret-at-least-32-bytes-long!"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter builds the full stack on a temp database: store, services,
// verifier, router. The store is returned for direct fixture setup.
func setupRouter(t *testing.T) (*gin.Engine, storage.Store) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	router := NewRouter(
		service.NewChecklistService(store),
		service.NewItemService(store),
		auth.NewVerifier(testSecret),
	)
	return router, store
}

func newTestTrip(t *testing.T, store storage.Store) *models.Trip {
	t.Helper()

	trip := &models.Trip{Name: "Test Trip"}
	if err := store.CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return trip
}

// tokenFor mints a session token the way the external identity service does.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()

	claims := &auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// do performs a request as userID and decodes the JSON response into out
// (when out is non-nil).
func do(t *testing.T, router *gin.Engine, method, path, userID string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

type listResponse struct {
	Checklists []models.Checklist `json:"checklists"`
}

type itemsResponse struct {
	Items []models.Item `json:"items"`
}

func TestAuthRequired(t *testing.T) {
	router, store := setupRouter(t)
	trip := newTestTrip(t, store)

	t.Run("missing token", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/v1/trips/"+trip.ID+"/checklists", "", nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/trips/"+trip.ID+"/checklists", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("healthz is open", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/healthz", "", nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestListChecklistsProvisionsDefaults(t *testing.T) {
	router, store := setupRouter(t)
	trip := newTestTrip(t, store)

	var resp listResponse
	rec := do(t, router, http.MethodGet, "/v1/trips/"+trip.ID+"/checklists", "user-a", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(resp.Checklists) != 2 {
		t.Fatalf("expected 2 provisioned checklists, got %d", len(resp.Checklists))
	}

	var sawPersonal, sawGroup bool
	for _, c := range resp.Checklists {
		switch c.Type {
		case models.ChecklistTypePersonal:
			sawPersonal = true
			if c.OwnerID != "user-a" {
				t.Errorf("personal checklist owner: expected user-a, got %q", c.OwnerID)
			}
		case models.ChecklistTypeGroup:
			sawGroup = true
		}
	}
	if !sawPersonal || !sawGroup {
		t.Error("expected one personal and one group checklist")
	}
}

func TestListChecklistsUnknownTrip(t *testing.T) {
	router, _ := setupRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/trips/no-such-trip/checklists", "user-a", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestVisibilityAcrossUsers(t *testing.T) {
	router, store := setupRouter(t)
	trip := newTestTrip(t, store)

	// user-a visits first and provisions a personal checklist.
	do(t, router, http.MethodGet, "/v1/trips/"+trip.ID+"/checklists", "user-a", nil, nil)

	var forB listResponse
	do(t, router, http.MethodGet, "/v1/trips/"+trip.ID+"/checklists", "user-b", nil, &forB)
	for _, c := range forB.Checklists {
		if c.Type == models.ChecklistTypePersonal && c.OwnerID != "user-b" {
			t.Errorf("user-b received %s's personal checklist", c.OwnerID)
		}
	}
}

func TestCreateChecklistEndpoint(t *testing.T) {
	router, store := setupRouter(t)
	trip := newTestTrip(t, store)

	t.Run("invalid type", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/v1/trips/"+trip.ID+"/checklists", "user-a",
			gin.H{"name": "Packing", "type": "shared"}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		var created models.Checklist
		rec := do(t, router, http.MethodPost, "/v1/trips/"+trip.ID+"/checklists", "user-a",
			gin.H{"name": "Packing", "type": "personal"}, &created)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if created.Name != "Packing" || created.OwnerID != "user-a" {
			t.Errorf("unexpected checklist: %+v", created)
		}
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/v1/trips/"+trip.ID+"/checklists", "user-a",
			gin.H{"name": "Another", "type": "personal"}, nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})
}

func TestItemEndpoints(t *testing.T) {
	router, store := setupRouter(t)
	trip := newTestTrip(t, store)

	var created models.Checklist
	do(t, router, http.MethodPost, "/v1/trips/"+trip.ID+"/checklists", "user-a",
		gin.H{"type": "group"}, &created)

	itemPath := "/v1/checklists/" + created.ID + "/items"

	t.Run("blank content rejected", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, itemPath, "user-a", gin.H{"content": "   "}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	var a, b, c models.Item
	for _, pair := range []struct {
		content string
		into    *models.Item
	}{{"passport", &a}, {"visa", &b}, {"tickets", &c}} {
		rec := do(t, router, http.MethodPost, itemPath, "user-a", gin.H{"content": pair.content}, pair.into)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 for %q, got %d", pair.content, rec.Code)
		}
	}

	t.Run("update toggles checked", func(t *testing.T) {
		var updated models.Item
		rec := do(t, router, http.MethodPatch, "/v1/items/"+a.ID, "user-a",
			gin.H{"isChecked": true}, &updated)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !updated.IsChecked {
			t.Error("expected item to be checked")
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		rec := do(t, router, http.MethodPatch, "/v1/items/"+a.ID, "user-a", gin.H{}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("reorder rejects a partial permutation", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, itemPath+"/order", "user-a",
			gin.H{"itemIds": []string{a.ID, b.ID}}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("reorder applies a full permutation", func(t *testing.T) {
		var resp itemsResponse
		rec := do(t, router, http.MethodPut, itemPath+"/order", "user-a",
			gin.H{"itemIds": []string{c.ID, a.ID, b.ID}}, &resp)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		wantIDs := []string{c.ID, a.ID, b.ID}
		if len(resp.Items) != len(wantIDs) {
			t.Fatalf("expected %d items, got %d", len(wantIDs), len(resp.Items))
		}
		for i, item := range resp.Items {
			if item.ID != wantIDs[i] || item.ItemOrder != i {
				t.Errorf("position %d: got item %s at order %d", i, item.ID, item.ItemOrder)
			}
		}
	})

	t.Run("delete item", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/v1/items/"+b.ID, "user-a", nil, nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("delete checklist", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/v1/checklists/"+created.ID, "user-a", nil, nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})
}
