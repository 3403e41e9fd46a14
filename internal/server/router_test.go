package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zonemasters/bgmi-backend/internal/database"
	"github.com/zonemasters/bgmi-backend/internal/migrations"
)

const testAdminCode = "zm-secret-2025"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the full route set against a fresh in-memory database.
func newTestRouter(t *testing.T) (*chi.Mux, *Broker) {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	// Pin the pool to one connection so every query sees the same
	// in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	stores := &StoreHandle{}
	stores.Set(NewDocStore(db))
	broker := NewBroker()

	r := chi.NewRouter()
	addRoutes(r, testLogger(), Options{
		Stores:    stores,
		Broker:    broker,
		AdminCode: testAdminCode,
	})
	return r, broker
}

// newNotReadyRouter wires routes against an empty store handle, as during the
// window before the background connect finishes.
func newNotReadyRouter(t *testing.T) *chi.Mux {
	t.Helper()

	r := chi.NewRouter()
	addRoutes(r, testLogger(), Options{
		Stores:    &StoreHandle{},
		Broker:    NewBroker(),
		AdminCode: testAdminCode,
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}
