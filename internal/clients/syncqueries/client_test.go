package syncqueries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openbims/bims-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestPostQueries(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewWithBaseURL(testLogger(t), srv.URL)
	err := c.PostQueries(context.Background(), "registration", map[string]any{"rp_id": "25010100001"})
	if err != nil {
		t.Fatalf("PostQueries: %v", err)
	}
	if gotPath != "/api/registration/" {
		t.Fatalf("posted to %q", gotPath)
	}
	if gotBody["rp_id"] != "25010100001" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestPostQueriesNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWithBaseURL(testLogger(t), srv.URL)
	if err := c.PostQueries(context.Background(), "registration", map[string]any{}); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestUpdateAndDeleteQueries(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWithBaseURL(testLogger(t), srv.URL)

	if err := c.UpdateQueries(context.Background(), "personal", "42", map[string]any{"per_contact": "0917"}); err != nil {
		t.Fatalf("UpdateQueries: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/personal/42/" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}

	if err := c.DeleteQueries(context.Background(), "personal", "42"); err != nil {
		t.Fatalf("DeleteQueries: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/personal/42/" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
}
