package sheets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wellform/wellform/internal/models"
)

func testPayload() *models.SubmissionPayload {
	return &models.SubmissionPayload{
		SubmissionID: "sub123",
		Timestamp:    "2026-03-14T09:30:00Z",
		PersonalDetails: models.NormalizedDetails{
			Name: "Jane Doe", Email: "jane@example.com", Phone: "+14155552671", Age: 34, Gender: "female",
		},
		Responses: models.Responses{"q1": "yes"},
		Result:    models.ScoreResult{Score: 1, Grade: "E", Description: "x"},
	}
}

func TestAppendSuccess(t *testing.T) {
	var received models.SubmissionPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("webhook hit with method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode forwarded payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Append(testPayload()); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if received.SubmissionID != "sub123" || received.Result.Grade != "E" {
		t.Fatalf("forwarded payload mangled: %+v", received)
	}
}

func TestAppendFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"reported failure", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
		}},
		{"missing success field", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		}},
		{"non-json body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
	}
	for _, c := range cases {
		srv := httptest.NewServer(c.handler)
		err := NewClient(srv.URL).Append(testPayload())
		srv.Close()
		if err == nil {
			t.Fatalf("%s: Append returned nil error", c.name)
		}
	}
}

func TestAppendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	if err := NewClient(srv.URL).Append(testPayload()); err == nil {
		t.Fatalf("Append to closed server returned nil error")
	}
}
