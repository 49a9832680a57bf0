package matcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPMatcherExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text       string      `json:"text"`
			Candidates []Candidate `json:"candidates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Text != "log line" || len(req.Candidates) != 1 {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(Result{
			MatchedOrderIDs: []string{req.Candidates[0].OrderID},
			Summary:         "one match",
		})
	}))
	defer srv.Close()

	m := &HTTPMatcher{URL: srv.URL, Client: srv.Client()}
	res, err := m.Extract(context.Background(), "log line", []Candidate{{Reference: "UTR1", OrderID: "o1"}})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.MatchedOrderIDs) != 1 || res.MatchedOrderIDs[0] != "o1" {
		t.Errorf("matched = %v", res.MatchedOrderIDs)
	}
	if res.Summary != "one match" {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestHTTPMatcherSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := &HTTPMatcher{URL: srv.URL, Client: srv.Client()}
	if _, err := m.Extract(context.Background(), "x", nil); err == nil {
		t.Fatal("expected error from non-200 response")
	}
}

func TestHTTPMatcherRequiresURL(t *testing.T) {
	m := &HTTPMatcher{Client: http.DefaultClient}
	if _, err := m.Extract(context.Background(), "x", nil); err == nil {
		t.Fatal("expected error when no endpoint configured")
	}
}
