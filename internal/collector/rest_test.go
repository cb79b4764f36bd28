package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTFetchDailyBars(t *testing.T) {
	var auth, symbol, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bars/daily" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		symbol = r.URL.Query().Get("symbol")
		limit = r.URL.Query().Get("limit")
		w.Write([]byte(`[{"timestamp":1704205800,"open":1,"high":2,"low":0.5,"close":1.5,"volume":100}]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "NVDA", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", auth)
	}
	if symbol != "NVDA" || limit != "250" {
		t.Errorf("unexpected query symbol=%q limit=%q", symbol, limit)
	}
	if len(bars) != 1 || bars[0].Close != 1.5 || bars[0].Symbol != "NVDA" {
		t.Fatalf("unexpected bars: %+v", bars)
	}
}

func TestRESTFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "")
	if _, err := f.FetchDailyBars(context.Background(), "NVDA", 10); err == nil {
		t.Fatal("expected error on 502")
	}
}
