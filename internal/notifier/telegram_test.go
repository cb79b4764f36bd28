package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestNotifier(url string) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = url
	return n
}

func TestSend(t *testing.T) {
	var payload map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	if err := newTestNotifier(srv.URL).Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if path != "/botTOKEN/sendMessage" {
		t.Errorf("unexpected path %q", path)
	}
	if payload["chat_id"] != "42" || payload["text"] != "hello" || payload["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestSendWithRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	if err := newTestNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 2); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestSendWithRetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if err := newTestNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestSendWithRetryCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := newTestNotifier(srv.URL).SendWithRetry(ctx, "hi", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > 900*time.Millisecond {
		t.Errorf("retry did not honour cancellation")
	}
}

func TestStartPolling(t *testing.T) {
	var mu sync.Mutex
	var replies []string
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if polls.Add(1) == 1 {
				w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":" /help ","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/scan","chat":{"id":99}}},
					{"update_id":9}
				]}`))
				return
			}
			if got := r.URL.Query().Get("offset"); got != "10" {
				t.Errorf("expected offset 10, got %s", got)
			}
			<-r.Context().Done()
		case "/botTOKEN/sendMessage":
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			replies = append(replies, p["text"])
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var got []string
	go func() {
		defer close(done)
		newTestNotifier(srv.URL).StartPolling(ctx, func(_ context.Context, cmd string) string {
			got = append(got, cmd)
			return "reply to " + cmd
		})
	}()

	deadline := time.After(2 * time.Second)
	for polls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("polling did not advance")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if len(got) != 1 || got[0] != "/help" {
		t.Errorf("expected only /help from the configured chat, got %v", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0] != "reply to /help" {
		t.Errorf("unexpected replies %v", replies)
	}
}
