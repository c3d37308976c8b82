package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPostsJSON(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewSender("secret-token")
	err := sender.Send(context.Background(), srv.URL, map[string]any{
		"event":       "appointment_booked",
		"client_name": "Ana Silva",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
	if gotBody["event"] != "appointment_booked" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestSendNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewSender("")
	if err := sender.Send(context.Background(), srv.URL, map[string]any{"event": "x"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestSendEmptyURL(t *testing.T) {
	sender := NewSender("")
	if err := sender.Send(context.Background(), "", map[string]any{"event": "x"}); err == nil {
		t.Fatal("expected error for empty url")
	}
}
