package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trainhub/trainhub/internal/domain/session"
)

func TestLoginSuccess(t *testing.T) {
	var receivedBody loginRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/account/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry a bearer header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{UserToken: "tok-abc"})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL + "/api"))

	token, err := client.Login(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", token)
	}
	if receivedBody.UserID != "u1" || receivedBody.Password != "p1" {
		t.Errorf("request body = %+v, want u1/p1", receivedBody)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Login(context.Background(), "u1", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "invalid credentials") {
		t.Errorf("body = %q, want server message preserved", apiErr.Body)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("expected errors.Is(err, ErrUnauthorized)")
	}
}

func TestMeSendsExplicitBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization = %q, want Bearer tok-abc", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session.Profile{Nickname: "Alice", Point: 10, AccountID: "acc-1"})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	profile, err := client.Me(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Nickname != "Alice" || profile.Point != 10 {
		t.Errorf("profile = %+v, want Alice/10", profile)
	}
}

func TestAuthenticatedRequestUsesTokenSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-session" {
			t.Errorf("Authorization = %q, want Bearer tok-session", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dataEnvelope[[]Institution]{
			Data: []Institution{{ID: 1, Name: "Alpha Academy"}},
		})
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithTokenSource(func() string { return "tok-session" }),
	)

	institutions, err := client.Institutions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(institutions) != 1 || institutions[0].Name != "Alpha Academy" {
		t.Errorf("institutions = %+v", institutions)
	}
}

func TestUnauthenticatedRequestOmitsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("unauthenticated request carried an Authorization header")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dataEnvelope[[]Training]{})
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithTokenSource(func() string { return "" }),
	)

	if _, err := client.Trainings(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransportErrorOnUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Connection refused from here on.

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Boards(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrUnreachable) {
		t.Error("expected errors.Is(err, ErrUnreachable)")
	}
}

func TestQNAEnvelopeRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(qnaEnvelope[*Question]{
			Success: false,
			Message: "question limit reached",
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	err := client.CreateQuestion(context.Background(), NewQuestion{Title: "t", Content: "c"})
	if !errors.Is(err, ErrQNARejected) {
		t.Fatalf("expected ErrQNARejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "question limit reached") {
		t.Errorf("error = %q, want server message preserved", err)
	}
}

func TestRegisterSendsTrainingID(t *testing.T) {
	var receivedBody registerRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	err := client.Register(context.Background(), "u1", "p1", "Alice", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receivedBody.TrainingID != 42 || receivedBody.Nickname != "Alice" {
		t.Errorf("request body = %+v", receivedBody)
	}
}
