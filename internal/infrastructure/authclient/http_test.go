package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

func TestHTTPClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds domain.LoginCredentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if creds.Email != "ann@example.com" {
			t.Fatalf("unexpected credentials: %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"user":       map[string]any{"id": "u1", "name": "Ann", "role": "customer"},
				"token":      "tok",
				"expires_in": 3600,
			},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	result, err := client.Login(context.Background(), domain.LoginCredentials{Email: "ann@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.Success || result.Data == nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Data.Token != "tok" || result.Data.User.Role != domain.RoleCustomer {
		t.Fatalf("unexpected data: %+v", result.Data)
	}
}

func TestHTTPClient_Login_RejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid password"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	result, err := client.Login(context.Background(), domain.LoginCredentials{Email: "ann@example.com", Password: "wrong"})
	if err != nil {
		t.Fatalf("rejection must decode, not error: %v", err)
	}
	if result.Success || result.Error != "Invalid password" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHTTPClient_Login_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	if _, err := client.Login(context.Background(), domain.LoginCredentials{Email: "a@b.co", Password: "pw"}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHTTPClient_Login_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewHTTPClient(srv.URL, time.Second)
	if _, err := client.Login(context.Background(), domain.LoginCredentials{Email: "a@b.co", Password: "pw"}); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestHTTPClient_Login_ContextDeadline(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewHTTPClient(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Login(ctx, domain.LoginCredentials{Email: "a@b.co", Password: "pw"}); err == nil {
		t.Fatalf("expected deadline error")
	}
}
