package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStaticResolver(t *testing.T) {
	ctx := context.Background()
	r := NewStaticResolver(map[int64]string{1001: "alice"})
	r.Set(1002, "bob")

	name, err := r.DisplayName(ctx, 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "alice" {
		t.Errorf("expected alice, got %q", name)
	}

	name, err = r.DisplayName(ctx, 1002)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "bob" {
		t.Errorf("expected bob, got %q", name)
	}

	if _, err := r.DisplayName(ctx, 9999); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved, got %v", err)
	}
}

func TestDirectoryResolver(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/1001":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1001,"name":"alice"}`))
		case "/users/1002":
			http.Error(w, "not found", http.StatusNotFound)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	r := NewDirectoryResolver(srv.URL)

	name, err := r.DisplayName(ctx, 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "alice" {
		t.Errorf("expected alice, got %q", name)
	}

	if _, err := r.DisplayName(ctx, 1002); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved for 404, got %v", err)
	}

	if _, err := r.DisplayName(ctx, 3); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved for 500, got %v", err)
	}
}

func TestDirectoryResolverTimeout(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"id":1,"name":"slow"}`))
	}))
	defer srv.Close()

	r := NewDirectoryResolver(srv.URL, WithLookupTimeout(20*time.Millisecond))

	if _, err := r.DisplayName(ctx, 1); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved on timeout, got %v", err)
	}
}
