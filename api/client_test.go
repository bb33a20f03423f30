package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

type book struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestDoAttachesHeadersAndDecodes(t *testing.T) {
	var gotAuth, gotReqID, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"title":"Kuyucaklı Yusuf"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL + "/", Tokens: staticToken("tok")})
	resp, err := Do[book](context.Background(), c, http.MethodPost, "/api/books", map[string]string{"title": "x"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Data.ID != 7 || resp.Data.Title != "Kuyucaklı Yusuf" {
		t.Fatalf("decoded %+v", resp.Data)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReqID == "" || gotReqID != resp.RequestID {
		t.Errorf("request id = %q, response carries %q", gotReqID, resp.RequestID)
	}
	if gotType != "application/json" {
		t.Errorf("content-type = %q", gotType)
	}
	if gotBody != `{"title":"x"}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected authorization %q", h)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Tokens: staticToken("")})
	resp, err := Do[struct{}](context.Background(), c, http.MethodDelete, "/api/donations/1", nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestDoMapsErrorStatuses(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		target  error
		message string
	}{
		{http.StatusUnauthorized, `{"message":"token expired"}`, ErrUnauthorized, "token expired"},
		{http.StatusForbidden, `{"error":"admins only"}`, ErrForbidden, "admins only"},
		{http.StatusNotFound, ``, ErrNotFound, ""},
		{http.StatusInternalServerError, `<html>oops</html>`, nil, ""},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(tt.body))
		}))
		c := NewClient(Options{BaseURL: srv.URL})
		_, err := Get[book](context.Background(), c, "/api/books/1")
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if StatusCode(err) != tt.status {
			t.Errorf("status %d: StatusCode = %d", tt.status, StatusCode(err))
		}
		if tt.target != nil && !errors.Is(err, tt.target) {
			t.Errorf("status %d: errors.Is(%v) false", tt.status, tt.target)
		}
		if Message(err) != tt.message {
			t.Errorf("status %d: message = %q, want %q", tt.status, Message(err), tt.message)
		}
	}
}

func TestDoHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(Options{BaseURL: srv.URL})
	_, err := Get[book](ctx, c, "/api/books")
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("transport error must not carry a status")
	}
}
