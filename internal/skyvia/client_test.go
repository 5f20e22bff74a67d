package skyvia

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/skyvia-mcp/pkg/config"
	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
	"github.com/angelmondragon/skyvia-mcp/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewTokenSource()
	if err := tokens.Override("test-token"); err != nil {
		t.Fatalf("override token: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, tokens, logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestDoSendsRawTokenAndJSONHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-token" {
			t.Errorf("Authorization = %q, want raw token without a scheme prefix", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	if _, err := client.ListWorkspaces(context.Background()); err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
}

func TestDoDecodesWorkspaceList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/workspaces" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Acme","isPersonal":false},{"id":2,"name":"Personal","isPersonal":true}]`))
	})

	workspaces, err := client.ListWorkspaces(context.Background())
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(workspaces) != 2 {
		t.Fatalf("got %d workspaces, want 2", len(workspaces))
	}
	if workspaces[0].ID != 1 || workspaces[0].Name != "Acme" {
		t.Errorf("first workspace = %+v", workspaces[0])
	}
	if !workspaces[1].IsPersonal {
		t.Errorf("second workspace should be personal")
	}
}

func TestDoClassifiesNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := client.GetWorkspace(context.Background(), 999)
	if err == nil {
		t.Fatal("expected an error")
	}
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %T", err)
	}
	if typed.Code() != errors.CodeHTTP {
		t.Errorf("code = %s, want %s", typed.Code(), errors.CodeHTTP)
	}
	if typed.Status() != http.StatusNotFound {
		t.Errorf("status = %d, want 404", typed.Status())
	}
	if got := typed.Message(); got != "get workspace 999: Not Found" {
		t.Errorf("message = %q", got)
	}
}

func TestDoClassifiesPlainTextError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetWorkspace(context.Background(), 1)
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if typed.Code() != errors.CodeHTTP || typed.Status() != http.StatusInternalServerError {
		t.Errorf("code = %s status = %d", typed.Code(), typed.Status())
	}
	if got := typed.Message(); got != "get workspace 1: upstream exploded" {
		t.Errorf("message = %q", got)
	}
}

func TestDoRejectsUnexpectedContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>login page</html>"))
	})

	_, err := client.GetWorkspace(context.Background(), 1)
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if typed.Code() != errors.CodeContentType {
		t.Errorf("code = %s, want %s", typed.Code(), errors.CodeContentType)
	}
}

func TestDoRejectsInvalidJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1,`))
	})

	_, err := client.GetWorkspace(context.Background(), 1)
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if typed.Code() != errors.CodeShape {
		t.Errorf("code = %s, want %s", typed.Code(), errors.CodeShape)
	}
}

func TestDoTreatsEmptyBodyAsNoContent(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"204": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"200 empty": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)
			out, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/v1/ping"})
			if err != nil {
				t.Fatalf("Do: %v", err)
			}
			if !out.NoContent() {
				t.Errorf("expected no content, body = %s", out.Body)
			}
		})
	}
}

func TestDoClassifiesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	tokens := NewTokenSource()
	tokens.Override("test-token")
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.APIConfig{BaseURL: srv.URL}, tokens, logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetWorkspace(context.Background(), 1)
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if typed.Code() != errors.CodeTransport {
		t.Errorf("code = %s, want %s", typed.Code(), errors.CodeTransport)
	}
}

func TestDoPropagatesMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be issued without a token")
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.EnvAPIToken, "")

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.APIConfig{BaseURL: srv.URL}, NewTokenSource(), logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetWorkspace(context.Background(), 1)
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if typed.Code() != errors.CodeConfiguration {
		t.Errorf("code = %s, want %s", typed.Code(), errors.CodeConfiguration)
	}
}

func TestDoEncodesQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skip") != "5" || q.Get("take") != "50" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"hasMore":false}`))
	})

	_, err := client.ListConnections(context.Background(), 1, PageParams{Skip: 5, Take: 50})
	if err != nil {
		t.Fatalf("ListConnections: %v", err)
	}
}
