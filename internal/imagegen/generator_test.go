package imagegen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLookImageURLReturnsGeneratedURLOn2xx(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gen := New(srv.URL, srv.Client())
	gen.seedFn = func() int64 { return 42 }

	got := gen.LookImageURL(context.Background(), "Womenswear", "Navy Blue Wool Coat", "Minimalist")
	if got == PlaceholderURL {
		t.Fatalf("expected generated URL, got placeholder")
	}
	if !strings.HasPrefix(got, srv.URL+"/prompt/") {
		t.Fatalf("unexpected URL: %s", got)
	}
	if !strings.Contains(got, "width=800&height=1000&nologo=true&seed=42") {
		t.Fatalf("missing query params: %s", got)
	}
	if !strings.HasPrefix(gotPath, "/prompt/") {
		t.Fatalf("server saw unexpected path: %s", gotPath)
	}
}

func TestLookImageURLFallsBackToPlaceholder(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		gen := New(srv.URL, srv.Client())
		if got := gen.LookImageURL(context.Background(), "Womenswear", "Coat", "Casual"); got != PlaceholderURL {
			t.Fatalf("expected placeholder, got %s", got)
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // cerrado a propósito

		gen := New(srv.URL, nil)
		if got := gen.LookImageURL(context.Background(), "Womenswear", "Coat", "Casual"); got != PlaceholderURL {
			t.Fatalf("expected placeholder, got %s", got)
		}
	})
}

func TestBuildImagePrompt(t *testing.T) {
	tests := []struct {
		name      string
		gender    string
		keyItem   string
		styleName string
		want      string
	}{
		{"menswear maps to man", "Menswear", "Denim Jacket", "Street", "fashion photo, man, Denim Jacket, Street style"},
		{"womenswear maps to woman", "Womenswear", "Silk Dress", "Romantic", "fashion photo, woman, Silk Dress, Romantic style"},
		{"unisex defaults to woman", "User", "Blazer", "Classic", "fashion photo, woman, Blazer, Classic style"},
		{"key item truncated to three words", "Womenswear", "Navy Blue Wool Coat", "Minimalist", "fashion photo, woman, Navy Blue Wool, Minimalist style"},
		{"empty key item falls back", "Womenswear", "", "Casual", "fashion photo, woman, fashion, Casual style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildImagePrompt(tt.gender, tt.keyItem, tt.styleName); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
