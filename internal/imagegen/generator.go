package imagegen

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlaceholderURL es la imagen fija de respaldo cuando la generación falla.
const PlaceholderURL = "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?w=800&q=80"

// Generator construye URLs del endpoint de generación de imágenes y
// verifica que respondan; ante cualquier fallo cae al placeholder.
// El endpoint no es determinista: cada llamada lleva un seed aleatorio.
type Generator struct {
	baseURL string
	client  *http.Client
	seedFn  func() int64
}

func New(baseURL string, httpClient *http.Client) *Generator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		seedFn:  func() int64 { return rand.Int63n(1_000_000) },
	}
}

// LookImageURL deriva el prompt corto de imagen y devuelve la URL generada,
// o el placeholder si el endpoint no responde con 2xx.
func (g *Generator) LookImageURL(ctx context.Context, gender, keyItem, styleName string) string {
	prompt := buildImagePrompt(gender, keyItem, styleName)
	imageURL := fmt.Sprintf("%s/prompt/%s?width=800&height=1000&nologo=true&seed=%d",
		g.baseURL, url.PathEscape(prompt), g.seedFn())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return PlaceholderURL
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return PlaceholderURL
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return PlaceholderURL
	}
	return imageURL
}

// buildImagePrompt arma "fashion photo, {genero}, {item corto}, {estilo} style".
// El keyItem se trunca a tres palabras; Menswear mapea a "man", el resto a "woman".
func buildImagePrompt(gender, keyItem, styleName string) string {
	safeGender := "woman"
	if gender == "Menswear" {
		safeGender = "man"
	}

	shortItem := "fashion"
	if words := strings.Fields(keyItem); len(words) > 0 {
		if len(words) > 3 {
			words = words[:3]
		}
		shortItem = strings.Join(words, " ")
	}

	return fmt.Sprintf("fashion photo, %s, %s, %s style", safeGender, shortItem, styleName)
}
