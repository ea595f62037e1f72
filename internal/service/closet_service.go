package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mindfit/internal/domain"
	"mindfit/internal/llm"
)

// ClosetService administra el inventario de prendas. El alta clasifica la
// imagen con el colaborador de visión antes de tocar el almacenamiento:
// si la clasificación falla no se agrega nada ni se escribe nada.
type ClosetService struct {
	llmClient llm.Client
	state     *StateService
	logger    *zap.Logger

	inflight sync.Mutex // guarda de exclusión: una clasificación a la vez
}

var (
	ErrClassifyInFlight = errors.New("classification already in flight")
	ErrEmptyImage       = errors.New("empty image payload")
	ErrInvalidCategory  = errors.New("invalid closet category")
)

func NewClosetService(llmClient llm.Client, state *StateService, logger *zap.Logger) *ClosetService {
	return &ClosetService{
		llmClient: llmClient,
		state:     state,
		logger:    logger,
	}
}

const classifyPrompt = `Analyze this clothing item. Return JSON with keys: "category" (one of: "Outerwear", "Tops", "Bottoms", "Accessories"), "color" (e.g. "Navy Blue"), "desc" (short description e.g. "Denim Jacket"). Return ONLY the JSON object.`

// AddItem codifica la imagen, la clasifica y agrega la prenda al closet.
// Un fallo del colaborador aborta la operación sin escribir nada.
func (s *ClosetService) AddItem(ctx context.Context, rawImage []byte) (domain.ClosetItem, error) {
	if len(rawImage) == 0 {
		return domain.ClosetItem{}, ErrEmptyImage
	}
	if !s.inflight.TryLock() {
		return domain.ClosetItem{}, ErrClassifyInFlight
	}
	defer s.inflight.Unlock()

	encoded := base64.StdEncoding.EncodeToString(rawImage)

	raw, err := s.llmClient.GenerateVision(ctx, classifyPrompt, encoded)
	if err != nil {
		s.logger.Warn("closet classification failed", zap.Error(err))
		return domain.ClosetItem{}, fmt.Errorf("classify item: %w", err)
	}

	analysis, err := parseItemAnalysis(raw)
	if err != nil {
		s.logger.Warn("closet classification unparseable", zap.Error(err))
		return domain.ClosetItem{}, fmt.Errorf("classify item: %w", err)
	}

	category, ok := domain.ParseCategory(analysis.Category)
	if !ok {
		return domain.ClosetItem{}, fmt.Errorf("classify item: %w: %q", ErrInvalidCategory, analysis.Category)
	}

	item := domain.ClosetItem{
		ID:       s.state.NextClosetID(),
		Img:      encoded,
		Category: category,
		Color:    analysis.Color,
		Desc:     analysis.Desc,
	}

	if err := s.state.AppendClosetItem(ctx, item); err != nil {
		return domain.ClosetItem{}, err
	}
	return item, nil
}

// RemoveItem borra la prenda por ID. Idempotente: repetir es un no-op.
func (s *ClosetService) RemoveItem(ctx context.Context, id int64) (bool, error) {
	return s.state.RemoveClosetItem(ctx, id)
}

// Recategorize valida la categoría en el borde y la reemplaza en la prenda.
func (s *ClosetService) Recategorize(ctx context.Context, id int64, category string) (bool, error) {
	cat, ok := domain.ParseCategory(category)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.state.RecategorizeClosetItem(ctx, id, cat)
}

// Items devuelve el inventario actual.
func (s *ClosetService) Items() []domain.ClosetItem {
	return s.state.Closet()
}

// parseItemAnalysis exige los tres campos: una respuesta parcial es un error.
func parseItemAnalysis(raw string) (domain.ItemAnalysis, error) {
	var analysis domain.ItemAnalysis
	if err := unmarshalLLMJSON(raw, &analysis); err != nil {
		return domain.ItemAnalysis{}, err
	}
	if strings.TrimSpace(analysis.Category) == "" ||
		strings.TrimSpace(analysis.Color) == "" ||
		strings.TrimSpace(analysis.Desc) == "" {
		return domain.ItemAnalysis{}, fmt.Errorf("incomplete item analysis")
	}
	return analysis, nil
}
