package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindfit/internal/domain"
	"mindfit/internal/llm"
)

// ImageGenerator produce la URL de la imagen editorial del look.
type ImageGenerator interface {
	LookImageURL(ctx context.Context, gender, keyItem, styleName string) string
}

// LookRateLimiter limita la frecuencia de generaciones. Puede ser nil.
type LookRateLimiter interface {
	Allow(key string) bool
}

// StylistService orquesta la recomendación diaria: arma el prompt con el
// estado completo, consume al colaborador generativo, post-procesa la
// coincidencia de closet y registra el historial.
type StylistService struct {
	llmClient     llm.Client
	state         *StateService
	promptBuilder StylistPromptBuilder
	images        ImageGenerator
	limiter       LookRateLimiter
	logger        *zap.Logger

	inflight sync.Mutex // una generación pendiente a la vez
	nowFn    func() time.Time
}

var (
	ErrMoodNotSet      = errors.New("current mood not selected")
	ErrLookInFlight    = errors.New("look generation already in flight")
	ErrLookRateLimited = errors.New("look generation rate limited")
)

// LookRequest son los inputs diarios de la generación.
type LookRequest struct {
	GoalMood string
	Context  string
	Weather  string
	TempC    int
}

func NewStylistService(
	llmClient llm.Client,
	state *StateService,
	promptBuilder StylistPromptBuilder,
	images ImageGenerator,
	limiter LookRateLimiter,
	logger *zap.Logger,
) *StylistService {
	return &StylistService{
		llmClient:     llmClient,
		state:         state,
		promptBuilder: promptBuilder,
		images:        images,
		limiter:       limiter,
		logger:        logger,
		nowFn:         time.Now,
	}
}

// GenerateLook pide la estrategia al colaborador y, solo si todo salió bien,
// agrega exactamente una entrada al frente del historial. Cualquier fallo
// (red, JSON malformado, campo obligatorio ausente) aborta sin tocar estado.
func (s *StylistService) GenerateLook(ctx context.Context, req LookRequest) (domain.Look, error) {
	mood := s.state.Mood()
	if mood == nil {
		return domain.Look{}, ErrMoodNotSet
	}

	if !s.inflight.TryLock() {
		return domain.Look{}, ErrLookInFlight
	}
	defer s.inflight.Unlock()

	if s.limiter != nil && !s.limiter.Allow("daily_look") {
		return domain.Look{}, ErrLookRateLimited
	}

	state := s.state.Snapshot()
	prompt := s.promptBuilder.BuildStrategyPrompt(state, *mood, req.GoalMood, req.Context, req.Weather, req.TempC)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("strategy generation failed", zap.Error(err))
		return domain.Look{}, fmt.Errorf("generate strategy: %w", err)
	}

	strategy, err := parseStrategyResult(raw)
	if err != nil {
		s.logger.Warn("strategy response unparseable", zap.Error(err))
		return domain.Look{}, fmt.Errorf("generate strategy: %w", err)
	}

	imageURL := s.images.LookImageURL(ctx, state.Preferences.Gender, strategy.KeyItem, strategy.StyleName)

	look := domain.Look{
		Strategy:    strategy,
		ImageURL:    imageURL,
		ShopQueries: shopQueries(strategy.ShopTerms, state.Preferences.Gender),
	}

	// Sin marca de closet del colaborador, re-escanear localmente el
	// inventario con la categoría/color sugeridos; sugerencia suplementaria,
	// nunca altera la recomendación principal.
	if !strategy.UsedClosetItem {
		look.ClosetMatch = domain.FindClosetMatch(state.UserCloset, strategy.SuggestedCategory, strategy.SuggestedColor)
	}

	entry := domain.HistoryItem{
		Date:  s.nowFn().Format("2006-01-02"),
		Title: strategy.VibeTitle,
		Img:   imageURL,
	}
	if err := s.state.PrependHistory(ctx, entry); err != nil {
		return domain.Look{}, fmt.Errorf("record history: %w", err)
	}

	return look, nil
}

// shopQueries compone términos listos para buscar: "{term} {gender-style}".
func shopQueries(terms []string, gender string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		out = append(out, term+" "+gender)
	}
	return out
}
