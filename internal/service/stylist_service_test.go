package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mindfit/internal/domain"
	"mindfit/internal/llm"
	"mindfit/internal/store"
)

type stubImageGen struct {
	url    string
	gender string
	key    string
	style  string
}

func (s *stubImageGen) LookImageURL(_ context.Context, gender, keyItem, styleName string) string {
	s.gender, s.key, s.style = gender, keyItem, styleName
	if s.url == "" {
		return "https://img.example/look"
	}
	return s.url
}

type stubLimiter struct{ allow bool }

func (s stubLimiter) Allow(string) bool { return s.allow }

func newTestStylist(t *testing.T, mock *llm.MockClient) (*StylistService, *StateService, *store.MemoryKV, *stubImageGen) {
	t.Helper()
	state, kv := newTestState(t)
	images := &stubImageGen{}
	svc := NewStylistService(mock, state, StylistPromptBuilder{}, images, nil, zap.NewNop())
	return svc, state, kv, images
}

func setMood(state *StateService, mood string) {
	state.SetMood(&mood)
}

var defaultLookReq = LookRequest{GoalMood: "calm", Context: "Office", Weather: "Cold", TempC: 4}

func TestGenerateLookRequiresMood(t *testing.T) {
	svc, _, kv, _ := newTestStylist(t, &llm.MockClient{Response: validStrategyJSON})

	_, err := svc.GenerateLook(context.Background(), defaultLookReq)
	if !errors.Is(err, ErrMoodNotSet) {
		t.Fatalf("expected ErrMoodNotSet, got %v", err)
	}
	if kv.Writes(store.KeyHistory) != 0 {
		t.Fatalf("validation failure must not touch history")
	}
}

func TestGenerateLookAppendsExactlyOneHistoryEntry(t *testing.T) {
	mock := &llm.MockClient{Response: validStrategyJSON}
	svc, state, kv, images := newTestStylist(t, mock)
	setMood(state, "Anxious")

	look, err := svc.GenerateLook(context.Background(), defaultLookReq)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if look.Strategy.VibeTitle != "Quiet Armor" {
		t.Fatalf("unexpected strategy: %+v", look.Strategy)
	}
	if look.ImageURL != "https://img.example/look" {
		t.Fatalf("unexpected image url: %s", look.ImageURL)
	}
	if images.key != "Navy Blue Wool Coat" || images.style != "Minimalist" || images.gender != "Womenswear" {
		t.Fatalf("image prompt inputs wrong: %+v", images)
	}

	history := state.History(0)
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	if history[0].Title != "Quiet Armor" || history[0].Img != look.ImageURL {
		t.Fatalf("history entry mismatch: %+v", history[0])
	}
	if kv.Writes(store.KeyHistory) != 1 {
		t.Fatalf("expected exactly one history write")
	}

	// Cada generación exitosa agrega exactamente una entrada al frente.
	mock.Response = strings.Replace(validStrategyJSON, "Quiet Armor", "Bold Dawn", 1)
	if _, err := svc.GenerateLook(context.Background(), defaultLookReq); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	history = state.History(0)
	if len(history) != 2 || history[0].Title != "Bold Dawn" || history[1].Title != "Quiet Armor" {
		t.Fatalf("history must be newest-first: %+v", history)
	}
}

func TestGenerateLookFailureWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		mock *llm.MockClient
	}{
		{"network error", &llm.MockClient{Err: errors.New("dial timeout")}},
		{"non json", &llm.MockClient{Response: "I cannot do that"}},
		{"missing required field", &llm.MockClient{Response: `{"vibeTitle":"x","hexColors":["#000"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, state, kv, _ := newTestStylist(t, tt.mock)
			setMood(state, "Tired")

			if _, err := svc.GenerateLook(context.Background(), defaultLookReq); err == nil {
				t.Fatalf("expected failure")
			}
			if len(state.History(0)) != 0 {
				t.Fatalf("failed generation must not append history")
			}
			if kv.Writes(store.KeyHistory) != 0 {
				t.Fatalf("failed generation must not write history key")
			}
		})
	}
}

func TestGenerateLookClosetMatchFallback(t *testing.T) {
	// El colaborador no marcó closet, pero sugiere Tops/Blue: el rescan local
	// debe encontrar "Navy Blue" por substring case-insensitive.
	mock := &llm.MockClient{Response: validStrategyJSONWith(map[string]string{
		"suggestedCategory": "Tops",
		"suggestedColor":    "Blue",
	})}
	svc, state, _, _ := newTestStylist(t, mock)
	setMood(state, "Calm")

	item := domain.ClosetItem{ID: 1, Category: domain.CategoryTops, Color: "Navy Blue", Desc: "Silk Blouse"}
	if err := state.AppendClosetItem(context.Background(), item); err != nil {
		t.Fatalf("seed closet: %v", err)
	}

	look, err := svc.GenerateLook(context.Background(), defaultLookReq)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if look.ClosetMatch == nil || look.ClosetMatch.ID != 1 {
		t.Fatalf("expected supplementary closet match, got %+v", look.ClosetMatch)
	}
	// La recomendación principal no se altera.
	if look.Strategy.UsedClosetItem {
		t.Fatalf("primary recommendation must stay not closet-sourced")
	}
}

func TestGenerateLookClosetSourcedSkipsRescan(t *testing.T) {
	mock := &llm.MockClient{Response: strings.Replace(validStrategyJSON, `"usedClosetItem": false`, `"usedClosetItem": true`, 1)}
	svc, state, _, _ := newTestStylist(t, mock)
	setMood(state, "Excited")

	item := domain.ClosetItem{ID: 1, Category: domain.CategoryOuterwear, Color: "Navy", Desc: "Wool Coat"}
	if err := state.AppendClosetItem(context.Background(), item); err != nil {
		t.Fatalf("seed closet: %v", err)
	}

	look, err := svc.GenerateLook(context.Background(), defaultLookReq)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !look.Strategy.UsedClosetItem {
		t.Fatalf("flag must survive parsing")
	}
	if look.Strategy.KeyItem != "Navy Blue Wool Coat" {
		t.Fatalf("closet-sourced look must cite the response keyItem")
	}
	if look.ClosetMatch != nil {
		t.Fatalf("no supplementary match when already closet-sourced")
	}
}

func TestGenerateLookRejectsConcurrentRequest(t *testing.T) {
	svc, state, _, _ := newTestStylist(t, &llm.MockClient{Response: validStrategyJSON})
	setMood(state, "Calm")

	svc.inflight.Lock()
	defer svc.inflight.Unlock()

	if _, err := svc.GenerateLook(context.Background(), defaultLookReq); !errors.Is(err, ErrLookInFlight) {
		t.Fatalf("expected ErrLookInFlight, got %v", err)
	}
}

func TestGenerateLookHonorsRateLimiter(t *testing.T) {
	state, kv := newTestState(t)
	setMood(state, "Calm")
	svc := NewStylistService(&llm.MockClient{Response: validStrategyJSON}, state, StylistPromptBuilder{}, &stubImageGen{}, stubLimiter{allow: false}, zap.NewNop())

	if _, err := svc.GenerateLook(context.Background(), defaultLookReq); !errors.Is(err, ErrLookRateLimited) {
		t.Fatalf("expected ErrLookRateLimited, got %v", err)
	}
	if kv.Writes(store.KeyHistory) != 0 {
		t.Fatalf("rate limited request must not write history")
	}
}

func TestGenerateLookBuildsShopQueries(t *testing.T) {
	svc, state, _, _ := newTestStylist(t, &llm.MockClient{Response: validStrategyJSON})
	setMood(state, "Calm")

	look, err := svc.GenerateLook(context.Background(), defaultLookReq)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(look.ShopQueries) != 1 || look.ShopQueries[0] != "wool coat Womenswear" {
		t.Fatalf("unexpected shop queries: %v", look.ShopQueries)
	}
}

// validStrategyJSONWith reemplaza valores string de primer nivel del fixture.
func validStrategyJSONWith(overrides map[string]string) string {
	out := validStrategyJSON
	for key, value := range overrides {
		switch key {
		case "suggestedCategory":
			out = strings.Replace(out, `"suggestedCategory": "Outerwear"`, `"suggestedCategory": "`+value+`"`, 1)
		case "suggestedColor":
			out = strings.Replace(out, `"suggestedColor": "Navy"`, `"suggestedColor": "`+value+`"`, 1)
		}
	}
	return out
}
