package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindfit/internal/domain"
	"mindfit/internal/store"
)

// StateService es el dueño único del AppState en memoria y de su persistencia.
// Cada mutación re-serializa sincrónicamente su slice completo bajo su clave
// fija antes de dar por confirmado el estado en memoria; no hay batching.
// Todas las escrituras pasan por el mutex interno: un escritor a la vez.
type StateService struct {
	mu     sync.Mutex
	kv     store.KV
	state  domain.AppState
	logger *zap.Logger

	lastClosetID int64
}

// PreferencesPatch permite mutar preferencias campo por campo.
// Los campos nil se dejan como están.
type PreferencesPatch struct {
	Name      *string `json:"name"`
	Gender    *string `json:"gender"`
	Skin      *string `json:"skin"`
	Hair      *string `json:"hair"`
	HairStyle *string `json:"hairStyle"`
}

func NewStateService(kv store.KV, logger *zap.Logger) *StateService {
	return &StateService{
		kv:     kv,
		state:  domain.DefaultState(),
		logger: logger,
	}
}

// Load lee las claves presentes y las mezcla sobre el estado por defecto.
// Un blob corrupto no tumba la carga: esa slice cae al default y se loguea.
func (s *StateService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.DefaultState()

	loadSlice(ctx, s, store.KeyTraits, &state.Traits)
	loadSlice(ctx, s, store.KeyPrefs, &state.Preferences)
	loadSlice(ctx, s, store.KeyHistory, &state.History)
	loadSlice(ctx, s, store.KeyCloset, &state.UserCloset)

	if state.History == nil {
		state.History = []domain.HistoryItem{}
	}
	if state.UserCloset == nil {
		state.UserCloset = []domain.ClosetItem{}
	}

	s.state = state
	for _, it := range state.UserCloset {
		if it.ID > s.lastClosetID {
			s.lastClosetID = it.ID
		}
	}
	return nil
}

// loadSlice decodifica una clave sobre out; ante error de lectura o JSON
// malformado deja el default intacto (fail-closed) y avisa por el logger.
func loadSlice[T any](ctx context.Context, s *StateService, key string, out *T) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("state read failed, keeping defaults", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("corrupt state blob, keeping defaults", zap.String("key", key), zap.Error(err))
		return
	}
	*out = decoded
}

// commitSlice serializa y escribe una slice bajo su clave. Se llama con el
// mutex tomado; el estado en memoria solo se actualiza si la escritura pasó.
func (s *StateService) commitSlice(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// Snapshot devuelve una copia del estado completo.
func (s *StateService) Snapshot() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func copyState(in domain.AppState) domain.AppState {
	out := in
	out.UserCloset = append([]domain.ClosetItem(nil), in.UserCloset...)
	out.History = append([]domain.HistoryItem(nil), in.History...)
	if in.CurrentMood != nil {
		mood := *in.CurrentMood
		out.CurrentMood = &mood
	}
	return out
}

// SetMood fija (o limpia, con nil) el ánimo actual. Solo en memoria.
func (s *StateService) SetMood(mood *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mood == nil {
		s.state.CurrentMood = nil
		return
	}
	m := *mood
	s.state.CurrentMood = &m
}

// Mood devuelve el ánimo actual, nil si no fue seleccionado.
func (s *StateService) Mood() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentMood == nil {
		return nil
	}
	m := *s.state.CurrentMood
	return &m
}

// SaveTraits sobreescribe los rasgos completos (retake del cuestionario).
func (s *StateService) SaveTraits(ctx context.Context, traits domain.TraitScores) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commitSlice(ctx, store.KeyTraits, traits); err != nil {
		return err
	}
	s.state.Traits = traits
	return nil
}

// UpdatePreferences aplica un patch campo por campo y persiste el resultado.
func (s *StateService) UpdatePreferences(ctx context.Context, patch PreferencesPatch) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Preferences
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Gender != nil {
		next.Gender = *patch.Gender
	}
	if patch.Skin != nil {
		next.Skin = *patch.Skin
	}
	if patch.Hair != nil {
		next.Hair = *patch.Hair
	}
	if patch.HairStyle != nil {
		next.HairStyle = *patch.HairStyle
	}

	if err := s.commitSlice(ctx, store.KeyPrefs, next); err != nil {
		return domain.Preferences{}, err
	}
	s.state.Preferences = next
	return next, nil
}

// Closet devuelve una copia del inventario actual.
func (s *StateService) Closet() []domain.ClosetItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ClosetItem(nil), s.state.UserCloset...)
}

// NextClosetID deriva un ID del timestamp de creación, garantizando
// unicidad aunque dos altas caigan en el mismo milisegundo.
func (s *StateService) NextClosetID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastClosetID {
		id = s.lastClosetID + 1
	}
	s.lastClosetID = id
	return id
}

// AppendClosetItem agrega una prenda y persiste el closet completo.
func (s *StateService) AppendClosetItem(ctx context.Context, item domain.ClosetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]domain.ClosetItem(nil), s.state.UserCloset...), item)
	if err := s.commitSlice(ctx, store.KeyCloset, next); err != nil {
		return err
	}
	s.state.UserCloset = next
	return nil
}

// RemoveClosetItem filtra la prenda con ese ID. No-op si no existe;
// persiste el resultado en ambos casos.
func (s *StateService) RemoveClosetItem(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.ClosetItem, 0, len(s.state.UserCloset))
	removed := false
	for _, it := range s.state.UserCloset {
		if it.ID == id {
			removed = true
			continue
		}
		next = append(next, it)
	}

	if err := s.commitSlice(ctx, store.KeyCloset, next); err != nil {
		return false, err
	}
	s.state.UserCloset = next
	return removed, nil
}

// RecategorizeClosetItem reemplaza la categoría de la prenda con ese ID.
// No-op si no existe; persiste en ambos casos.
func (s *StateService) RecategorizeClosetItem(ctx context.Context, id int64, category domain.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]domain.ClosetItem(nil), s.state.UserCloset...)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Category = category
			found = true
			break
		}
	}

	if err := s.commitSlice(ctx, store.KeyCloset, next); err != nil {
		return false, err
	}
	s.state.UserCloset = next
	return found, nil
}

// PrependHistory agrega una entrada al frente del historial (newest-first).
// El historial nunca se muta ni se poda; el crecimiento es aceptado.
func (s *StateService) PrependHistory(ctx context.Context, item domain.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]domain.HistoryItem{item}, s.state.History...)
	if err := s.commitSlice(ctx, store.KeyHistory, next); err != nil {
		return err
	}
	s.state.History = next
	return nil
}

// History devuelve las entradas más recientes primero. limit <= 0 devuelve todo.
func (s *StateService) History(limit int) []domain.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.state.History
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return append([]domain.HistoryItem(nil), items...)
}

// TutorialSeen lee el flag one-shot del tutorial.
func (s *StateService) TutorialSeen(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok, err := s.kv.Get(ctx, store.KeyTutorial)
	if err != nil {
		s.logger.Warn("tutorial flag read failed", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	var seen bool
	if err := json.Unmarshal(raw, &seen); err != nil {
		return false
	}
	return seen
}

// MarkTutorialSeen fija el flag one-shot del tutorial.
func (s *StateService) MarkTutorialSeen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitSlice(ctx, store.KeyTutorial, true)
}
