package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mbrandall/survivor-pool/internal/domain/scoring"
)

type ScoreRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.PlayerScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string]scoring.PlayerScore)}
}

func (r *ScoreRepository) Upsert(_ context.Context, score scoring.PlayerScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[score.PlayerID] = score
	return nil
}

func (r *ScoreRepository) List(_ context.Context) ([]scoring.PlayerScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PlayerScore, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *ScoreRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]scoring.PlayerScore)
	return nil
}
