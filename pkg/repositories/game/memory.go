package game

import (
	"context"
	"slices"
	"sync"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// rounds in the order they were saved
	rounds []*entities.RoundResult
	byID   map[string]*entities.RoundResult
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]*entities.RoundResult),
	}
}

// SaveRoundResult stores a copy of the round
func (r *MemoryRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneRound(result)
	if existing, ok := r.byID[result.ID]; ok {
		idx := slices.Index(r.rounds, existing)
		r.rounds[idx] = stored
	} else {
		r.rounds = append(r.rounds, stored)
	}
	r.byID[result.ID] = stored
	return nil
}

// GetRoundResult retrieves one round by ID
func (r *MemoryRepository) GetRoundResult(ctx context.Context, roundID string) (*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	round, ok := r.byID[roundID]
	if !ok {
		return nil, ErrRoundNotFound
	}
	return cloneRound(round), nil
}

// GetPlayerResults retrieves the rounds a player had hands in, newest first
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*entities.RoundResult, 0)
	for i := len(r.rounds) - 1; i >= 0 && len(results) < limit; i-- {
		if len(r.rounds[i].HandsFor(playerID)) > 0 {
			results = append(results, cloneRound(r.rounds[i]))
		}
	}
	return results, nil
}

// GetRecentResults retrieves the latest rounds, newest first
func (r *MemoryRepository) GetRecentResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*entities.RoundResult, 0)
	for i := len(r.rounds) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, cloneRound(r.rounds[i]))
	}
	return results, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

func cloneRound(round *entities.RoundResult) *entities.RoundResult {
	c := *round
	c.DealerCards = slices.Clone(round.DealerCards)
	c.Hands = make([]*entities.HandResult, len(round.Hands))
	for i, h := range round.Hands {
		hc := *h
		hc.Cards = slices.Clone(h.Cards)
		c.Hands[i] = &hc
	}
	return &c
}
