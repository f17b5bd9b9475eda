package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/domain/game"
)

type GameRepository struct {
	mu      sync.RWMutex
	results []game.Result
}

func NewGameRepository() *GameRepository {
	return &GameRepository{}
}

func (r *GameRepository) Append(_ context.Context, res game.Result) error {
	if err := res.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, cloneResult(res))
	return nil
}

func (r *GameRepository) ListBySeason(_ context.Context, season int) ([]game.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Result, 0, len(r.results))
	for _, res := range r.results {
		if res.Season == season {
			out = append(out, cloneResult(res))
		}
	}

	return out, nil
}

func (r *GameRepository) ListByTeam(_ context.Context, season int, teamID string) ([]game.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Result, 0, 32)
	for _, res := range r.results {
		if res.Season != season {
			continue
		}
		if res.HomeID == teamID || res.AwayID == teamID {
			out = append(out, cloneResult(res))
		}
	}

	return out, nil
}

func cloneResult(res game.Result) game.Result {
	out := res
	out.Contributions = append([]game.Contribution(nil), res.Contributions...)
	out.Highlights = append([]string(nil), res.Highlights...)
	return out
}
