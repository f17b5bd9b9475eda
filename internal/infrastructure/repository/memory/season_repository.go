package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	history []season.History
	notes   map[int]season.PatchNotes
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{notes: make(map[int]season.PatchNotes)}
}

func (r *SeasonRepository) Append(_ context.Context, h season.History) error {
	if err := h.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, h)
	return nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]season.History(nil), r.history...), nil
}

func (r *SeasonRepository) GetBySeason(_ context.Context, seasonNum int) (season.History, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.history {
		if h.Season == seasonNum {
			return h, true, nil
		}
	}

	return season.History{}, false, nil
}

func (r *SeasonRepository) SavePatchNotes(_ context.Context, notes season.PatchNotes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes[notes.Season] = notes
	return nil
}

func (r *SeasonRepository) PatchNotesBySeason(_ context.Context, seasonNum int) (season.PatchNotes, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes, ok := r.notes[seasonNum]
	return notes, ok, nil
}
