package memory

import (
	"context"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/domain/draft"
)

type DraftRepository struct {
	mu     sync.RWMutex
	picks  []draft.Pick
	grades map[int][]draft.Grade
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{grades: make(map[int][]draft.Grade)}
}

func (r *DraftRepository) AppendPick(_ context.Context, p draft.Pick) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks = append(r.picks, p)
	return nil
}

func (r *DraftRepository) ListPicks(_ context.Context, season int) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Pick, 0, len(r.picks))
	for _, p := range r.picks {
		if p.Season == season {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *DraftRepository) PurgeSeason(_ context.Context, season int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.picks[:0]
	for _, p := range r.picks {
		if p.Season != season {
			kept = append(kept, p)
		}
	}
	r.picks = kept
	delete(r.grades, season)

	return nil
}

func (r *DraftRepository) SaveGrades(_ context.Context, season int, grades []draft.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.grades[season] = append([]draft.Grade(nil), grades...)
	return nil
}

func (r *DraftRepository) GradesBySeason(_ context.Context, season int) ([]draft.Grade, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grades, ok := r.grades[season]
	if !ok {
		return nil, false, nil
	}

	return append([]draft.Grade(nil), grades...), true, nil
}
