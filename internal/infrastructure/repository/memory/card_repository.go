package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
)

type CardRepository struct {
	mu    sync.RWMutex
	cards map[string]card.Card
}

func NewCardRepository() *CardRepository {
	return &CardRepository{cards: make(map[string]card.Card)}
}

func (r *CardRepository) GetByID(_ context.Context, id string) (card.Card, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok {
		return card.Card{}, false, nil
	}

	return cloneCard(c), true, nil
}

func (r *CardRepository) List(_ context.Context) ([]card.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]card.Card, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, cloneCard(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *CardRepository) ListDraftable(ctx context.Context) ([]card.Card, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]card.Card, 0, len(all))
	for _, c := range all {
		if c.Draftable() {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *CardRepository) Save(_ context.Context, c card.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards[c.ID] = cloneCard(c)
	return nil
}

func (r *CardRepository) SaveAll(ctx context.Context, cards []card.Card) error {
	for _, c := range cards {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// cloneCard deep-copies career maps/slices so callers cannot alias
// repository state.
func cloneCard(c card.Card) card.Card {
	out := c
	out.Career.OVRBySeason = make(map[int]int, len(c.Career.OVRBySeason))
	for k, v := range c.Career.OVRBySeason {
		out.Career.OVRBySeason[k] = v
	}
	out.Career.PatchLog = append([]card.PatchChange(nil), c.Career.PatchLog...)
	return out
}
