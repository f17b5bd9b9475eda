package card

import "context"

// Repository stores the league card pool.
type Repository interface {
	GetByID(ctx context.Context, id string) (Card, bool, error)
	List(ctx context.Context) ([]Card, error)
	ListDraftable(ctx context.Context) ([]Card, error)
	Save(ctx context.Context, c Card) error
	SaveAll(ctx context.Context, cards []Card) error
}
