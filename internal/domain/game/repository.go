package game

import "context"

// Repository stores the append-only game log.
type Repository interface {
	Append(ctx context.Context, r Result) error
	ListBySeason(ctx context.Context, season int) ([]Result, error)
	ListByTeam(ctx context.Context, season int, teamID string) ([]Result, error)
}
