package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Save(ctx context.Context, t Team) error
	SaveAll(ctx context.Context, teams []Team) error
}
