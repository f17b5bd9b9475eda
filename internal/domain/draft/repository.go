package draft

import "context"

// Repository stores per-season draft pick logs and grades. Picks append in
// draft order; restarting a season's draft purges the prior attempt first so
// the log always describes a single attempt.
type Repository interface {
	AppendPick(ctx context.Context, p Pick) error
	ListPicks(ctx context.Context, season int) ([]Pick, error)
	PurgeSeason(ctx context.Context, season int) error
	SaveGrades(ctx context.Context, season int, grades []Grade) error
	GradesBySeason(ctx context.Context, season int) ([]Grade, bool, error)
}
