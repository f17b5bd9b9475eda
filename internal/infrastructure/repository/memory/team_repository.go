package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
	order []string
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]team.Team)}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneTeam(r.teams[id]))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(t), true, nil
}

func (r *TeamRepository) Save(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[t.ID]; !ok {
		r.order = append(r.order, t.ID)
		sort.Strings(r.order)
	}
	r.teams[t.ID] = cloneTeam(t)

	return nil
}

func (r *TeamRepository) SaveAll(ctx context.Context, teams []team.Team) error {
	for _, t := range teams {
		if err := r.Save(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// cloneTeam deep-copies the mutable maps/slices so callers cannot alias
// repository state.
func cloneTeam(t team.Team) team.Team {
	out := t
	out.Roster = append([]string(nil), t.Roster...)
	out.Starters = append([]string(nil), t.Starters...)
	out.Rivalries = make(map[string]int, len(t.Rivalries))
	for k, v := range t.Rivalries {
		out.Rivalries[k] = v
	}
	out.SeasonCrowns = make(map[string]int, len(t.SeasonCrowns))
	for k, v := range t.SeasonCrowns {
		out.SeasonCrowns[k] = v
	}
	return out
}
