package usecase

import (
	"context"
	"fmt"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
)

// GM tier buff: +1% power per championship ring, capped.
const (
	ringBuffPerRing = 0.01
	ringBuffCap     = 0.05
)

// PowerService computes effective team strength. Every method is pure so the
// draft engine and the game simulator can score hypothetical lineups freely.
type PowerService struct {
	registry *synergy.Registry
	cardRepo card.Repository
}

func NewPowerService(registry *synergy.Registry, cardRepo card.Repository) *PowerService {
	return &PowerService{registry: registry, cardRepo: cardRepo}
}

// TeamPower computes a team's effective strength from its current starters:
// mean overall rating scaled by the synergy multiplier, chemistry, fatigue,
// any active rivalry-win boost and the GM ring-tier buff. No side effects.
func (s *PowerService) TeamPower(ctx context.Context, t team.Team) (float64, error) {
	ctx, span := startEngineSpan(ctx, "usecase.PowerService.TeamPower")
	defer span.End()

	starters, err := s.resolveStarters(ctx, t)
	if err != nil {
		return 0, err
	}

	return s.lineupPower(t, starters), nil
}

// ProjectedMultiplier returns the synergy multiplier a team would have if
// candidate joined its current starters. Used by draft heuristics.
func (s *PowerService) ProjectedMultiplier(ctx context.Context, t team.Team, candidate card.Card) (float64, error) {
	ctx, span := startEngineSpan(ctx, "usecase.PowerService.ProjectedMultiplier")
	defer span.End()

	starters, err := s.resolveStarters(ctx, t)
	if err != nil {
		return 0, err
	}

	projected := append(starters, candidate)
	if len(projected) > team.MaxStarters {
		// Candidate displaces the weakest starter.
		weakest := 0
		for i := 1; i < len(projected)-1; i++ {
			if projected[i].OVR < projected[weakest].OVR {
				weakest = i
			}
		}
		projected = append(projected[:weakest], projected[weakest+1:]...)
	}

	return s.registry.ActiveMultiplier(projected), nil
}

// LineupPower scores an explicit lineup for the given team state. Starters
// need not be the team's saved starters.
func (s *PowerService) LineupPower(t team.Team, starters []card.Card) float64 {
	return s.lineupPower(t, starters)
}

func (s *PowerService) lineupPower(t team.Team, starters []card.Card) float64 {
	if len(starters) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range starters {
		sum += float64(c.OVR)
	}
	base := sum / float64(len(starters))

	power := base
	power *= s.registry.ActiveMultiplier(starters)
	power *= 1 + clamp(t.Chemistry, 0, team.ChemistryMax)
	power *= 1 - clamp(t.Fatigue, 0, team.FatigueMax)
	if t.Boosted() {
		power *= 1 + team.RivalryBoostPct
	}
	power *= 1 + ringBuff(t.Rings)

	return power
}

func (s *PowerService) resolveStarters(ctx context.Context, t team.Team) ([]card.Card, error) {
	starters := make([]card.Card, 0, len(t.Starters))
	for _, id := range t.Starters {
		c, ok, err := s.cardRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get starter %s: %w", id, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: starter card %s", ErrNotFound, id)
		}
		starters = append(starters, c)
	}
	return starters, nil
}

func ringBuff(rings int) float64 {
	buff := float64(rings) * ringBuffPerRing
	if buff > ringBuffCap {
		return ringBuffCap
	}
	return buff
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
