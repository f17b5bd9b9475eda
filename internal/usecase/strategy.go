package usecase

import (
	"context"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
)

// PickScorer scores a draft candidate for a team. GM personalities are
// swappable implementations of this interface.
type PickScorer interface {
	Score(ctx context.Context, t team.Team, candidate card.Card, round int) (float64, error)
}

// roundBaseline is the expected overall rating for a pick in the given
// one-based round; drafted ratings above it count as value.
func roundBaseline(round int) float64 {
	base := 88.0 - 4.0*float64(round-1)
	if base < 60 {
		base = 60
	}
	return base
}

// heuristicScorer blends raw rating, projected synergy fit and round value,
// then applies a style-dependent bias. This is the default AI for every
// non-human GM.
type heuristicScorer struct {
	power *PowerService
	rng   *RNG
}

func NewHeuristicScorer(power *PowerService, rng *RNG) PickScorer {
	return &heuristicScorer{power: power, rng: rng}
}

func (h *heuristicScorer) Score(ctx context.Context, t team.Team, candidate card.Card, round int) (float64, error) {
	mult, err := h.power.ProjectedMultiplier(ctx, t, candidate)
	if err != nil {
		return 0, err
	}

	ovr := float64(candidate.OVR)
	synergyFit := (mult - 1) * 100
	value := ovr - roundBaseline(round)

	// Later rounds lean harder on fit and value than raw rating.
	lateRound := float64(round-1) * 0.15
	score := ovr*(1-0.2*lateRound) + synergyFit*(1+lateRound) + value*0.5

	switch t.GM.Style {
	case team.StyleValueMaximizer:
		score += value * 0.8
	case team.StyleSynergyMaximizer:
		score += synergyFit * 1.5
	case team.StyleRiskTaker:
		score += h.rng.FloatBetween(-10, 10)
	case team.StyleConservative:
		score += h.rng.FloatBetween(-2, 2)
	}

	return score, nil
}
