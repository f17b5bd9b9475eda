package synergy

import (
	"fmt"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
)

// Multiplier bounds. Individual rules clamp to [RuleMin, RuleMax] after any
// patch shift; the combined lineup multiplier clamps to [LineupMin, LineupMax].
const (
	RuleMin   = 0.90
	RuleMax   = 1.20
	LineupMin = 0.85
	LineupMax = 1.40
)

// Shift records one patch-time multiplier change for the patch-notes feed.
type Shift struct {
	Season int
	Before float64
	After  float64
}

// Rule grants a multiplicative power bonus when every required archetype and
// attack type is present among a lineup's starters.
type Rule struct {
	Code        string
	Name        string
	Description string
	Archetypes  []card.Archetype
	AttackTypes []card.AttackType
	Multiplier  float64
	History     []Shift
}

func (r Rule) Validate() error {
	if r.Code == "" {
		return fmt.Errorf("synergy rule code is required")
	}
	if r.Name == "" {
		return fmt.Errorf("synergy rule name is required")
	}
	if len(r.Archetypes) == 0 && len(r.AttackTypes) == 0 {
		return fmt.Errorf("synergy rule %s has no requirements", r.Code)
	}
	if r.Multiplier < RuleMin || r.Multiplier > RuleMax {
		return fmt.Errorf("synergy rule %s multiplier out of range: %.3f", r.Code, r.Multiplier)
	}
	return nil
}

// SatisfiedBy reports whether every required archetype and attack type is
// present among the given starters. Duplicate requirements count once; a
// lineup of three cannot satisfy more than three distinct archetypes.
func (r Rule) SatisfiedBy(starters []card.Card) bool {
	if len(starters) == 0 {
		return false
	}

	archetypes := make(map[card.Archetype]struct{}, len(starters))
	attackTypes := make(map[card.AttackType]struct{}, len(starters))
	for _, c := range starters {
		archetypes[c.Archetype] = struct{}{}
		attackTypes[c.AttackType] = struct{}{}
	}

	for _, a := range r.Archetypes {
		if _, ok := archetypes[a]; !ok {
			return false
		}
	}
	for _, at := range r.AttackTypes {
		if _, ok := attackTypes[at]; !ok {
			return false
		}
	}
	return true
}

// ApplyShift moves the rule multiplier by delta, clamped to the rule bound,
// and records the change for the given season.
func (r *Rule) ApplyShift(season int, delta float64) Shift {
	before := r.Multiplier
	after := clampRule(before + delta)
	r.Multiplier = after
	shift := Shift{Season: season, Before: before, After: after}
	r.History = append(r.History, shift)
	return shift
}

func clampRule(v float64) float64 {
	if v < RuleMin {
		return RuleMin
	}
	if v > RuleMax {
		return RuleMax
	}
	return v
}

// ClampLineup bounds the combined multiplier of all active rules.
func ClampLineup(v float64) float64 {
	if v < LineupMin {
		return LineupMin
	}
	if v > LineupMax {
		return LineupMax
	}
	return v
}
