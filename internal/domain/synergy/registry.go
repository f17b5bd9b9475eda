package synergy

import (
	"fmt"
	"strings"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
)

// Registry holds the fixed rule table. Rules are generated once per league;
// patch phases may shift a handful of multipliers within the rule bound.
type Registry struct {
	rules  []Rule
	byCode map[string]int
}

// BuildRegistry deterministically enumerates the archetype/attack-type cross
// product, archetype pairs, pairs with an attack type, and archetype triples.
// The enumeration yields 98 rules, comfortably above the 90-rule target.
func BuildRegistry() *Registry {
	rules := make([]Rule, 0, 98)

	appendRule := func(archetypes []card.Archetype, attackTypes []card.AttackType) {
		idx := len(rules)
		rules = append(rules, Rule{
			Code:        ruleCode(archetypes, attackTypes),
			Name:        ruleName(archetypes, attackTypes),
			Description: ruleDescription(archetypes, attackTypes),
			Archetypes:  archetypes,
			AttackTypes: attackTypes,
			Multiplier:  baseMultiplier(idx),
		})
	}

	for _, a := range card.AllArchetypes {
		for _, at := range card.AllAttackTypes {
			appendRule([]card.Archetype{a}, []card.AttackType{at})
		}
	}
	for i, a := range card.AllArchetypes {
		for _, b := range card.AllArchetypes[i+1:] {
			appendRule([]card.Archetype{a, b}, nil)
		}
	}
	for i, a := range card.AllArchetypes {
		for _, b := range card.AllArchetypes[i+1:] {
			for _, at := range card.AllAttackTypes {
				appendRule([]card.Archetype{a, b}, []card.AttackType{at})
			}
		}
	}
	for i, a := range card.AllArchetypes {
		for j, b := range card.AllArchetypes[i+1:] {
			for _, c := range card.AllArchetypes[i+1+j+1:] {
				appendRule([]card.Archetype{a, b, c}, nil)
			}
		}
	}

	byCode := make(map[string]int, len(rules))
	for i, r := range rules {
		byCode[r.Code] = i
	}

	return &Registry{rules: rules, byCode: byCode}
}

// baseMultiplier assigns the initial multiplier for the rule at enumeration
// index i. Most rules are small bonuses; every eleventh is an anti-synergy.
func baseMultiplier(i int) float64 {
	if i%11 == 10 {
		return clampRule(0.99 - 0.01*float64(i%3))
	}
	return clampRule(1.02 + 0.01*float64(i%6))
}

func (r *Registry) Len() int {
	return len(r.rules)
}

// Rules returns a copy of the rule table.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

func (r *Registry) GetByCode(code string) (Rule, bool) {
	i, ok := r.byCode[code]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// ActiveMultiplier multiplies together every rule satisfied by the given
// starters, clamped to the lineup bound. Pure; safe for hypothetical lineups.
func (r *Registry) ActiveMultiplier(starters []card.Card) float64 {
	mult := 1.0
	for i := range r.rules {
		if r.rules[i].SatisfiedBy(starters) {
			mult *= r.rules[i].Multiplier
		}
	}
	return ClampLineup(mult)
}

// ActiveRules returns the rules currently satisfied by the given starters.
func (r *Registry) ActiveRules(starters []card.Card) []Rule {
	var out []Rule
	for i := range r.rules {
		if r.rules[i].SatisfiedBy(starters) {
			out = append(out, r.rules[i])
		}
	}
	return out
}

// ShiftRule applies a patch-time multiplier delta to the rule at index i.
func (r *Registry) ShiftRule(i, season int, delta float64) (Rule, Shift, error) {
	if i < 0 || i >= len(r.rules) {
		return Rule{}, Shift{}, fmt.Errorf("synergy rule index out of range: %d", i)
	}
	shift := r.rules[i].ApplyShift(season, delta)
	return r.rules[i], shift, nil
}

func ruleCode(archetypes []card.Archetype, attackTypes []card.AttackType) string {
	parts := make([]string, 0, len(archetypes)+len(attackTypes))
	for _, a := range archetypes {
		parts = append(parts, strings.ToUpper(string(a)[:3]))
	}
	for _, at := range attackTypes {
		parts = append(parts, strings.ToUpper(string(at)[:3]))
	}
	return "SYN-" + strings.Join(parts, "-")
}

func ruleName(archetypes []card.Archetype, attackTypes []card.AttackType) string {
	parts := make([]string, 0, len(archetypes)+len(attackTypes))
	for _, a := range archetypes {
		parts = append(parts, string(a))
	}
	for _, at := range attackTypes {
		parts = append(parts, string(at))
	}
	return strings.Join(parts, " + ") + " Pact"
}

func ruleDescription(archetypes []card.Archetype, attackTypes []card.AttackType) string {
	var sb strings.Builder
	sb.WriteString("Active when the starters include")
	for i, a := range archetypes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" a ")
		sb.WriteString(string(a))
	}
	for _, at := range attackTypes {
		if len(archetypes) > 0 {
			sb.WriteString(" and")
		}
		sb.WriteString(" a ")
		sb.WriteString(string(at))
		sb.WriteString(" attacker")
	}
	sb.WriteString(".")
	return sb.String()
}
