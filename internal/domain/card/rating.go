package card

import "math"

// statWeights maps each archetype to its weighting over the five base stats.
// Weights sum to 1 so the derived rating stays inside [0, 100].
type statWeights struct {
	Attack   float64
	Defense  float64
	Speed    float64
	HitSpeed float64
	Stamina  float64
}

var archetypeWeights = map[Archetype]statWeights{
	ArchetypeTank:     {Attack: 0.15, Defense: 0.35, Speed: 0.05, HitSpeed: 0.10, Stamina: 0.35},
	ArchetypeHealer:   {Attack: 0.10, Defense: 0.25, Speed: 0.15, HitSpeed: 0.15, Stamina: 0.35},
	ArchetypeBurst:    {Attack: 0.40, Defense: 0.05, Speed: 0.30, HitSpeed: 0.20, Stamina: 0.05},
	ArchetypeControl:  {Attack: 0.15, Defense: 0.20, Speed: 0.20, HitSpeed: 0.30, Stamina: 0.15},
	ArchetypeUtility:  {Attack: 0.15, Defense: 0.15, Speed: 0.25, HitSpeed: 0.25, Stamina: 0.20},
	ArchetypeBalanced: {Attack: 0.20, Defense: 0.20, Speed: 0.20, HitSpeed: 0.20, Stamina: 0.20},
}

// OverallRating derives the 0-100 summary score from base stats using
// archetype-specific weights. Deterministic and side-effect free.
func OverallRating(archetype Archetype, stats Stats) int {
	w, ok := archetypeWeights[archetype]
	if !ok {
		w = archetypeWeights[ArchetypeBalanced]
	}

	raw := w.Attack*float64(stats.Attack) +
		w.Defense*float64(stats.Defense) +
		w.Speed*float64(stats.Speed) +
		w.HitSpeed*float64(stats.HitSpeed) +
		w.Stamina*float64(stats.Stamina)

	ovr := int(math.Round(raw))
	if ovr < StatMin {
		ovr = StatMin
	}
	if ovr > StatMax {
		ovr = StatMax
	}
	return ovr
}
