package card

import "fmt"

// Archetype represents a card's tactical role category.
type Archetype string

const (
	ArchetypeTank     Archetype = "Tank"
	ArchetypeHealer   Archetype = "Healer"
	ArchetypeBurst    Archetype = "Burst"
	ArchetypeControl  Archetype = "Control"
	ArchetypeUtility  Archetype = "Utility"
	ArchetypeBalanced Archetype = "Balanced"
)

var AllArchetypes = []Archetype{
	ArchetypeTank,
	ArchetypeHealer,
	ArchetypeBurst,
	ArchetypeControl,
	ArchetypeUtility,
	ArchetypeBalanced,
}

// AttackType represents how a card delivers damage.
type AttackType string

const (
	AttackMelee  AttackType = "Melee"
	AttackRanged AttackType = "Ranged"
	AttackSpell  AttackType = "Spell"
)

var AllAttackTypes = []AttackType{AttackMelee, AttackRanged, AttackSpell}

const (
	StatMin = 0
	StatMax = 100
)

// Stats holds the five base attributes, each bounded [0, 100].
type Stats struct {
	Attack   int
	Defense  int
	Speed    int
	HitSpeed int
	Stamina  int
}

func (s Stats) Validate() error {
	for name, v := range map[string]int{
		"attack":    s.Attack,
		"defense":   s.Defense,
		"speed":     s.Speed,
		"hit_speed": s.HitSpeed,
		"stamina":   s.Stamina,
	} {
		if v < StatMin || v > StatMax {
			return fmt.Errorf("stat %s out of range: %d", name, v)
		}
	}
	return nil
}

// PatchChange records one stat delta applied during a patch phase.
type PatchChange struct {
	Season   int
	Stat     string
	Before   int
	After    int
	Reaction string
}

// Career accumulates a card's lifetime statistics across seasons.
type Career struct {
	GamesPlayed  int
	Crowns       int
	PeakCrowns   int
	Contribution float64
	TimesDrafted int
	Drafts       int
	AwardPoints  int
	Rings        int
	OVRBySeason  map[int]int
	PatchLog     []PatchChange
}

// UsageRate returns games played relative to possible team games.
func (c Career) UsageRate(teamGames int) float64 {
	if teamGames <= 0 {
		return 0
	}
	return float64(c.GamesPlayed) / float64(teamGames)
}

// PickRate returns how often the card was drafted relative to drafts held.
func (c Career) PickRate() float64 {
	if c.Drafts <= 0 {
		return 0
	}
	return float64(c.TimesDrafted) / float64(c.Drafts)
}

// Card is a draftable unit in the league pool.
type Card struct {
	ID              string
	Name            string
	Archetype       Archetype
	AttackType      AttackType
	Stats           Stats
	OVR             int
	SeasonsLeft     int
	Rookie          bool
	Legend          bool
	SeasonalSpecial bool
	Retired         bool
	HallOfFame      bool
	Career          Career
}

func New(id, name string, archetype Archetype, attackType AttackType, stats Stats, seasonsLeft int) (Card, error) {
	c := Card{
		ID:          id,
		Name:        name,
		Archetype:   archetype,
		AttackType:  attackType,
		Stats:       stats,
		SeasonsLeft: seasonsLeft,
		Career: Career{
			OVRBySeason: make(map[int]int),
		},
	}
	c.OVR = OverallRating(archetype, stats)
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

func (c Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("card name is required")
	}
	if _, ok := archetypeWeights[c.Archetype]; !ok {
		return fmt.Errorf("invalid card archetype: %s", c.Archetype)
	}
	valid := false
	for _, at := range AllAttackTypes {
		if c.AttackType == at {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid card attack type: %s", c.AttackType)
	}
	if err := c.Stats.Validate(); err != nil {
		return fmt.Errorf("card %s: %w", c.ID, err)
	}
	if c.OVR < StatMin || c.OVR > StatMax {
		return fmt.Errorf("card %s overall rating out of range: %d", c.ID, c.OVR)
	}
	if c.SeasonsLeft < 0 {
		return fmt.Errorf("card %s seasons left cannot be negative: %d", c.ID, c.SeasonsLeft)
	}
	return nil
}

// Draftable reports whether the card may enter a draft pool.
func (c Card) Draftable() bool {
	return !c.Retired && c.SeasonsLeft > 0
}

// OffensiveComposite weighs the stats that drive crown attribution.
func (c Card) OffensiveComposite() float64 {
	return 0.5*float64(c.Stats.Attack) + 0.3*float64(c.Stats.Speed) + 0.2*float64(c.Stats.HitSpeed)
}

// RecomputeOVR refreshes the derived rating after a stat mutation.
func (c *Card) RecomputeOVR() {
	c.OVR = OverallRating(c.Archetype, c.Stats)
}
