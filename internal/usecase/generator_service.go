package usecase

import (
	"context"
	"fmt"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/platform/id"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

const (
	statRollMin = 45
	statRollMax = 99
)

// GeneratorService produces the initial card pool, the team/GM roster and
// per-season rookie classes from the shared seeded random source.
type GeneratorService struct {
	cfg      config.Config
	rng      *RNG
	ids      id.Generator
	cardRepo card.Repository
	teamRepo team.Repository
	logger   *logging.Logger
}

func NewGeneratorService(
	cfg config.Config,
	rng *RNG,
	ids id.Generator,
	cardRepo card.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) (*GeneratorService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &GeneratorService{
		cfg:      cfg,
		rng:      rng,
		ids:      ids,
		cardRepo: cardRepo,
		teamRepo: teamRepo,
		logger:   logger,
	}, nil
}

// GenerateWorld populates the card pool and the 30-team league. Called once
// per league lifetime; the roster persists while cards churn season to season.
func (s *GeneratorService) GenerateWorld(ctx context.Context) error {
	ctx, span := startEngineSpan(ctx, "usecase.GeneratorService.GenerateWorld")
	defer span.End()

	cards, err := s.generateCards(s.cfg.CardPoolSize, false)
	if err != nil {
		return fmt.Errorf("generate card pool: %w", err)
	}

	// One seasonal special per season, picked from the fresh pool.
	special := s.rng.Intn(len(cards))
	cards[special].SeasonalSpecial = true

	if err := s.cardRepo.SaveAll(ctx, cards); err != nil {
		return fmt.Errorf("save card pool: %w", err)
	}

	teams, err := s.generateTeams()
	if err != nil {
		return fmt.Errorf("generate teams: %w", err)
	}
	if err := s.teamRepo.SaveAll(ctx, teams); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}

	s.logger.Info("league world generated",
		"cards", len(cards),
		"teams", len(teams),
		"seed", s.rng.Seed(),
	)

	return nil
}

// GenerateRookies creates the rookie class queued for a season's draft pool.
func (s *GeneratorService) GenerateRookies(ctx context.Context, n int) ([]card.Card, error) {
	ctx, span := startEngineSpan(ctx, "usecase.GeneratorService.GenerateRookies")
	defer span.End()

	if n < 0 {
		return nil, fmt.Errorf("%w: rookie count cannot be negative: %d", ErrInvalidInput, n)
	}

	rookies, err := s.generateCards(n, true)
	if err != nil {
		return nil, fmt.Errorf("generate rookies: %w", err)
	}
	if len(rookies) > 0 {
		special := s.rng.Intn(len(rookies))
		rookies[special].SeasonalSpecial = true
	}

	if err := s.cardRepo.SaveAll(ctx, rookies); err != nil {
		return nil, fmt.Errorf("save rookies: %w", err)
	}

	return rookies, nil
}

func (s *GeneratorService) generateCards(n int, rookie bool) ([]card.Card, error) {
	names := s.sampleCardNames(n)
	out := make([]card.Card, 0, n)

	for i := 0; i < n; i++ {
		archetype := card.AllArchetypes[s.rng.Intn(len(card.AllArchetypes))]
		attackType := card.AllAttackTypes[s.rng.Intn(len(card.AllAttackTypes))]
		stats := card.Stats{
			Attack:   s.rng.IntBetween(statRollMin, statRollMax),
			Defense:  s.rng.IntBetween(statRollMin, statRollMax),
			Speed:    s.rng.IntBetween(statRollMin, statRollMax),
			HitSpeed: s.rng.IntBetween(statRollMin, statRollMax),
			Stamina:  s.rng.IntBetween(statRollMin, statRollMax),
		}
		lifespan := s.rng.IntBetween(s.cfg.CardLifespanMin, s.cfg.CardLifespanMax)

		c, err := card.New(s.ids.NewID("card"), names[i], archetype, attackType, stats, lifespan)
		if err != nil {
			return nil, err
		}
		c.Rookie = rookie

		out = append(out, c)
	}

	return out, nil
}

func (s *GeneratorService) generateTeams() ([]team.Team, error) {
	n := config.TeamCount
	if len(teamCities) < n || len(teamMascots) < n {
		return nil, fmt.Errorf("%w: team name pool smaller than team count %d", ErrInvalidInput, n)
	}

	mascotOrder := make([]int, len(teamMascots))
	for i := range mascotOrder {
		mascotOrder[i] = i
	}
	s.rng.Shuffle(len(mascotOrder), func(i, j int) {
		mascotOrder[i], mascotOrder[j] = mascotOrder[j], mascotOrder[i]
	})

	gmNames := s.sampleGMNames(n)

	out := make([]team.Team, 0, n)
	for i := 0; i < n; i++ {
		human := i == 0
		name := teamCities[i] + " " + teamMascots[mascotOrder[i]]
		if human && s.cfg.HumanTeamName != "" {
			name = s.cfg.HumanTeamName
		}

		gm := team.GM{
			Name:        gmNames[i],
			Style:       team.AllStyles[s.rng.Intn(len(team.AllStyles))],
			Personality: gmPersonalities[s.rng.Intn(len(gmPersonalities))],
		}
		if human {
			gm.Name = "You"
			gm.Style = team.StyleConservative
		}

		t := team.New(s.ids.NewID("team"), name, gm, human)
		if err := t.Validate(); err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

// sampleCardNames draws n unique names from the prefix x base cross product,
// extending with numerals once the 400 raw combinations run out.
func (s *GeneratorService) sampleCardNames(n int) []string {
	combos := make([]string, 0, len(cardNamePrefixes)*len(cardNameBases))
	for _, p := range cardNamePrefixes {
		for _, b := range cardNameBases {
			combos = append(combos, p+" "+b)
		}
	}
	s.rng.Shuffle(len(combos), func(i, j int) {
		combos[i], combos[j] = combos[j], combos[i]
	})

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(combos) {
			out = append(out, combos[i])
			continue
		}
		out = append(out, fmt.Sprintf("%s %d", combos[i%len(combos)], i/len(combos)+1))
	}
	return out
}

func (s *GeneratorService) sampleGMNames(n int) []string {
	firstOrder := make([]int, len(gmFirstNames))
	lastOrder := make([]int, len(gmLastNames))
	for i := range firstOrder {
		firstOrder[i] = i
	}
	for i := range lastOrder {
		lastOrder[i] = i
	}
	s.rng.Shuffle(len(firstOrder), func(i, j int) {
		firstOrder[i], firstOrder[j] = firstOrder[j], firstOrder[i]
	})
	s.rng.Shuffle(len(lastOrder), func(i, j int) {
		lastOrder[i], lastOrder[j] = lastOrder[j], lastOrder[i]
	})

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, gmFirstNames[firstOrder[i%len(firstOrder)]]+" "+gmLastNames[lastOrder[i%len(lastOrder)]])
	}
	return out
}
