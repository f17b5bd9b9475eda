package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/season"
)

// cardSeasonLine aggregates one card's season for voting purposes.
type cardSeasonLine struct {
	CardID   string
	CardName string
	TeamID   string
	TeamName string
	Crowns   int
	WinPct   float64
}

// runAwardsPhase hands out MVP, Most Improved, All-League tiers, the
// fan-voted All-Star squad and Game of the Year, then credits award points
// to the winners' careers.
func (s *SeasonService) runAwardsPhase(ctx context.Context, seasonNum int, championID string) (season.Awards, []season.LeaderEntry, error) {
	lines, err := s.seasonLines(ctx)
	if err != nil {
		return season.Awards{}, nil, err
	}

	awards := season.Awards{}

	// MVP rewards crown production on a winning team.
	sort.Slice(lines, func(i, j int) bool {
		si := float64(lines[i].Crowns) * (1 + lines[i].WinPct)
		sj := float64(lines[j].Crowns) * (1 + lines[j].WinPct)
		if si != sj {
			return si > sj
		}
		return lines[i].CardID < lines[j].CardID
	})
	if len(lines) > 0 {
		awards.MVPCardID = lines[0].CardID
		if err := s.creditAward(ctx, lines[0].CardID, awardPointsMVP); err != nil {
			return season.Awards{}, nil, err
		}
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("%s of %s named Season %d MVP.", lines[0].CardName, lines[0].TeamName, seasonNum))
	}

	if mip, ok, err := s.mostImproved(ctx, seasonNum); err != nil {
		return season.Awards{}, nil, err
	} else if ok {
		awards.MostImprovedCardID = mip
		if err := s.creditAward(ctx, mip, awardPointsMostImproved); err != nil {
			return season.Awards{}, nil, err
		}
	}

	// All-League: three crown-ranked tiers of five.
	byCrowns := append([]cardSeasonLine(nil), lines...)
	sort.Slice(byCrowns, func(i, j int) bool {
		if byCrowns[i].Crowns != byCrowns[j].Crowns {
			return byCrowns[i].Crowns > byCrowns[j].Crowns
		}
		return byCrowns[i].CardID < byCrowns[j].CardID
	})
	tierPoints := [allLeagueTiers]int{5, 3, 2}
	for tier := 0; tier < allLeagueTiers; tier++ {
		var ids []string
		for i := tier * allLeagueTierSize; i < (tier+1)*allLeagueTierSize && i < len(byCrowns); i++ {
			ids = append(ids, byCrowns[i].CardID)
			if err := s.creditAward(ctx, byCrowns[i].CardID, tierPoints[tier]); err != nil {
				return season.Awards{}, nil, err
			}
		}
		awards.AllLeague = append(awards.AllLeague, ids)
	}

	allStars, err := s.fanVoteAllStars(ctx, byCrowns)
	if err != nil {
		return season.Awards{}, nil, err
	}
	awards.AllStars = allStars

	goty, err := s.gameOfTheYear(ctx, seasonNum)
	if err != nil {
		return season.Awards{}, nil, err
	}
	awards.GameOfTheYearID = goty

	var leaders []season.LeaderEntry
	for i := 0; i < 10 && i < len(byCrowns); i++ {
		leaders = append(leaders, season.LeaderEntry{
			CardID: byCrowns[i].CardID,
			Name:   byCrowns[i].CardName,
			TeamID: byCrowns[i].TeamID,
			Value:  float64(byCrowns[i].Crowns),
		})
	}

	return awards, leaders, nil
}

// seasonLines joins each rostered card with its team's season context.
func (s *SeasonService) seasonLines(ctx context.Context) ([]cardSeasonLine, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	var lines []cardSeasonLine
	for _, t := range teams {
		winPct := 0.0
		if t.Wins+t.Losses > 0 {
			winPct = float64(t.Wins) / float64(t.Wins+t.Losses)
		}
		for _, cid := range t.Roster {
			c, ok, err := s.cardRepo.GetByID(ctx, cid)
			if err != nil || !ok {
				continue
			}
			lines = append(lines, cardSeasonLine{
				CardID:   c.ID,
				CardName: c.Name,
				TeamID:   t.ID,
				TeamName: t.Name,
				Crowns:   t.SeasonCrowns[cid],
				WinPct:   winPct,
			})
		}
	}
	return lines, nil
}

func (s *SeasonService) mostImproved(ctx context.Context, seasonNum int) (string, bool, error) {
	if seasonNum == 1 {
		return "", false, nil
	}

	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list cards: %w", err)
	}

	bestID, bestDelta := "", 0
	for _, c := range cards {
		prior, ok := c.Career.OVRBySeason[seasonNum-1]
		if !ok || c.Retired {
			continue
		}
		delta := c.OVR - prior
		if delta > bestDelta || (delta == bestDelta && bestID != "" && c.ID < bestID) {
			bestID, bestDelta = c.ID, delta
		}
	}
	if bestID == "" {
		return "", false, nil
	}
	return bestID, true, nil
}

// fanVoteAllStars picks the All-Star squad with a weighted fan vote over the
// crown leaders: production dominates but the vote can surprise.
func (s *SeasonService) fanVoteAllStars(ctx context.Context, byCrowns []cardSeasonLine) ([]string, error) {
	poolSize := allStarCount * 2
	if poolSize > len(byCrowns) {
		poolSize = len(byCrowns)
	}
	pool := append([]cardSeasonLine(nil), byCrowns[:poolSize]...)

	var picked []string
	for len(picked) < allStarCount && len(pool) > 0 {
		weights := make([]float64, len(pool))
		for i, line := range pool {
			weights[i] = float64(line.Crowns) + 1
		}
		idx := s.rng.WeightedIndex(weights)
		picked = append(picked, pool[idx].CardID)
		if err := s.creditAward(ctx, pool[idx].CardID, awardPointsAllStar); err != nil {
			return nil, err
		}
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	sort.Strings(picked)
	return picked, nil
}

// gameOfTheYear scores every game of the season by margin and highlight
// volume and returns the most dramatic one.
func (s *SeasonService) gameOfTheYear(ctx context.Context, seasonNum int) (string, error) {
	games, err := s.gameRepo.ListBySeason(ctx, seasonNum)
	if err != nil {
		return "", fmt.Errorf("list games: %w", err)
	}

	bestID, bestScore := "", -1
	for _, g := range games {
		// Close games with lots of highlights read best.
		score := (3-g.Margin())*2 + len(g.Highlights)
		if g.Playoff {
			score += 3
		}
		if score > bestScore {
			bestID, bestScore = g.ID, score
		}
	}
	return bestID, nil
}

func (s *SeasonService) creditAward(ctx context.Context, cardID string, points int) error {
	c, ok, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil || !ok {
		return fmt.Errorf("get card %s for award: %w", cardID, err)
	}
	c.Career.AwardPoints += points
	if err := s.cardRepo.Save(ctx, c); err != nil {
		return fmt.Errorf("save awarded card %s: %w", cardID, err)
	}
	return nil
}

// runOffseason ages every active card, retires the expired ones with a
// one-time Hall of Fame evaluation, decays rivalries, and seeds the next
// rookie class.
func (s *SeasonService) runOffseason(ctx context.Context, seasonNum int) error {
	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}

	var retirements, inductions []string
	for _, c := range cards {
		if c.Retired {
			continue
		}

		if c.Career.OVRBySeason == nil {
			c.Career.OVRBySeason = make(map[int]int)
		}
		c.Career.OVRBySeason[seasonNum] = c.OVR
		c.Rookie = false
		c.SeasonalSpecial = false

		c.SeasonsLeft--
		if c.SeasonsLeft <= 0 {
			c.Retired = true
			retirements = append(retirements, c.Name)

			score := card.HallOfFameScore(c)
			switch {
			case score >= card.HOFGuaranteedThreshold:
				c.HallOfFame = true
			case score >= card.HOFBubbleThreshold:
				if s.rng.Chance(card.BubbleInductionChance(score)) {
					c.HallOfFame = true
				}
			}
			if c.HallOfFame {
				inductions = append(inductions, c.Name)
			}
		}

		if err := s.cardRepo.Save(ctx, c); err != nil {
			return fmt.Errorf("save card %s: %w", c.ID, err)
		}
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		for rival, intensity := range t.Rivalries {
			if intensity <= 1 {
				delete(t.Rivalries, rival)
				continue
			}
			t.Rivalries[rival] = intensity - 1
		}
		if err := s.teamRepo.Save(ctx, t); err != nil {
			return fmt.Errorf("save team %s: %w", t.ID, err)
		}
	}

	if _, err := s.generator.GenerateRookies(ctx, s.cfg.RookiesPerYear); err != nil {
		return fmt.Errorf("generate rookies: %w", err)
	}

	if len(retirements) > 0 {
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("%d cards hang it up after Season %d.", len(retirements), seasonNum))
	}
	for _, name := range inductions {
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("%s enters the Hall of Fame.", name))
	}

	s.logger.Info("offseason complete",
		"season", seasonNum,
		"retired", len(retirements),
		"hall_of_fame", len(inductions),
	)

	return nil
}
