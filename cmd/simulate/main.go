package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
	"github.com/rizkyfalih/crown-league/internal/usecase"
	"github.com/sourcegraph/conc/panics"
)

// Seeds are spaced so parallel leagues never share a random stream.
const seedStride = 1_000_003

type leagueReport struct {
	Index        int
	Seed         int64
	Seasons      int
	Champions    map[string]int
	LastChampion string
	HallOfFamers int
	Err          error
}

func main() {
	leagues := flag.Int("leagues", 4, "number of independent leagues to simulate")
	seasons := flag.Int("seasons", 5, "seasons to run per league")
	seed := flag.Int64("seed", 1337, "base seed; league i runs with seed+i*stride")
	workers := flag.Int("workers", runtime.NumCPU(), "max leagues simulated concurrently")
	flag.Parse()

	logger := logging.NewJSON(logging.LevelWarn)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if *leagues <= 0 || *seasons <= 0 {
		fmt.Fprintln(os.Stderr, "leagues and seasons must be positive")
		os.Exit(2)
	}

	runner, err := ants.NewPool(*workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build worker pool: %v\n", err)
		os.Exit(1)
	}
	defer runner.Release()

	reports := make([]leagueReport, *leagues)
	var wg sync.WaitGroup
	var catcher panics.Catcher

	for i := 0; i < *leagues; i++ {
		i := i
		wg.Add(1)
		submitErr := runner.Submit(func() {
			defer wg.Done()
			catcher.Try(func() {
				reports[i] = runLeague(i, *seed+int64(i)*seedStride, *seasons)
			})
		})
		if submitErr != nil {
			wg.Done()
			reports[i] = leagueReport{Index: i, Err: errors.Wrap(submitErr, "submit league")}
		}
	}
	wg.Wait()

	if recovered := catcher.Recovered(); recovered != nil {
		fmt.Fprintf(os.Stderr, "league simulation panicked: %v\n", recovered)
		os.Exit(1)
	}

	printSummary(reports)

	for _, report := range reports {
		if report.Err != nil {
			os.Exit(1)
		}
	}
}

func runLeague(index int, seed int64, seasons int) leagueReport {
	report := leagueReport{
		Index:     index,
		Seed:      seed,
		Seasons:   seasons,
		Champions: make(map[string]int),
	}

	cfg, err := config.Load()
	if err != nil {
		report.Err = errors.Wrap(err, "load config")
		return report
	}
	cfg.Seed = seed

	ctx := context.Background()
	league, err := usecase.NewLeague(ctx, cfg, logging.Default())
	if err != nil {
		report.Err = errors.Wrapf(err, "league %d", index)
		return report
	}

	for s := 0; s < seasons; s++ {
		history, err := league.RunFullSeason(ctx)
		if err != nil {
			report.Err = errors.Wrapf(err, "league %d season %d", index, s+1)
			return report
		}
		report.Champions[history.ChampionID]++
		report.LastChampion = history.ChampionID
	}

	report.HallOfFamers = countHallOfFamers(ctx, league)
	return report
}

func countHallOfFamers(ctx context.Context, league *usecase.League) int {
	leaders, err := league.GetLeagueLeaders(ctx, usecase.LeaderCategoryCrowns, 0)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range leaders {
		profile, err := league.GetCardProfile(ctx, entry.CardID)
		if err != nil {
			continue
		}
		if profile.Card.HallOfFame {
			count++
		}
	}
	return count
}

func printSummary(reports []leagueReport) {
	for _, report := range reports {
		if report.Err != nil {
			fmt.Printf("league %d (seed %d): FAILED: %v\n", report.Index, report.Seed, report.Err)
			continue
		}

		type stand struct {
			TeamID string
			Titles int
		}
		standings := make([]stand, 0, len(report.Champions))
		for teamID, titles := range report.Champions {
			standings = append(standings, stand{TeamID: teamID, Titles: titles})
		}
		sort.Slice(standings, func(i, j int) bool {
			if standings[i].Titles != standings[j].Titles {
				return standings[i].Titles > standings[j].Titles
			}
			return standings[i].TeamID < standings[j].TeamID
		})

		fmt.Printf("league %d (seed %d): %d seasons, last champion %s, %d hall of famers\n",
			report.Index, report.Seed, report.Seasons, report.LastChampion, report.HallOfFamers)
		for _, s := range standings {
			fmt.Printf("  %-12s %d title(s)\n", s.TeamID, s.Titles)
		}
	}
}
