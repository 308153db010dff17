package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-duel/events"
	"github.com/sheikhrachel/go-gol-duel/utils"
)

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		fmt.Println("Using default configuration (config.json not usable)")
		config = utils.DefaultConfig()
	}

	logger, err := utils.NewLogger(config.LogLevel)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err = run(config, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("game stopped", zap.Error(err))
		os.Exit(1)
	}
}

// run plays one session until the match ends, the generation limit is hit
// or the process is interrupted
func run(config utils.Config, logger *zap.Logger) error {
	s, renderer, stats, err := initializeGame(config, logger)
	if err != nil {
		return err
	}
	displayGameInfo(config, s)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, finish := context.WithCancel(ctx)
	defer finish()

	var (
		grid          = s.Grid()
		clk           = s.Clock()
		stagnantCount = 0
		result        *events.MatchSummary
	)

	// Every handler runs on the clock loop, right after the generation it reports
	s.Bus().OnScoreChanged(func(e events.ScoreChanged) {
		generation := clk.Generation()
		white, black := grid.CountByOwner()
		stats.Update(generation, white, black, e.WhiteDelta, e.BlackDelta)

		// compare before recording, otherwise the current state always matches itself
		isStagnant := grid.IsStagnant()
		grid.UpdateHistory()
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if config.Render {
			status := "Active"
			if isStagnant {
				status = fmt.Sprintf("Stagnant (%d)", stagnantCount)
			}
			renderer.Clear()
			displayGameStatus(generation, s, stats, status)
			renderer.Display(grid)
		}

		if config.Mode == utils.ModeDuel {
			if !s.Match().PvPEnabled() {
				return
			}
			switch {
			case config.MaxGenerations > 0 && generation >= config.MaxGenerations:
				logger.Info("generation limit reached", zap.Int("generation", generation))
				s.Match().EndMatch()
			case config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold:
				logger.Info("board stagnated", zap.Int("generation", generation))
				s.Match().EndMatch()
			}
			return
		}

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			finish()
			return
		}
		shouldRestart, reason := checkRestartConditions(white+black, stagnantCount, generation, config)
		if shouldRestart && config.AutoRestart {
			restartGame(s, reason, logger)
			stagnantCount = 0
		}
	})

	s.Bus().OnMatchEnded(func(summary events.MatchSummary) {
		result = &summary
		finish()
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return clk.Run(ctx)
	})
	eg.Go(func() error {
		var beginErr error
		if err := clk.Do(ctx, func() { beginErr = beginGame(config, s, logger) }); err != nil {
			return err
		}
		return beginErr
	})
	err = eg.Wait()

	if result != nil {
		fmt.Printf("\n🏁 %s (match %s)\n", result, result.MatchID)
	}
	fmt.Printf("Final stats: %d generations | White births: %d | Black births: %d\n",
		stats.TotalGenerations, stats.WhiteBirths, stats.BlackBirths)
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
	return err
}
