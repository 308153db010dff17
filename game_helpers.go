package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/session"
	"github.com/sheikhrachel/go-gol-duel/utils"
)

// initializeGame sets up the session and its presentation helpers
func initializeGame(config utils.Config, logger *zap.Logger) (
	*session.Session,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	s, err := session.New(config, logger)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to build session")
	}
	return s, &model.TerminalRenderer{}, utils.NewStats(), nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, s *session.Session) {
	fmt.Printf("Mode: %s | Grid: %dx%d | Wrap: %v | Parallel: %v | Memory Pool: %v\n",
		config.Mode, s.Grid().GetWidth(), s.Grid().GetHeight(), config.Wrap,
		config.UseParallel, config.UseMemoryPool)
	if config.Mode == utils.ModeDuel {
		fmt.Printf("Seeds per player: %d | Scripted openings: %d\n",
			config.SeedsPerPlayer, len(config.Openings))
	}
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(time.Second)
}

// beginGame seeds the board. A duel plays the scripted openings in turn
// order, forfeits whatever seeds the script leaves unspent and starts the
// simulation; free play starts from a random White board.
func beginGame(config utils.Config, s *session.Session, logger *zap.Logger) error {
	if config.Mode == utils.ModeFree {
		s.Randomize()
		s.Clock().Start()
		return nil
	}

	if err := s.StartPlacement(config.SeedsPerPlayer); err != nil {
		return errors.Wrap(err, "[beginGame] failed to start placement")
	}

	for _, o := range config.Openings {
		if s.Clock().State() != model.StatePlacement {
			break
		}
		player := s.Match().Turn()
		placed := s.Stamp(o.Pattern, o.X, o.Y)
		logger.Info("opening played",
			zap.Stringer("player", player),
			zap.String("pattern", o.Pattern),
			zap.Int("x", o.X),
			zap.Int("y", o.Y),
			zap.Int("placed", placed),
		)
	}

	// each pass empties the player on turn, so two passes finish placement
	for range 2 {
		if s.Clock().State() != model.StatePlacement {
			break
		}
		m := s.Match()
		logger.Warn("seeds forfeited",
			zap.Stringer("player", m.Turn()),
			zap.Int("seeds", m.SeedsLeftForCurrentPlayer()),
		)
		m.ConsumeSeeds(m.SeedsLeftForCurrentPlayer())
	}

	// auto start may already be running it, or the match may be over
	if s.Match().PvPEnabled() && s.Clock().State() != model.StateRunning {
		s.Clock().Start()
	}
	return nil
}

// displayGameStatus shows the current game status
func displayGameStatus(generation int, s *session.Session, stats *utils.Stats, status string) {
	white, black := s.Match().Scores()
	fmt.Printf("Gen: %d | %s | Status: %s\n", generation, s.ModeText(), status)
	fmt.Printf("White: %d alive, %d pts | Black: %d alive, %d pts | Density: %.1f%%\n",
		stats.WhitePopulation, white, stats.BlackPopulation, black,
		stats.Density(s.Grid().GetWidth(), s.Grid().GetHeight()))
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())
	fmt.Println()
}

// checkRestartConditions determines if a free-play board should be refreshed
func checkRestartConditions(livingCells, stagnantCount, generation int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%200 == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame refills a free-play board without stopping the clock
func restartGame(s *session.Session, reason string, logger *zap.Logger) {
	logger.Info("restarting board", zap.String("reason", reason))
	s.ClearGrid()
	s.Randomize()
}
