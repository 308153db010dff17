package utils

import "time"

// Stats for performance monitoring and the duel scoreboard
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	WhitePopulation      int
	BlackPopulation      int
	WhiteBirths          int
	BlackBirths          int
	lastUpdate           time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation's populations and births
func (s *Stats) Update(generation, white, black, whiteBorn, blackBorn int) {
	now := time.Now()
	if !s.lastUpdate.IsZero() {
		if d := now.Sub(s.lastUpdate); d > 0 {
			s.GenerationsPerSecond = 1.0 / d.Seconds()
		}
	}
	s.lastUpdate = now

	s.TotalGenerations = generation
	s.WhitePopulation, s.BlackPopulation = white, black
	s.WhiteBirths += whiteBorn
	s.BlackBirths += blackBorn

	// Simple moving average for population
	population := float64(white + black)
	if s.AveragePopulation == 0 {
		s.AveragePopulation = population
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (population * 0.1)
	}
}

// Density returns the live share of a width x height board in percent
func (s *Stats) Density(width, height int) float64 {
	if width*height == 0 {
		return 0
	}
	return float64(s.WhitePopulation+s.BlackPopulation) / float64(width*height) * 100
}
