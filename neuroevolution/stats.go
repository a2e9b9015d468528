package neuroevolution

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes the scores of one closed generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Size       int     `csv:"size"`
	Best       float64 `csv:"best"`
	Worst      float64 `csv:"worst"`
	Mean       float64 `csv:"mean"`
	StdDev     float64 `csv:"stddev"`
	Median     float64 `csv:"median"`
}

// Stats summarizes the generation's scores under the given generation number.
// An empty generation yields zero values.
func (g *Generation) Stats(generation int) GenerationStats {
	s := GenerationStats{Generation: generation, Size: len(g.genomes)}
	if s.Size == 0 {
		return s
	}

	scores := g.Scores()
	s.Best = scores[0]
	s.Worst = scores[len(scores)-1]
	s.Mean = stat.Mean(scores, nil)
	if s.Size > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}

	// stat.Quantile needs ascending order.
	sort.Float64s(scores)
	s.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("size", s.Size),
		slog.Float64("best", s.Best),
		slog.Float64("worst", s.Worst),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("median", s.Median),
	)
}
