package neuroevolution

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// checkpointData is the gob payload of a checkpoint.
type checkpointData struct {
	Config     Config
	State      State
	Generation int
	Dropped    int
	Population [][]float64
	Current    []genomeRecord
	History    [][]genomeRecord
}

type genomeRecord struct {
	Score   float64
	Weights []float64
}

func recordsOf(g *Generation) []genomeRecord {
	records := make([]genomeRecord, len(g.genomes))
	for i, genome := range g.genomes {
		records[i] = genomeRecord{Score: genome.score, Weights: genome.weights}
	}
	return records
}

// WriteCheckpoint writes the engine state as gzip-compressed gob.
// The random source state is not included; see ReadCheckpoint.
func (n *Neuroevolution) WriteCheckpoint(w io.Writer) error {
	data := checkpointData{
		Config:     *n.Config,
		State:      n.state,
		Generation: n.generation,
		Dropped:    n.dropped,
		Population: n.population,
		Current:    recordsOf(n.current),
		History:    make([][]genomeRecord, len(n.history)),
	}
	for i, g := range n.history {
		data.History[i] = recordsOf(g)
	}

	gzWriter := gzip.NewWriter(w)
	if err := gob.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	return nil
}

// SaveCheckpoint writes a checkpoint to filePath.
func (n *Neuroevolution) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	if err := n.WriteCheckpoint(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint file '%s': %w", filePath, err)
	}
	n.logger.Info("checkpoint saved", "path", filePath, "generation", n.generation)
	return nil
}

// ReadCheckpoint restores an engine written by WriteCheckpoint. Unless
// WithRand is given, the random source is reseeded from the configured seed
// offset by the generation number, so a resumed run is reproducible but does
// not continue the original random sequence.
func ReadCheckpoint(r io.Reader, opts ...Option) (*Neuroevolution, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint stream: %w", err)
	}
	defer gzReader.Close()

	var data checkpointData
	if err := gob.NewDecoder(gzReader).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	config := data.Config
	seeded := rand.New(rand.NewSource(config.Neuroevolution.Seed + int64(data.Generation)))
	n, err := New(&config, append([]Option{WithRand(seeded)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("checkpoint config: %w", err)
	}
	if err := n.restore(&data); err != nil {
		return nil, fmt.Errorf("checkpoint state: %w", err)
	}
	return n, nil
}

// LoadCheckpoint restores an engine from a checkpoint file.
func LoadCheckpoint(filePath string, opts ...Option) (*Neuroevolution, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	n, err := ReadCheckpoint(file, opts...)
	if err != nil {
		return nil, err
	}
	n.logger.Info("checkpoint loaded", "path", filePath, "generation", n.generation)
	return n, nil
}

// restoredState is the lifecycle state implied by how many of the
// populationSize individuals of round generation have reported.
func restoredState(generation, reported, populationSize int) State {
	switch {
	case generation == 0:
		return StateEmpty
	case reported == 0:
		return StatePopulationReady
	case reported < populationSize:
		return StateEvaluating
	default:
		return StateGenerationClosed
	}
}

func (n *Neuroevolution) restore(data *checkpointData) error {
	want := n.arch.WeightCount()
	if data.State < StateEmpty || data.State > StateGenerationClosed {
		return fmt.Errorf("%w: unknown state %d", ErrProtocol, int(data.State))
	}
	if data.Generation < 0 || data.Dropped < 0 {
		return fmt.Errorf("%w: negative generation counters (%d, %d dropped)", ErrProtocol, data.Generation, data.Dropped)
	}

	// An engine that never created a population carries nothing else.
	if data.Generation == 0 {
		if len(data.Population) != 0 || len(data.Current) != 0 || len(data.History) != 0 || data.Dropped != 0 {
			return fmt.Errorf("%w: checkpoint before the initial population carries stored networks or genomes", ErrProtocol)
		}
	} else if len(data.Population) != n.PopulationSize() {
		return fmt.Errorf("%w: %d networks stored, population size is %d", nn.ErrDimensionMismatch, len(data.Population), n.PopulationSize())
	}
	for i, w := range data.Population {
		if len(w) != want {
			return fmt.Errorf("%w: network %d has %d weights, need %d", nn.ErrDimensionMismatch, i, len(w), want)
		}
	}

	// Genomes go back through AddGenome so ranking and score checks apply again.
	rebuild := func(records []genomeRecord) (*Generation, error) {
		g := NewGeneration(n.reproduction)
		for _, rec := range records {
			if len(rec.Weights) != want {
				return nil, fmt.Errorf("%w: genome has %d weights, need %d", nn.ErrDimensionMismatch, len(rec.Weights), want)
			}
			if err := g.AddGenome(newGenomeFromWeights(rec.Score, rec.Weights)); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	history := make([]*Generation, 0, len(data.History))
	for _, records := range data.History {
		g, err := rebuild(records)
		if err != nil {
			return err
		}
		g.close()
		history = append(history, g)
	}
	current, err := rebuild(data.Current)
	if err != nil {
		return err
	}
	if current.Len() > n.PopulationSize() {
		return fmt.Errorf("%w: %d genomes stored for a population of %d", ErrProtocol, current.Len(), n.PopulationSize())
	}

	// The stored state must agree with the reports actually stored, otherwise
	// NextGeneration could breed from a partial round.
	if implied := restoredState(data.Generation, current.Len(), n.PopulationSize()); data.State != implied {
		return fmt.Errorf("%w: checkpoint says %s but %d of %d individuals reported in generation %d",
			ErrProtocol, data.State, current.Len(), n.PopulationSize(), data.Generation)
	}

	n.history = history
	n.current = current
	n.population = data.Population
	n.generation = data.Generation
	n.dropped = data.Dropped
	n.state = data.State
	return nil
}
