// Package neuroevolution evolves the weights of fixed-shape feedforward
// networks with a generational genetic algorithm.
//
// Each round the engine hands out one network per individual. The caller runs
// its own simulation, feeds observations to nn.Network.Activate every tick and
// reports a Genome with the final score when an individual's episode ends.
// Once every individual has reported, NextGeneration ranks the genomes, keeps
// the elites unchanged, injects fresh random networks and fills the rest with
// mutated crossovers of the elites.
//
// Basic usage:
//
//	config, err := neuroevolution.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	engine, err := neuroevolution.New(config)
//	if err != nil {
//		log.Fatalf("Error creating engine: %v", err)
//	}
//
//	networks, err := engine.CreateInitialPopulation()
//	for round := 0; round < 100; round++ {
//		for _, net := range networks {
//			score := play(net) // caller-defined episode
//			if err := engine.AddGenome(neuroevolution.NewGenome(score, net)); err != nil {
//				log.Fatal(err)
//			}
//		}
//		networks, err = engine.NextGeneration()
//		if err != nil {
//			log.Fatal(err)
//		}
//	}
//
// All randomness comes from one *rand.Rand (see WithRand), so a fixed seed
// reproduces every population exactly.
package neuroevolution
