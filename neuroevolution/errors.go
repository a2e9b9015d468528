package neuroevolution

import "errors"

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid neuroevolution config")
	// ErrInvalidGenome is returned for genomes that cannot be ranked.
	ErrInvalidGenome = errors.New("invalid genome")
	// ErrBreedingUnderflow is returned when no parent is available to breed from.
	ErrBreedingUnderflow = errors.New("no genomes to breed from")
	// ErrProtocol is returned when the caller drives the lifecycle out of order.
	ErrProtocol = errors.New("neuroevolution protocol violation")
)
