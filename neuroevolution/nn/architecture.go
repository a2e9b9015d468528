package nn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArchitecture is returned when a layer description cannot produce a network.
	ErrInvalidArchitecture = errors.New("invalid network architecture")
	// ErrDimensionMismatch is returned when an input or weight vector has the wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Architecture lists the neuron count of every layer, input layer first.
type Architecture []int

// Validate checks that the architecture has an input and an output layer
// and that every layer holds at least one neuron.
func (a Architecture) Validate() error {
	if len(a) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidArchitecture, len(a))
	}
	for i, n := range a {
		if n <= 0 {
			return fmt.Errorf("%w: layer %d has %d neurons", ErrInvalidArchitecture, i, n)
		}
	}
	return nil
}

// Inputs returns the size of the input layer.
func (a Architecture) Inputs() int { return a[0] }

// Outputs returns the size of the output layer.
func (a Architecture) Outputs() int { return a[len(a)-1] }

// WeightCount is the length of a flat weight vector for this architecture.
func (a Architecture) WeightCount() int {
	total := 0
	for i := 1; i < len(a); i++ {
		total += a[i] * a[i-1]
	}
	return total
}

// Equal reports whether both architectures describe the same layer sizes.
func (a Architecture) Equal(other Architecture) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (a Architecture) Clone() Architecture {
	return append(Architecture(nil), a...)
}

// String renders the architecture as a comma-separated list, e.g. "2,2,1".
func (a Architecture) String() string {
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseArchitecture parses a comma- or space-separated list of layer sizes.
func ParseArchitecture(s string) (Architecture, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	arch := make(Architecture, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: layer size %q: %v", ErrInvalidArchitecture, f, err)
		}
		arch = append(arch, n)
	}
	if err := arch.Validate(); err != nil {
		return nil, err
	}
	return arch, nil
}
