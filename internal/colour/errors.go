package colour

import (
	"fmt"
	"strings"
)

// Cluster counts accepted by every extractor. There is no upper bound: a k
// above the number of distinct sample colours yields zero-weight duplicates.
const (
	MinClusters     = 2
	DefaultClusters = 8
)

// InvalidClusterCountError is returned when the requested cluster count is
// below MinClusters.
type InvalidClusterCountError struct {
	Count int
}

func (e *InvalidClusterCountError) Error() string {
	return fmt.Sprintf("cluster count must be at least %d, got %d", MinClusters, e.Count)
}

// ValidateClusterCount checks k against MinClusters.
func ValidateClusterCount(k int) error {
	if k < MinClusters {
		return &InvalidClusterCountError{Count: k}
	}
	return nil
}

// IncompletePaletteError is returned when one or more roles have no colour
// after mapping.
type IncompletePaletteError struct {
	Missing []Role
}

func (e *IncompletePaletteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		names[i] = r.String()
	}
	return fmt.Sprintf("palette is incomplete, missing roles: %s", strings.Join(names, ", "))
}
