package colour

import (
	"fmt"
	"slices"
)

// Cluster is one dominant colour and the share of samples it represents.
type Cluster struct {
	Centre RGB     `json:"centre"`
	Weight float64 `json:"weight"`
}

// Extractor defines the interface for cluster extraction algorithms.
type Extractor interface {
	// Extract partitions samples into k clusters sorted by descending weight.
	Extract(samples []RGB, k int) ([]Cluster, error)
}

// Algorithm represents the cluster extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses seeded k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant uses the dominantcolor library.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmDominant}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Method returns the human-readable extraction method recorded in metadata.
func (a Algorithm) Method() string {
	switch a {
	case AlgorithmDominant:
		return "dominant colour"
	default:
		return "k-means clustering"
	}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm, seed int64) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans, "":
		return NewKMeansExtractor(seed), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// sortClusters orders clusters by descending weight, keeping input order on ties.
func sortClusters(clusters []Cluster) {
	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})
}

// distinctClusters returns one cluster per distinct sample colour, in first
// seen order, or nil when there are more than k distinct colours. The result
// is padded to k with zero-weight copies of the dominant colour.
func distinctClusters(samples []RGB, k int) []Cluster {
	counts := make(map[RGB]int, k+1)
	order := make([]RGB, 0, k+1)
	for _, s := range samples {
		if _, ok := counts[s]; !ok {
			if len(order) == k {
				return nil
			}
			order = append(order, s)
		}
		counts[s]++
	}

	total := float64(len(samples))
	clusters := make([]Cluster, 0, k)
	for _, c := range order {
		clusters = append(clusters, Cluster{Centre: c, Weight: float64(counts[c]) / total})
	}
	sortClusters(clusters)
	for len(clusters) < k {
		clusters = append(clusters, Cluster{Centre: clusters[0].Centre})
	}
	return clusters
}

func checkInput(samples []RGB, k int) error {
	if err := ValidateClusterCount(k); err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to cluster")
	}
	return nil
}
