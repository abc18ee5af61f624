package colour

import (
	"math"
	"math/rand"
)

// DefaultSeed matches the fixed seed used when no seed is configured.
const DefaultSeed int64 = 42

// KMeansExtractor implements color extraction using k-means clustering.
type KMeansExtractor struct {
	seed          int64
	maxIterations int
	convergence   float64
}

// NewKMeansExtractor creates a KMeansExtractor whose initialisation is
// driven by seed, so identical samples always give identical clusters.
func NewKMeansExtractor(seed int64) *KMeansExtractor {
	return &KMeansExtractor{
		seed:          seed,
		maxIterations: 50,
		convergence:   0.5,
	}
}

// Extract clusters the samples and returns k clusters with their relative
// weights (cluster sizes), largest first.
func (e *KMeansExtractor) Extract(samples []RGB, k int) ([]Cluster, error) {
	if err := checkInput(samples, k); err != nil {
		return nil, err
	}

	// Fewer distinct colours than clusters: every colour is its own cluster.
	if clusters := distinctClusters(samples, k); clusters != nil {
		return clusters, nil
	}

	points := make([]point3D, len(samples))
	for i, s := range samples {
		points[i] = point3D{R: float64(s.R), G: float64(s.G), B: float64(s.B)}
	}

	// #nosec G404 -- deterministic clustering, not security sensitive
	rng := rand.New(rand.NewSource(e.seed))
	centroids, counts := e.kmeans(rng, points, k)

	total := float64(len(points))
	clusters := make([]Cluster, k)
	for i, c := range centroids {
		clusters[i] = Cluster{Centre: c.quantise(), Weight: float64(counts[i]) / total}
	}
	sortClusters(clusters)
	return clusters, nil
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	return math.Sqrt(p.distanceSq(other))
}

func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

func (p point3D) quantise() RGB {
	q := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(255, math.Round(v))))
	}
	return RGB{R: q(p.R), G: q(p.G), B: q(p.B)}
}

// kmeans performs k-means clustering on the points.
// Returns centroids and the number of points assigned to each.
func (e *KMeansExtractor) kmeans(rng *rand.Rand, points []point3D, k int) ([]point3D, []int) {
	centroids := e.initialiseCentroids(rng, points, k)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range e.maxIterations {
		changed := e.assign(points, centroids, assignments)

		// If very few assignments changed (< 1%), we've converged
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := e.recalculateCentroids(rng, points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final pass so weights describe the returned centroids.
	e.assign(points, centroids, assignments)
	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}
	return centroids, counts
}

// assign moves every point to its nearest centroid and reports how many moved.
func (e *KMeansExtractor) assign(points, centroids []point3D, assignments []int) int {
	changed := 0
	for i, p := range points {
		nearest := findNearestCentroid(p, centroids)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// initialiseCentroids picks starting centroids with k-means++: each new
// centroid is drawn with probability proportional to its squared distance
// from the nearest centroid already chosen.
func (e *KMeansExtractor) initialiseCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, p.distanceSq(c))
			}
			distances[i] = minDist
			totalDistance += minDist
		}

		if totalDistance == 0 {
			// Every point coincides with a centroid already.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		next := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if d > 0 && cumulative >= target {
				next = i
				break
			}
		}
		centroids = append(centroids, points[next])
	}
	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
// Ties resolve to the lowest index.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distanceSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points. Empty
// clusters are re-seeded from a random point.
func (e *KMeansExtractor) recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[rng.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}
