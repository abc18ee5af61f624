package colour

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
)

// DominantExtractor delegates clustering to github.com/cenkalti/dominantcolor.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract returns k clusters. The library may return fewer colours than
// requested; the list is then padded with zero-weight duplicates.
func (e *DominantExtractor) Extract(samples []RGB, k int) ([]Cluster, error) {
	if err := checkInput(samples, k); err != nil {
		return nil, err
	}
	if clusters := distinctClusters(samples, k); clusters != nil {
		return clusters, nil
	}

	found := dominantcolor.FindWeight(samplesImage(samples), k)
	if len(found) == 0 {
		return NewKMeansExtractor(DefaultSeed).Extract(samples, k)
	}
	if len(found) > k {
		found = found[:k]
	}

	total := 0.0
	for _, c := range found {
		total += math.Max(0, c.Weight)
	}

	clusters := make([]Cluster, 0, k)
	for _, c := range found {
		w := math.Max(0, c.Weight)
		if total > 0 {
			w /= total
		} else {
			w = 1.0 / float64(len(found))
		}
		clusters = append(clusters, Cluster{
			Centre: RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
			Weight: w,
		})
	}
	sortClusters(clusters)
	for len(clusters) < k {
		clusters = append(clusters, Cluster{Centre: clusters[0].Centre})
	}
	return clusters, nil
}

// samplesImage lays the samples back out as an image, square when possible.
func samplesImage(samples []RGB) image.Image {
	w, h := len(samples), 1
	if side := int(math.Sqrt(float64(len(samples)))); side*side == len(samples) {
		w, h = side, side
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, s := range samples {
		img.SetRGBA(i%w, i/w, color.RGBA{R: s.R, G: s.G, B: s.B, A: 255})
	}
	return img
}
