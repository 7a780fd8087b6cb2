package topics

import (
	"math"
	"math/rand"
)

// kmeansSeed fixes centroid initialization so repeated runs over the
// same corpus produce the same clustering.
const kmeansSeed = 42

// maxKMeansIterations bounds the assign/update loop.
const maxKMeansIterations = 50

// kmeansResult holds cluster assignments plus each document's cosine
// similarity to its assigned centroid.
type kmeansResult struct {
	assignments []int
	similarity  []float64
}

// runKMeans clusters unit vectors by cosine similarity. Inputs are
// re-normalized up front so the dot product is the similarity.
func runKMeans(vectors [][]float32, k int) kmeansResult {
	n := len(vectors)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	unit := make([][]float32, n)
	for i, vec := range vectors {
		unit[i] = append([]float32(nil), vec...)
		normalize(unit[i])
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	centroids := initialCentroids(unit, k, rng)
	assignments := make([]int, n)

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, vec := range unit {
			best, bestSim := 0, math.Inf(-1)
			for c, centroid := range centroids {
				if sim := dot(vec, centroid); sim > bestSim {
					best, bestSim = c, sim
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float32, len(centroids))
		counts := make([]int, len(centroids))
		for c := range sums {
			sums[c] = make([]float32, len(unit[0]))
		}
		for i, vec := range unit {
			c := assignments[i]
			counts[c]++
			for d, v := range vec {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Re-seed an empty cluster at a random document.
				centroids[c] = append([]float32(nil), unit[rng.Intn(n)]...)
				continue
			}
			normalize(sums[c])
			centroids[c] = sums[c]
		}
	}

	similarity := make([]float64, n)
	for i, vec := range unit {
		similarity[i] = dot(vec, centroids[assignments[i]])
	}

	return kmeansResult{assignments: assignments, similarity: similarity}
}

// initialCentroids samples k starting centroids, preferring vectors
// that differ from those already chosen so duplicate documents do not
// collapse the initialization.
func initialCentroids(vectors [][]float32, k int, rng *rand.Rand) [][]float32 {
	perm := rng.Perm(len(vectors))
	centroids := make([][]float32, 0, k)
	for _, idx := range perm {
		if len(centroids) == k {
			break
		}
		candidate := vectors[idx]
		distinct := true
		for _, chosen := range centroids {
			if vectorsEqual(candidate, chosen) {
				distinct = false
				break
			}
		}
		if distinct {
			centroids = append(centroids, append([]float32(nil), candidate...))
		}
	}
	for _, idx := range perm {
		if len(centroids) == k {
			break
		}
		centroids = append(centroids, append([]float32(nil), vectors[idx]...))
	}
	return centroids
}

func vectorsEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
