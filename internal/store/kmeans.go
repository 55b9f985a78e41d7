package store

import (
	"math"
	"math/rand"
	"sort"
)

// maxClusterRounds bounds k-means iteration when assignments keep shifting.
const maxClusterRounds = 100

// Cluster partitions the stored embeddings into k groups with k-means over
// cosine distance (1 - cosine similarity).
//
// Centroids are initialized by sampling stored embeddings uniformly with
// replacement from rng. Each round assigns every document to its nearest
// centroid, then recomputes each centroid as the L2-normalized mean of its
// members; a cluster that lost all members keeps its previous centroid.
// Iteration stops early once no assignment changes.
//
// Every stored document ID lands in exactly one cluster index in [0,k).
// Returns an empty map when k <= 0 or the index is empty.
func (x *VectorIndex) Cluster(k int, rng *rand.Rand) map[int][]string {
	clusters := make(map[int][]string)
	if k <= 0 || len(x.vectors) == 0 {
		return clusters
	}

	// Stable ID ordering keeps seeded runs reproducible.
	ids := make([]string, 0, len(x.vectors))
	for id := range x.vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	centroids := make([][]float32, k)
	for i := range centroids {
		sample := x.vectors[ids[rng.Intn(len(ids))]]
		centroids[i] = append([]float32(nil), sample...)
	}

	assignments := make([]int, len(ids))
	for i := range assignments {
		assignments[i] = -1
	}

	for round := 0; round < maxClusterRounds; round++ {
		changed := false
		for i, id := range ids {
			nearest := nearestCentroid(x.vectors[id], centroids)
			if nearest != assignments[i] {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}

		for c := range centroids {
			if mean := memberMean(x.vectors, ids, assignments, c); mean != nil {
				centroids[c] = mean
			}
		}
	}

	for c := 0; c < k; c++ {
		clusters[c] = []string{}
	}
	for i, id := range ids {
		clusters[assignments[i]] = append(clusters[assignments[i]], id)
	}
	return clusters
}

// nearestCentroid returns the index of the centroid with the smallest cosine
// distance to v, preferring the lower index on ties.
func nearestCentroid(v []float32, centroids [][]float32) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		dist := 1 - CosineSimilarity(v, c)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// memberMean computes the L2-normalized mean of the vectors assigned to
// cluster c, or nil when the cluster is empty.
func memberMean(vectors map[string][]float32, ids []string, assignments []int, c int) []float32 {
	var sum []float64
	count := 0
	for i, id := range ids {
		if assignments[i] != c {
			continue
		}
		vec := vectors[id]
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		for d, val := range vec {
			sum[d] += float64(val)
		}
		count++
	}
	if count == 0 {
		return nil
	}

	var norm float64
	for d := range sum {
		sum[d] /= float64(count)
		norm += sum[d] * sum[d]
	}
	norm = math.Sqrt(norm)

	mean := make([]float32, len(sum))
	for d := range sum {
		if norm > 0 {
			mean[d] = float32(sum[d] / norm)
		}
	}
	return mean
}
