package analyze

import (
	"math"
	"math/rand"
	"sort"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// Isolation-forest tuning. Anomalous points separate from the bulk in few
// random splits, so their average path length across the forest is short.
const (
	isoTrees      = 100
	isoSampleSize = 256
)

// eulerGamma is the Euler-Mascheroni constant, used in the average
// unsuccessful-BST-search length that normalizes path depths.
const eulerGamma = 0.5772156649015329

// AnomalyResult carries per-record outlier output, aligned with the input
// ledger by index.
type AnomalyResult struct {
	Scores  []float64 // isolation score in (0,1], higher = more isolated
	Flagged []bool
}

// FitAnomalies trains an isolation forest from scratch over the feature pair
// (net amount, running balance), each standardized to zero mean and unit
// variance, and flags the floor(n*contamination) highest-scoring records.
// The fixed seed makes successive fits over the same ledger identical.
//
// Degenerate ledgers (fewer than 3 rows, fewer than 2 distinct feature
// vectors, or zero variance in both features) skip the fit and flag nothing.
func FitAnomalies(txns []model.Transaction, contamination float64, seed int64) AnomalyResult {
	n := len(txns)
	res := AnomalyResult{
		Scores:  make([]float64, n),
		Flagged: make([]bool, n),
	}

	points := standardize(featureMatrix(txns))
	if !fittable(points) {
		return res
	}

	sample := isoSampleSize
	if n < sample {
		sample = n
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sample))))

	rng := rand.New(rand.NewSource(seed))
	trees := make([]*isoNode, isoTrees)
	for i := range trees {
		idx := rng.Perm(n)[:sample]
		trees[i] = buildIsoTree(points, idx, 0, maxDepth, rng)
	}

	norm := avgPathLength(sample)
	for i, p := range points {
		var total float64
		for _, t := range trees {
			total += pathLength(t, p, 0)
		}
		res.Scores[i] = math.Pow(2, -(total/float64(isoTrees))/norm)
	}

	// Contamination comes from user-editable config; clamp the flag count
	// into [0, n] rather than trusting it.
	k := int(float64(n) * contamination)
	if k > n {
		k = n
	}
	if k <= 0 {
		return res
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Ties resolve to the earlier ledger row.
	sort.SliceStable(order, func(a, b int) bool {
		return res.Scores[order[a]] > res.Scores[order[b]]
	})
	for _, i := range order[:k] {
		res.Flagged[i] = true
	}
	return res
}

func featureMatrix(txns []model.Transaction) [][2]float64 {
	points := make([][2]float64, len(txns))
	for i, t := range txns {
		points[i] = [2]float64{t.Net.InexactFloat64(), t.Balance.InexactFloat64()}
	}
	return points
}

// standardize shifts each feature to zero mean and scales to unit variance.
// A zero-variance feature standardizes to all zeros rather than dividing
// by zero.
func standardize(points [][2]float64) [][2]float64 {
	n := float64(len(points))
	if n == 0 {
		return points
	}

	var mean, std [2]float64
	for _, p := range points {
		mean[0] += p[0]
		mean[1] += p[1]
	}
	mean[0] /= n
	mean[1] /= n

	for _, p := range points {
		std[0] += (p[0] - mean[0]) * (p[0] - mean[0])
		std[1] += (p[1] - mean[1]) * (p[1] - mean[1])
	}
	for f := 0; f < 2; f++ {
		std[f] = math.Sqrt(std[f] / n)
		if std[f] == 0 {
			std[f] = 1
		}
	}

	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{(p[0] - mean[0]) / std[0], (p[1] - mean[1]) / std[1]}
	}
	return out
}

func fittable(points [][2]float64) bool {
	if len(points) < 3 {
		return false
	}
	distinct := make(map[[2]float64]struct{}, len(points))
	for _, p := range points {
		distinct[p] = struct{}{}
		if len(distinct) >= 2 {
			return true
		}
	}
	return false
}

// isoNode is one node of an isolation tree. Leaves have nil children and
// record the sample size that reached them.
type isoNode struct {
	feature     int
	split       float64
	left, right *isoNode
	size        int
}

func buildIsoTree(points [][2]float64, idx []int, depth, maxDepth int, rng *rand.Rand) *isoNode {
	if len(idx) <= 1 || depth >= maxDepth {
		return &isoNode{size: len(idx)}
	}

	feature := rng.Intn(2)
	lo, hi := featureRange(points, idx, feature)
	if lo == hi {
		feature = 1 - feature
		lo, hi = featureRange(points, idx, feature)
		if lo == hi {
			return &isoNode{size: len(idx)}
		}
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right []int
	for _, i := range idx {
		if points[i][feature] < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(idx)}
	}

	return &isoNode{
		feature: feature,
		split:   split,
		left:    buildIsoTree(points, left, depth+1, maxDepth, rng),
		right:   buildIsoTree(points, right, depth+1, maxDepth, rng),
	}
}

func featureRange(points [][2]float64, idx []int, feature int) (lo, hi float64) {
	lo, hi = points[idx[0]][feature], points[idx[0]][feature]
	for _, i := range idx[1:] {
		v := points[i][feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func pathLength(node *isoNode, p [2]float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if p[node.feature] < node.split {
		return pathLength(node.left, p, depth+1)
	}
	return pathLength(node.right, p, depth+1)
}

// avgPathLength is the expected path length of an unsuccessful search in a
// binary search tree of n nodes, the standard isolation-forest normalizer.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	f := float64(n)
	return 2*(math.Log(f-1)+eulerGamma) - 2*(f-1)/f
}
