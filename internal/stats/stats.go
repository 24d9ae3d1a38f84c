package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"bench-go/internal/bench/model"
)

// Size-bias multipliers. Small codebases get a bonus because several metrics
// (MI in particular) read artificially low on them; large codebases are
// expected to carry some complexity.
var sizeAdjustments = map[string]map[model.SizeBucket]float64{
	"maintainability": {
		model.BucketSmall:  1.5,
		model.BucketMedium: 1.0,
		model.BucketLarge:  0.9,
	},
	"readability": {
		model.BucketSmall:  1.2,
		model.BucketMedium: 1.0,
		model.BucketLarge:  0.95,
	},
	"default": {
		model.BucketSmall:  1.1,
		model.BucketMedium: 1.0,
		model.BucketLarge:  1.0,
	},
}

// AdjustForSize scales a raw score by the bias multiplier for the given
// metric type and size bucket, clamped to the 0-10 scale.
func AdjustForSize(rawScore float64, bucket model.SizeBucket, metricType string) float64 {
	table, ok := sizeAdjustments[metricType]
	if !ok {
		table = sizeAdjustments["default"]
	}
	multiplier, ok := table[bucket]
	if !ok {
		multiplier = 1.0
	}
	adjusted := rawScore * multiplier
	if adjusted > 10.0 {
		return 10.0
	}
	return adjusted
}

// Compress applies light outlier compression to a set of scores. Relative
// ordering is preserved; only the portion of a score above 10 is scaled down,
// and only when the set contains an extreme outlier (max > 15).
func Compress(scores map[string]float64) map[string]float64 {
	if len(scores) < 2 {
		return scores
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 15.0 {
		return scores
	}

	compressed := make(map[string]float64, len(scores))
	for name, s := range scores {
		if s > 10.0 {
			compressed[name] = 10.0 + (s-10.0)*0.3
		} else {
			compressed[name] = s
		}
	}
	return compressed
}

// ConfidenceInterval computes a Student-t confidence interval over a sample
// of scores. Returns (0, 0) when fewer than two samples are available.
func ConfidenceInterval(scores []float64, confidence float64) (float64, float64) {
	if len(scores) < 2 {
		return 0, 0
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}

	mean, stddev := stat.MeanStdDev(scores, nil)
	sem := stat.StdErr(stddev, float64(len(scores)))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(scores) - 1)}
	t := dist.Quantile(1 - (1-confidence)/2)

	return mean - t*sem, mean + t*sem
}

// Mean returns the arithmetic mean of the samples, or 0 for an empty slice.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return stat.Mean(samples, nil)
}
