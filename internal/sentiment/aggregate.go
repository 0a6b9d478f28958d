package sentiment

import (
	"math"
	"sort"

	"github.com/agawojdecka/polarify/internal/domain"
)

// Classification thresholds. Scores inside the closed interval
// [negativeThreshold, positiveThreshold] count as neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Average returns the arithmetic mean of the given scores rounded to two
// decimal places. Returns domain.ErrNoOpinions for an empty input.
func Average(scores []domain.OpinionSentiment) (float64, error) {
	if len(scores) == 0 {
		return 0, domain.ErrNoOpinions
	}

	var sum float64
	for _, s := range scores {
		sum += s.Sentiment
	}
	return round2(sum / float64(len(scores))), nil
}

// Bucketize classifies each score as positive, neutral or negative by the
// fixed thresholds. The counts always sum to len(scores).
func Bucketize(scores []domain.OpinionSentiment) domain.BucketCounts {
	var counts domain.BucketCounts
	for _, s := range scores {
		switch {
		case s.Sentiment > positiveThreshold:
			counts.Positive++
		case s.Sentiment < negativeThreshold:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}
	return counts
}

// Statistics returns min, max, mean, median and population standard
// deviation over the given scores. Mean and std are rounded to two decimal
// places; min, max and median are reported as-is. Returns
// domain.ErrNoOpinions for an empty input.
func Statistics(scores []domain.OpinionSentiment) (domain.SentimentStatistics, error) {
	if len(scores) == 0 {
		return domain.SentimentStatistics{}, domain.ErrNoOpinions
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Sentiment
	}
	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	// Population standard deviation: divisor N, not N-1.
	std := math.Sqrt(sumSquares / float64(len(values)))

	return domain.SentimentStatistics{
		Min:    values[0],
		Max:    values[len(values)-1],
		Mean:   round2(mean),
		Median: median(values),
		Std:    round2(std),
	}, nil
}

// median expects values to be sorted.
func median(values []float64) float64 {
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
