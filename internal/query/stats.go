package query

import "math"

// Average returns the arithmetic mean, or 0 for an empty set.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// AverageOf projects each item to a number and averages the results.
func AverageOf[T any](items []T, value func(T) float64) float64 {
	values := make([]float64, 0, len(items))
	for _, item := range items {
		values = append(values, value(item))
	}
	return Average(values)
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places <= 0 {
		return math.Round(v)
	}
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Percent returns part/total as a whole percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// Bucket is one labelled slot of a distribution.
type Bucket struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Distribution is an ordered list of buckets.
type Distribution []Bucket

// Total sums the bucket counts.
func (d Distribution) Total() int {
	total := 0
	for _, b := range d {
		total += b.Count
	}
	return total
}

// Count returns the count for label, 0 if absent.
func (d Distribution) Count(label string) int {
	for _, b := range d {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// Distribute counts items per label in a single pass. Labels keep their given
// order and appear even when empty. Items classified outside labels are ignored.
func Distribute[T any](items []T, labels []string, classify func(T) string) Distribution {
	index := make(map[string]int, len(labels))
	dist := make(Distribution, len(labels))
	for i, label := range labels {
		index[label] = i
		dist[i] = Bucket{Label: label}
	}
	for _, item := range items {
		if i, ok := index[classify(item)]; ok {
			dist[i].Count++
		}
	}
	for i := range dist {
		dist[i].Percent = Percent(dist[i].Count, len(items))
	}
	return dist
}

// Group is one partition produced by GroupBy.
type Group[T any] struct {
	Key   string
	Items []T
}

// GroupBy partitions items by key, keeping groups in first-appearance order.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	groups := make([]Group[T], 0)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
