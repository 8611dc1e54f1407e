package query

import "strings"

// All is the sentinel selection that disables a filter dimension.
const All = "All"

// Predicate decides whether a record is kept.
type Predicate[T any] func(T) bool

// IsAll reports whether the selected value disables its filter dimension.
func IsAll(selected string) bool {
	selected = strings.TrimSpace(selected)
	return selected == "" || strings.EqualFold(selected, All)
}

// MatchesSelection is the single-select predicate used by every list view.
func MatchesSelection(selected, value string) bool {
	if IsAll(selected) {
		return true
	}
	return strings.TrimSpace(selected) == value
}

// And combines predicates with logical AND. Nil predicates are ignored and
// an empty set of predicates keeps every record.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, pred := range preds {
		if pred != nil {
			active = append(active, pred)
		}
	}
	return func(item T) bool {
		for _, pred := range active {
			if !pred(item) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records accepted by pred, preserving their order.
// The input slice is never modified.
func Filter[T any](items []T, pred Predicate[T]) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			result = append(result, item)
		}
	}
	return result
}

// Count returns how many records satisfy pred.
func Count[T any](items []T, pred Predicate[T]) int {
	total := 0
	for _, item := range items {
		if pred(item) {
			total++
		}
	}
	return total
}
