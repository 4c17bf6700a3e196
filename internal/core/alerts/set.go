// Package alerts holds the seconds-remaining thresholds that trigger a cue
// during the active phase.
package alerts

import (
	"sort"

	"nightcircle/internal/core/model"
)

// Set is a collection of distinct thresholds, in seconds. Values are not
// checked: 0 fires on a phase's last tick and negatives never fire.
// It is not safe for concurrent use; the owning session serialises access.
type Set struct {
	values map[int]struct{}
}

// New creates a set containing the given thresholds.
func New(thresholds ...int) *Set {
	set := &Set{values: make(map[int]struct{}, len(thresholds))}
	for _, threshold := range thresholds {
		set.Add(threshold)
	}
	return set
}

// Default returns the set a new session starts with.
func Default() *Set {
	return New(model.DefaultWarningSeconds)
}

// Add inserts a threshold and reports whether the set changed.
func (set *Set) Add(threshold int) bool {
	if _, ok := set.values[threshold]; ok {
		return false
	}
	set.values[threshold] = struct{}{}
	return true
}

// Remove deletes a threshold and reports whether the set changed.
func (set *Set) Remove(threshold int) bool {
	if _, ok := set.values[threshold]; !ok {
		return false
	}
	delete(set.values, threshold)
	return true
}

// Contains reports whether the threshold is present.
func (set *Set) Contains(threshold int) bool {
	_, ok := set.values[threshold]
	return ok
}

// Len returns the number of thresholds.
func (set *Set) Len() int {
	return len(set.values)
}

// Values returns the thresholds in descending order.
func (set *Set) Values() []int {
	values := make([]int, 0, len(set.values))
	for threshold := range set.values {
		values = append(values, threshold)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}

// Clone returns an independent copy.
func (set *Set) Clone() *Set {
	return New(set.Values()...)
}
