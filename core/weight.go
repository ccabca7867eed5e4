package core

import (
	"sort"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// Priority weighting: a deterministic scalar per task used to order tasks
// for assignment preference. Priority dominates (70 of the nominal 100
// points); duration, payload breadth, type flexibility, and bandwidth
// contribute the rest.

// DefaultPriorityThreshold is the cut used by callers that want "high
// priority" without choosing a threshold: priorities 1..3.
const DefaultPriorityThreshold = 3

// Weight computes the task's scalar weight. Larger means more preferred.
// Priority 1 maps to 70 points, priority 10 to 7; unset priority reads as 5.
func Weight(t *model.Task) float64 {
	priorityTerm := float64(11-t.EffectivePriority()) * 7.0

	durationHours := t.Duration / 3600
	durationTerm := durationHours * 0.3
	if durationTerm > 3.0 {
		durationTerm = 3.0
	}

	payloadCount := len(t.RequiredPayloads)
	if payloadCount == 0 {
		payloadCount = 1
	}
	payloadTerm := float64(payloadCount) * 0.6
	if payloadTerm > 3.0 {
		payloadTerm = 3.0
	}

	typeCount := len(t.RequiredTypes)
	if typeCount == 0 {
		typeCount = 1
	}
	// Fewer acceptable types means a more specific, more valuable match.
	typeTerm := 9.0 / float64(typeCount)

	bandwidthTerm := t.Bandwidth / 10.0 * 0.9
	if bandwidthTerm > 9.0 {
		bandwidthTerm = 9.0
	}

	return priorityTerm + durationTerm + payloadTerm + typeTerm + bandwidthTerm
}

// SortByWeight returns the tasks ordered by descending weight. The sort is
// stable: equal weights keep their input order.
func SortByWeight(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	copy(out, tasks)
	weights := make(map[*model.Task]float64, len(out))
	for _, t := range out {
		weights[t] = Weight(t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return weights[out[i]] > weights[out[j]]
	})
	return out
}

// FilterHighPriority returns the tasks whose priority is at or above the
// threshold urgency, i.e. priority number <= threshold. Unset priorities
// read as the default.
func FilterHighPriority(tasks []*model.Task, threshold int) []*model.Task {
	var out []*model.Task
	for _, t := range tasks {
		if t.EffectivePriority() <= threshold {
			out = append(out, t)
		}
	}
	return out
}

// PrioritySummary returns the distribution of (clamped) priorities across
// the tasks.
func PrioritySummary(tasks []*model.Task) map[int]int {
	dist := make(map[int]int)
	for _, t := range tasks {
		dist[t.EffectivePriority()]++
	}
	return dist
}
