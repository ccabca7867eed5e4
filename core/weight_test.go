package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/drone-dispatch/model"
)

func TestWeight_PriorityDominates(t *testing.T) {
	base := model.Task{Duration: 3600, Bandwidth: 20}
	urgent := base
	urgent.Priority = 1
	relaxed := base
	relaxed.Priority = 2

	if Weight(&urgent) <= Weight(&relaxed) {
		t.Errorf("weight(priority 1) = %v must exceed weight(priority 2) = %v",
			Weight(&urgent), Weight(&relaxed))
	}
}

func TestWeight_ReferenceValue(t *testing.T) {
	task := &model.Task{
		Priority:  1,
		Duration:  2 * 3600, // 0.6 duration points
		Bandwidth: 20,       // 1.8 bandwidth points
		RequiredPayloads: map[model.PayloadKind]model.PayloadRequirement{
			model.PayloadSensor: {},
			model.PayloadStrike: {},
		}, // 1.2 payload points
		RequiredTypes: []model.DroneType{"RECON", "STRIKE", "RELAY"}, // 3.0 type points
	}
	want := 70.0 + 0.6 + 1.2 + 3.0 + 1.8
	if got := Weight(task); math.Abs(got-want) > 1e-9 {
		t.Errorf("Weight = %v, want %v", got, want)
	}
}

func TestWeight_DefaultsAndClamps(t *testing.T) {
	// Unset priority reads as 5.
	unset := &model.Task{}
	explicit := &model.Task{Priority: 5}
	if Weight(unset) != Weight(explicit) {
		t.Errorf("unset priority must weigh like priority 5")
	}

	// Out-of-range priorities clamp into [1,10].
	low := &model.Task{Priority: 42}
	ten := &model.Task{Priority: 10}
	if Weight(low) != Weight(ten) {
		t.Errorf("priority 42 must clamp to 10")
	}
	high := &model.Task{Priority: -3}
	one := &model.Task{Priority: 1}
	if Weight(high) != Weight(one) {
		t.Errorf("priority -3 must clamp to 1")
	}

	// Term caps: a week-long, payload-heavy, saturated-bandwidth task.
	capped := &model.Task{
		Priority:  1,
		Duration:  7 * 24 * 3600,
		Bandwidth: 1e6,
		RequiredPayloads: map[model.PayloadKind]model.PayloadRequirement{
			1: {}, 2: {}, 3: {}, 4: {}, 5: {}, 6: {},
		},
	}
	want := 70.0 + 3.0 + 3.0 + 9.0 + 9.0
	if got := Weight(capped); math.Abs(got-want) > 1e-9 {
		t.Errorf("capped Weight = %v, want %v", got, want)
	}
}

func TestSortByWeight_StableTies(t *testing.T) {
	a := &model.Task{ID: 1, Priority: 3}
	b := &model.Task{ID: 2, Priority: 3}
	c := &model.Task{ID: 3, Priority: 1}

	sorted := SortByWeight([]*model.Task{a, b, c})
	if sorted[0] != c {
		t.Fatalf("expected the priority-1 task first")
	}
	// Equal weights keep input order.
	if sorted[1] != a || sorted[2] != b {
		t.Errorf("tie broken out of input order: got [%d %d]", sorted[1].ID, sorted[2].ID)
	}
}

func TestFilterHighPriority(t *testing.T) {
	tasks := []*model.Task{
		{ID: 1, Priority: 1},
		{ID: 2, Priority: 3},
		{ID: 3, Priority: 4},
		{ID: 4}, // unset: reads as 5
	}
	got := FilterHighPriority(tasks, DefaultPriorityThreshold)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("FilterHighPriority = %v, want tasks 1 and 2", ids(got))
	}

	if got := FilterHighPriority(tasks, 5); len(got) != 4 {
		t.Errorf("threshold 5 should include the unset-priority task, got %v", ids(got))
	}
}

func TestPrioritySummary(t *testing.T) {
	tasks := []*model.Task{
		{Priority: 1}, {Priority: 1}, {Priority: 7}, {}, {Priority: 99},
	}
	got := PrioritySummary(tasks)
	want := map[int]int{1: 2, 7: 1, 5: 1, 10: 1}
	for p, n := range want {
		if got[p] != n {
			t.Errorf("summary[%d] = %d, want %d", p, got[p], n)
		}
	}
}

func ids(tasks []*model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
