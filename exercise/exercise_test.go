package exercise

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMuscles_DeduplicatesUnion(t *testing.T) {
	record := Exercise{
		PrimaryMuscles:   []string{"chest", "shoulders"},
		SecondaryMuscles: []string{"triceps", "shoulders"},
	}
	want := []string{"chest", "shoulders", "triceps"}
	if diff := cmp.Diff(want, record.Muscles()); diff != "" {
		t.Fatalf("muscles mismatch (-want +got):\n%s", diff)
	}
}

func TestDifficultyOrder(t *testing.T) {
	cases := []struct {
		difficulty string
		want       int
	}{
		{"beginner", 1},
		{"Intermediate", 2},
		{" advanced ", 3},
		{"expert", UnknownDifficultyOrder},
		{"", UnknownDifficultyOrder},
	}
	for _, tc := range cases {
		if got := DifficultyOrder(tc.difficulty); got != tc.want {
			t.Fatalf("DifficultyOrder(%q) = %d, want %d", tc.difficulty, got, tc.want)
		}
	}
}

func TestCategoryDisplayName(t *testing.T) {
	if got := CategoryDisplayName("upper-body"); got != "Upper Body" {
		t.Fatalf("unexpected display name: %s", got)
	}
	// Unknown categories pass through untouched.
	if got := CategoryDisplayName("mobility"); got != "mobility" {
		t.Fatalf("unexpected passthrough: %s", got)
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	if got := DifficultyMultiplier("advanced"); got != 1.5 {
		t.Fatalf("unexpected multiplier: %v", got)
	}
	if got := DifficultyMultiplier("unknown"); got != 1.0 {
		t.Fatalf("unexpected default multiplier: %v", got)
	}
}

func TestIsValidID(t *testing.T) {
	valid := []string{"push-up", "squat", "barbell-back-squat"}
	for _, id := range valid {
		if !IsValidID(id) {
			t.Fatalf("expected %q to be a valid id", id)
		}
	}
	invalid := []string{"", "Push Up", "push_up"}
	for _, id := range invalid {
		if IsValidID(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}
