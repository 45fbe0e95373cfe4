package schedule_test

import (
	"testing"

	"github.com/luminahr/portal/pkg/schedule"
)

// ── DefaultQuestions ───────────────────────────────────────────────────────

func TestDefaultQuestions_ReturnsCopy(t *testing.T) {
	questions := schedule.DefaultQuestions()
	if len(questions) == 0 {
		t.Fatal("question bank should not be empty")
	}

	questions[0] = "mutated"
	if schedule.QuestionBank[0] == "mutated" {
		t.Error("DefaultQuestions must not expose the bank itself")
	}
}

// ── Shuffle ────────────────────────────────────────────────────────────────

func TestShuffle_IsAPermutation(t *testing.T) {
	original := schedule.DefaultQuestions()
	shuffled := schedule.Shuffle(original)

	if len(shuffled) != len(original) {
		t.Fatalf("shuffle changed length: %d != %d", len(shuffled), len(original))
	}

	counts := make(map[string]int)
	for _, q := range original {
		counts[q]++
	}
	for _, q := range shuffled {
		counts[q]--
	}
	for q, n := range counts {
		if n != 0 {
			t.Errorf("shuffle lost or duplicated %q", q)
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	original := schedule.DefaultQuestions()
	snapshot := make([]string, len(original))
	copy(snapshot, original)

	schedule.Shuffle(original)
	for i := range original {
		if original[i] != snapshot[i] {
			t.Fatal("shuffle must not mutate its input")
		}
	}
}

// ── RemoveQuestion ─────────────────────────────────────────────────────────

func TestRemoveQuestion(t *testing.T) {
	questions := []string{"a", "b", "c"}
	got := schedule.RemoveQuestion(questions, 1)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("RemoveQuestion = %v, want [a c]", got)
	}
}

func TestRemoveQuestion_OutOfRange(t *testing.T) {
	questions := []string{"a", "b"}
	for _, idx := range []int{-1, 2, 10} {
		got := schedule.RemoveQuestion(questions, idx)
		if len(got) != 2 {
			t.Errorf("RemoveQuestion(%d) should be a no-op", idx)
		}
	}
}
