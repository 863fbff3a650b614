package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()

	if b.Len() != 9 {
		t.Fatalf("Len() = %d, expected 9", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if b.At(i).ID != i+1 {
			t.Errorf("At(%d).ID = %d, expected %d", i, b.At(i).ID, i+1)
		}
	}

	rewards := map[int]bool{1: true, 3: true, 5: true, 8: true, 9: true}
	for id := 1; id <= 9; id++ {
		if b.HasReward(id) != rewards[id] {
			t.Errorf("HasReward(%d) = %v, expected %v", id, b.HasReward(id), rewards[id])
		}
	}
	if b.HasReward(42) {
		t.Error("unknown ids never carry a reward")
	}
	if err := b.CheckRewardTarget(5); err != nil {
		t.Errorf("CheckRewardTarget(5) = %v", err)
	}
	if err := b.CheckRewardTarget(6); !errors.Is(err, ErrInvalidBank) {
		t.Errorf("CheckRewardTarget(6) = %v, expected ErrInvalidBank", err)
	}
}

func TestBankValidate(t *testing.T) {
	revival := Challenge{Prompt: "p", Options: []ChallengeOption{{Text: "ok", Accepted: true}}}
	good := func(id int) Question {
		return Question{ID: id, Prompt: "q", Options: []Option{{Text: "a", Correct: true}, {Text: "b"}}}
	}

	tests := []struct {
		name      string
		questions []Question
		revival   Challenge
		wantErr   bool
	}{
		{"valid", []Question{good(1), good(2)}, revival, false},
		{"empty", nil, revival, true},
		{"duplicate id", []Question{good(1), good(1)}, revival, true},
		{"zero id", []Question{good(0)}, revival, true},
		{"no correct option", []Question{{ID: 1, Options: []Option{{Text: "a"}, {Text: "b"}}}}, revival, true},
		{"two correct options", []Question{{ID: 1, Options: []Option{{Text: "a", Correct: true}, {Text: "b", Correct: true}}}}, revival, true},
		{"three options", []Question{{ID: 1, Options: []Option{{Text: "a", Correct: true}, {Text: "b"}, {Text: "c"}}}}, revival, true},
		{"revival without accepted", []Question{good(1)}, Challenge{Prompt: "p", Options: []ChallengeOption{{Text: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.questions, tt.revival)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBank() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBank) {
				t.Errorf("error %v should wrap ErrInvalidBank", err)
			}
		})
	}
}

func TestNextUnanswered(t *testing.T) {
	b := DefaultBank()

	tests := []struct {
		name     string
		from     int
		answered IDSet
		want     int
		wantOK   bool
	}{
		{"fresh", 0, NewIDSet(), 0, true},
		{"skips answered", 0, NewIDSet(1, 2), 2, true},
		{"starts at progress index", 4, NewIDSet(1), 4, true},
		{"negative index", -3, NewIDSet(), 0, true},
		{"tail answered", 7, NewIDSet(8, 9), 0, false},
		{"all answered", 0, NewIDSet(1, 2, 3, 4, 5, 6, 7, 8, 9), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.NextUnanswered(tt.from, tt.answered)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("NextUnanswered(%d) = (%d, %v), expected (%d, %v)", tt.from, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLoadBankCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	data := []byte(`questions:
  - id: 7
    prompt: "Two plus two?"
    options:
      - text: "4"
        correct: true
      - text: "5"
    reward: "shiny"
revival:
  prompt: "Again?"
  options:
    - text: "yes"
      accepted: true
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}
	q, ok := b.ByID(7)
	if !ok || q.CorrectIndex() != 0 || !q.HasReward() {
		t.Errorf("ByID(7) = %+v, %v", q, ok)
	}
}

func TestLoadBankRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	data := []byte("questions:\n  - id: 1\n    options:\n      - text: a\n      - text: b\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadBank(path); !errors.Is(err, ErrInvalidBank) {
		t.Errorf("LoadBank() = %v, expected ErrInvalidBank", err)
	}
}
