package santa

import (
	"fmt"
	randv2 "math/rand/v2"
	"slices"
	"strings"
	"testing"
)

// seeded returns a deterministic random source for reproducible draws.
func seeded(n uint64) *randv2.Rand {
	return randv2.New(randv2.NewPCG(n, n))
}

// checkSequence verifies the structural invariants of a non-empty result:
// length n+1, closed cycle, every name used exactly once, and no adjacent
// pair violating the forbidden map or gifting to itself.
func checkSequence(t *testing.T, seq []string, participants []string, forbidden map[string][]string) {
	t.Helper()

	if len(seq) != len(participants)+1 {
		t.Fatalf("sequence length = %d, want %d", len(seq), len(participants)+1)
	}
	if seq[0] != seq[len(seq)-1] {
		t.Errorf("sequence not closed: first %q, last %q", seq[0], seq[len(seq)-1])
	}

	seen := map[string]int{}
	for _, name := range seq[:len(seq)-1] {
		seen[name]++
	}
	for _, p := range participants {
		if seen[p] != 1 {
			t.Errorf("participant %q appears %d times, want 1", p, seen[p])
		}
	}

	for i := 0; i < len(seq)-1; i++ {
		gifter, giftee := seq[i], seq[i+1]
		if gifter == giftee {
			t.Errorf("self-gifting at index %d: %q", i, gifter)
		}
		if slices.Contains(forbidden[gifter], giftee) {
			t.Errorf("forbidden pairing %q -> %q", gifter, giftee)
		}
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		candidates map[string][]string
		wantFound  bool
	}{
		{
			name:       "ThreeUnconstrained",
			candidates: map[string][]string{"Alice": nil, "Bob": nil, "Charlie": nil},
			wantFound:  true,
		},
		{
			name: "SingleConstraint",
			candidates: map[string][]string{
				"Alice":   {"Bob"},
				"Bob":     nil,
				"Charlie": nil,
			},
			wantFound: true,
		},
		{
			name: "DenseButSolvable",
			candidates: map[string][]string{
				"Alice":   {"Bob"},
				"Bob":     {"Charlie"},
				"Charlie": {"Alice"},
			},
			// Only valid cycle: Alice -> Charlie -> Bob -> Alice.
			wantFound: true,
		},
		{
			name:       "TwoParticipantsForbiddenPair",
			candidates: map[string][]string{"Alice": {"Bob"}, "Bob": nil},
			wantFound:  false,
		},
		{
			name: "FeasibleButImpossible",
			candidates: map[string][]string{
				"Alice":   {"Charlie", "Dave"},
				"Bob":     {"Charlie", "Dave"},
				"Charlie": nil,
				"Dave":    nil,
			},
			// Alice and Bob can only give to each other, stranding the rest.
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithOptions(tt.candidates, Options{Rand: seeded(7)})
			seq := s.Generate()

			if !tt.wantFound {
				if len(seq) != 0 {
					t.Fatalf("Generate() = %v, want empty", seq)
				}
				return
			}
			if len(seq) == 0 {
				t.Fatal("Generate() found no sequence")
			}
			checkSequence(t, seq, s.Recipients(), s.Forbidden())
		})
	}
}

func TestGenerateRepeatedCallsStayValid(t *testing.T) {
	candidates := map[string][]string{
		"Alice": {"Bob"}, "Bob": nil, "Charlie": nil, "Dave": {"Alice"},
	}
	s := NewWithOptions(candidates, Options{Rand: seeded(3)})

	for i := range 2 {
		seq := s.Generate()
		if len(seq) == 0 {
			t.Fatalf("call %d found no sequence", i+1)
		}
		checkSequence(t, seq, s.Recipients(), s.Forbidden())
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	candidates := map[string][]string{
		"Alice": nil, "Bob": nil, "Charlie": nil, "Dave": nil, "Eve": nil,
	}

	first := NewWithOptions(candidates, Options{Rand: seeded(99)}).Generate()
	second := NewWithOptions(candidates, Options{Rand: seeded(99)}).Generate()

	if !slices.Equal(first, second) {
		t.Errorf("same seed produced different sequences:\n%v\n%v", first, second)
	}
}

func TestGenerateReplacesPreviousSequence(t *testing.T) {
	s := NewWithOptions(map[string][]string{"Alice": nil, "Bob": nil}, Options{Rand: seeded(1)})

	if seq := s.Generate(); len(seq) == 0 {
		t.Fatal("first Generate() found no sequence")
	}

	// Make the draw impossible and regenerate: the stored sequence must
	// be replaced with the empty result, not kept.
	s.Delete("Bob", true)
	if seq := s.Generate(); len(seq) != 0 {
		t.Fatalf("Generate() after delete = %v, want empty", seq)
	}
	if seq := s.Sequence(); len(seq) != 0 {
		t.Fatalf("Sequence() = %v, want empty", seq)
	}
}

func TestGenerateInfeasibleSkipsRetries(t *testing.T) {
	var logs []string
	s := NewWithOptions(map[string][]string{
		"Alice":   {"Bob", "Charlie"},
		"Bob":     nil,
		"Charlie": nil,
	}, Options{
		Rand: seeded(5),
		Logf: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})

	if s.Feasible() {
		t.Error("Feasible() = true, want false (Alice has no permissible giftees)")
	}
	if seq := s.Generate(); len(seq) != 0 {
		t.Fatalf("Generate() = %v, want empty", seq)
	}
	for _, msg := range logs {
		if strings.Contains(msg, "restarting") {
			t.Errorf("infeasible draw consumed a retry: %q", msg)
		}
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	restarts := 0
	s := NewWithOptions(map[string][]string{
		"Alice":   {"Charlie", "Dave"},
		"Bob":     {"Charlie", "Dave"},
		"Charlie": nil,
		"Dave":    nil,
	}, Options{
		Rand:     seeded(11),
		MaxTries: 10,
		Logf: func(format string, args ...any) {
			if strings.Contains(format, "restarting") {
				restarts++
			}
		},
	})

	if seq := s.Generate(); len(seq) != 0 {
		t.Fatalf("Generate() = %v, want empty", seq)
	}
	if restarts != 10 {
		t.Errorf("restarts = %d, want 10", restarts)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string][]string
		register string
		want     bool
	}{
		{
			name:     "NewName",
			existing: map[string][]string{"Alice": nil},
			register: "Bob",
			want:     true,
		},
		{
			name:     "ExactDuplicate",
			existing: map[string][]string{"Alice": nil},
			register: "Alice",
			want:     false,
		},
		{
			name:     "CaseInsensitiveDuplicate",
			existing: map[string][]string{"Alice": nil},
			register: "ALICE",
			want:     false,
		},
		{
			name:     "FirstParticipant",
			existing: map[string][]string{},
			register: "Alice",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.existing)
			before := s.Recipients()

			got := s.Register(tt.register, nil)
			if got != tt.want {
				t.Fatalf("Register(%q) = %v, want %v", tt.register, got, tt.want)
			}

			after := s.Recipients()
			if tt.want && len(after) != len(before)+1 {
				t.Errorf("participant count = %d, want %d", len(after), len(before)+1)
			}
			if !tt.want && !slices.Equal(after, before) {
				t.Errorf("failed registration mutated participants: %v -> %v", before, after)
			}
		})
	}
}

func TestRegisterStoresForbidden(t *testing.T) {
	s := New(map[string][]string{"Alice": nil})

	if ok := s.Register("Bob", []string{"Alice"}); !ok {
		t.Fatal("Register(Bob) = false, want true")
	}

	banned := s.Forbidden()["Bob"]
	if !slices.Equal(banned, []string{"Alice"}) {
		t.Errorf("Forbidden()[Bob] = %v, want [Alice]", banned)
	}
}

func TestDelete(t *testing.T) {
	base := func() *Santa {
		return New(map[string][]string{
			"Alice":   {"Bob"},
			"Bob":     {"Alice", "Charlie"},
			"Charlie": {"Alice"},
		})
	}

	t.Run("NonCascade", func(t *testing.T) {
		s := base()
		s.Delete("Alice", false)

		if slices.Contains(s.Recipients(), "Alice") {
			t.Error("Alice still registered")
		}
		forbidden := s.Forbidden()
		if _, ok := forbidden["Alice"]; ok {
			t.Error("Alice's own forbidden entry not removed")
		}
		// Non-cascading delete leaves stale references in place.
		if !slices.Contains(forbidden["Bob"], "Alice") {
			t.Error("Alice removed from Bob's forbidden set without cascade")
		}
	})

	t.Run("Cascade", func(t *testing.T) {
		s := base()
		s.Delete("Alice", true)

		forbidden := s.Forbidden()
		for gifter, banned := range forbidden {
			if slices.Contains(banned, "Alice") {
				t.Errorf("Alice still in %s's forbidden set", gifter)
			}
		}
		// Charlie's set only contained Alice and must be pruned entirely.
		if _, ok := forbidden["Charlie"]; ok {
			t.Error("empty forbidden entry for Charlie not pruned")
		}
		if !slices.Contains(forbidden["Bob"], "Charlie") {
			t.Error("cascade removed more than the deleted name")
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		s := base()
		s.Delete("Mallory", false)
		if got := len(s.Recipients()); got != 3 {
			t.Errorf("participant count = %d, want 3", got)
		}
	})
}

func TestFeasible(t *testing.T) {
	tests := []struct {
		name       string
		candidates map[string][]string
		want       bool
	}{
		{"Empty", map[string][]string{}, false},
		{"Single", map[string][]string{"Alice": nil}, false},
		{"Pair", map[string][]string{"Alice": nil, "Bob": nil}, true},
		{
			"AllOthersForbidden",
			map[string][]string{"Alice": {"Bob", "Charlie"}, "Bob": nil, "Charlie": nil},
			false,
		},
		{
			"Constrained",
			map[string][]string{"Alice": {"Bob"}, "Bob": nil, "Charlie": nil},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.candidates).Feasible(); got != tt.want {
				t.Errorf("Feasible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecipientsOrderedByConstraintCount(t *testing.T) {
	s := New(map[string][]string{
		"Alice":   nil,       // 2 permissible
		"Bob":     {"Alice"}, // 1 permissible
		"Charlie": nil,       // 2 permissible
	})

	got := s.Recipients()
	want := []string{"Bob", "Alice", "Charlie"}
	if !slices.Equal(got, want) {
		t.Errorf("Recipients() = %v, want %v", got, want)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewWithOptions(map[string][]string{"Alice": {"Bob"}, "Bob": nil}, Options{Rand: seeded(2)})

	recipients := s.Recipients()
	recipients[0] = "Mallory"
	if slices.Contains(s.Recipients(), "Mallory") {
		t.Error("mutating Recipients() result changed internal state")
	}

	forbidden := s.Forbidden()
	forbidden["Alice"][0] = "Mallory"
	if slices.Contains(s.Forbidden()["Alice"], "Mallory") {
		t.Error("mutating Forbidden() result changed internal state")
	}
}
