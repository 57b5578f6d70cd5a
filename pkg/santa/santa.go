package santa

import (
	"cmp"
	"crypto/rand"
	"encoding/binary"
	"maps"
	randv2 "math/rand/v2"
	"slices"
	"strings"
)

// DefaultMaxTries is the number of randomized attempts [Santa.Generate]
// makes before giving up, unless overridden via [Options.MaxTries].
const DefaultMaxTries = 25

// Options configures a drawing engine created with [NewWithOptions].
// The zero value is valid and selects a securely seeded random source,
// [DefaultMaxTries] attempts, and no logging.
type Options struct {
	// Rand is the random source used to pick candidates during chain
	// construction. Inject a seeded source for reproducible draws.
	// When nil, a securely seeded PCG source is created.
	Rand *randv2.Rand

	// MaxTries bounds the number of full restart attempts per Generate
	// call. Values < 1 fall back to DefaultMaxTries.
	MaxTries int

	// Logf receives printf-style progress messages (restarts, feasibility
	// verdicts). When nil, the engine is silent.
	Logf func(format string, args ...any)
}

// Santa is the cycle drawing engine. It owns the participant set and the
// forbidden-giftee map exclusively; all accessors return copies so callers
// cannot bypass the invariant recomputation done by [Santa.Register] and
// [Santa.Delete].
//
// The zero value is not usable - use [New] or [NewWithOptions].
type Santa struct {
	// recipients is the working order of all participants, kept sorted
	// ascending by number of currently-permissible giftees. The first
	// entry is the fixed starting point of every draw attempt.
	recipients []string
	forbidden  map[string]map[string]struct{}
	sequence   []string

	rng      *randv2.Rand
	maxTries int
	logf     func(format string, args ...any)
}

// New creates a drawing engine from a map of participant names to their
// forbidden giftees. A nil or empty value means the participant is
// unconstrained. Equivalent to NewWithOptions(candidates, Options{}).
func New(candidates map[string][]string) *Santa {
	return NewWithOptions(candidates, Options{})
}

// NewWithOptions creates a drawing engine with explicit options.
// See [Options] for the defaults applied to zero fields.
func NewWithOptions(candidates map[string][]string, opts Options) *Santa {
	s := &Santa{
		recipients: slices.Collect(maps.Keys(candidates)),
		forbidden:  make(map[string]map[string]struct{}),
		rng:        opts.Rand,
		maxTries:   opts.MaxTries,
		logf:       opts.Logf,
	}
	for name, banned := range candidates {
		if len(banned) > 0 {
			s.forbidden[name] = toSet(banned)
		}
	}
	if s.rng == nil {
		s.rng = randv2.New(randv2.NewPCG(seed(), seed()))
	}
	if s.maxTries < 1 {
		s.maxTries = DefaultMaxTries
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}
	s.sortByCandidateCount()
	return s
}

// Recipients returns the currently registered participants in working
// order (most-constrained first). The returned slice is a copy.
func (s *Santa) Recipients() []string { return slices.Clone(s.recipients) }

// Forbidden returns the forbidden-giftee map as name-sorted slices.
// Participants without restrictions are absent. The result is a copy.
func (s *Santa) Forbidden() map[string][]string {
	out := make(map[string][]string, len(s.forbidden))
	for name, banned := range s.forbidden {
		out[name] = slices.Sorted(maps.Keys(banned))
	}
	return out
}

// Sequence returns a copy of the sequence produced by the most recent
// [Santa.Generate] call, or nil if none was found.
func (s *Santa) Sequence() []string { return slices.Clone(s.sequence) }

// Register adds a participant, optionally with the names they must not
// give a gift to. It reports false without mutating anything when a
// participant with the same name (compared case-insensitively) already
// exists. The working order is recomputed on success.
func (s *Santa) Register(name string, forbidden []string) bool {
	for _, existing := range s.recipients {
		if strings.EqualFold(existing, name) {
			s.logf("someone by the name of %q is already registered", name)
			return false
		}
	}
	s.recipients = append(s.recipients, name)
	if len(forbidden) > 0 {
		s.forbidden[name] = toSet(forbidden)
	}
	s.sortByCandidateCount()
	return true
}

// Delete removes the named participant and their own forbidden entry.
// With cascade, the name is also stripped from every other participant's
// forbidden set; entries that become empty are pruned. Deleting an
// unknown name is a no-op (though cascade still strips stale references).
// The working order is recomputed afterwards.
func (s *Santa) Delete(name string, cascade bool) {
	if i := slices.Index(s.recipients, name); i >= 0 {
		s.recipients = slices.Delete(s.recipients, i, i+1)
		delete(s.forbidden, name)
	}
	if cascade {
		for gifter, banned := range s.forbidden {
			delete(banned, name)
			if len(banned) == 0 {
				delete(s.forbidden, gifter)
			}
		}
	}
	s.sortByCandidateCount()
}

// Feasible reports whether a valid cycle could exist at all. It is a
// cheap necessary-condition check: fewer than two participants, or a
// most-constrained participant with zero permissible giftees, rule a
// cycle out immediately. Passing does not guarantee a cycle exists.
func (s *Santa) Feasible() bool {
	if len(s.recipients) < 2 {
		s.logf("not enough recipients registered (%d)", len(s.recipients))
		return false
	}
	if len(s.permissibleGiftees(s.recipients, s.recipients[0])) == 0 {
		s.logf("at least one gifter has no valid giftees (%q)", s.recipients[0])
		return false
	}
	return true
}

// Generate draws a new gift-giving sequence and stores it as the current
// one, replacing any previous result. The returned sequence has length
// len(participants)+1 with identical first and last elements; every
// adjacent (gifter, giftee) pair avoids the gifter's forbidden set and
// self-gifting. It returns nil when the feasibility check fails or when
// all attempts within the retry bound dead-ended.
func (s *Santa) Generate() []string {
	s.sequence = nil
	if !s.Feasible() {
		s.logf("no sequence possible with current candidate list")
		return nil
	}
	s.sequence = s.draw()
	if s.sequence == nil {
		s.logf("no valid sequence found within %d tries", s.maxTries)
	}
	return slices.Clone(s.sequence)
}

// draw runs up to maxTries randomized construction attempts. Each failed
// attempt discards the whole partial chain; there is no local backtracking.
func (s *Santa) draw() []string {
	for fails := 0; fails < s.maxTries; fails++ {
		if seq, ok := s.attempt(); ok {
			return seq
		}
		s.logf("dead end, restarting (failed attempts: %d)", fails+1)
	}
	return nil
}

// attempt builds one candidate chain. The starting participant is fixed
// (most-constrained first, to reduce the failure probability); every
// subsequent pick is uniformly random among the remaining permissible
// candidates. The closing edge back to the start is checked last.
func (s *Santa) attempt() ([]string, bool) {
	pool := slices.Clone(s.recipients)
	first := pool[0]
	pool = pool[1:]

	seq := make([]string, 0, len(s.recipients)+1)
	seq = append(seq, first)
	prev := first
	for len(pool) > 0 {
		choices := s.permissibleGiftees(pool, prev)
		if len(choices) == 0 {
			return nil, false
		}
		pick := choices[s.rng.IntN(len(choices))]
		seq = append(seq, pick)
		i := slices.Index(pool, pick)
		pool = slices.Delete(pool, i, i+1)
		prev = pick
	}
	if _, banned := s.forbidden[prev][first]; banned {
		return nil, false
	}
	return append(seq, first), true
}

// permissibleGiftees filters pool down to the candidates gifter may give
// to: not gifter themselves and not in gifter's forbidden set. The pool
// order is preserved so seeded draws stay reproducible.
func (s *Santa) permissibleGiftees(pool []string, gifter string) []string {
	banned := s.forbidden[gifter]
	var out []string
	for _, candidate := range pool {
		if candidate == gifter {
			continue
		}
		if _, ok := banned[candidate]; ok {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// sortByCandidateCount re-sorts the working order ascending by number of
// permissible giftees, ties broken by name. Called after every mutation.
func (s *Santa) sortByCandidateCount() {
	counts := make(map[string]int, len(s.recipients))
	for _, name := range s.recipients {
		counts[name] = len(s.permissibleGiftees(s.recipients, name))
	}
	slices.SortFunc(s.recipients, func(a, b string) int {
		if c := cmp.Compare(counts[a], counts[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// seed produces a random 64-bit seed for the default PCG source.
func seed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b[:])
}
