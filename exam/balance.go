package exam

import (
	"fmt"
	"strings"

	"github.com/nexus-edu/examscan"
)

// maxStreak is the shortest run of one letter the streak pass breaks up.
const maxStreak = 4

// KeyEntry is the correct answer of one question in a row.
type KeyEntry struct {
	QuestionID string `json:"question_id"`
	Letter     string `json:"letter"`
	// Index is the zero-based display slot of the correct option.
	Index int `json:"index"`
	// Position is the question's zero-based display position.
	Position int `json:"position"`

	options int
}

// Report describes the answer key produced by BalanceAnswerKey.
type Report struct {
	Entries []KeyEntry     `json:"entries"`
	Counts  map[string]int `json:"counts"`
	// Swaps is the number of donor swaps made by the distribution pass.
	Swaps int `json:"swaps"`
	// StreakFixes is the number of runs broken up by the streak pass.
	StreakFixes int `json:"streak_fixes"`
	// Balanced reports whether every letter ended within floor(n/k) and
	// ceil(n/k) occurrences.
	Balanced bool `json:"balanced"`
	// Skipped lists questions without a correct option. They are not part
	// of the key and cannot be scored.
	Skipped []string `json:"skipped,omitempty"`
}

// Letters returns the key as a string of letters in display order.
func (r Report) Letters() string {
	var sb strings.Builder
	for _, e := range r.Entries {
		sb.WriteString(e.Letter)
	}
	return sb.String()
}

// BalanceAnswerKey repairs the answer-key letter distribution of shuffled
// questions in place and returns the resulting key.
//
// The distribution pass targets floor(n/k) occurrences of each of the k
// letters, the first n mod k letters getting one more. While a letter is
// over its target, a donor question keyed to it is picked by hashing
// "seed-rowLabel-OVER-UNDER-excess" into a start index and scanning the key
// circularly; the donor's two display slots are swapped. The pass is greedy
// and stops early when no donor exists, leaving the key partially balanced.
//
// The streak pass then walks the key once and moves the 4th element of every
// run of identical letters to remaining[position mod len(remaining)], where
// remaining holds the question's other letters. Runs created by that move
// are not re-checked.
//
// Questions with no correct option are skipped and listed in Report.Skipped.
// Questions missing from order, or whose permutation does not match their
// options, get the identity permutation. A nil order is balanced on a
// private map; only the returned entries describe the result then.
//
// A numOptions below 1 disables both passes; Balanced is then false unless
// no question is keyed.
func BalanceAnswerKey(order map[string][]int, questions []Question, seed, rowLabel string, numOptions int) Report {
	log := examscan.Logger()
	if order == nil {
		order = make(map[string][]int, len(questions))
	}
	numOptions = max(numOptions, 0)

	var rep Report
	entries := make([]KeyEntry, 0, len(questions))
	letters := numOptions
	for pos, q := range questions {
		correct := q.CorrectIndex()
		if correct < 0 {
			rep.Skipped = append(rep.Skipped, q.ID)
			log.Warn("exam: question skipped from answer key",
				"question", q.ID, "row", rowLabel, "err", examscan.ErrNoCorrectOption)
			continue
		}
		perm := order[q.ID]
		slot := indexOf(perm, correct)
		if len(perm) != len(q.Options) || slot < 0 {
			perm = identity(len(q.Options))
			order[q.ID] = perm
			slot = correct
		}
		entries = append(entries, KeyEntry{
			QuestionID: q.ID,
			Index:      slot,
			Position:   pos,
			options:    len(perm),
		})
		letters = max(letters, len(perm))
	}

	b := &balancer{
		order:   order,
		entries: entries,
		counts:  make([]int, letters),
		targets: make([]int, letters),
	}
	for _, e := range entries {
		b.counts[e.Index]++
	}
	if n := len(entries); n > 0 && numOptions > 0 {
		base, extra := n/numOptions, n%numOptions
		for i := range min(numOptions, letters) {
			b.targets[i] = base
			if i < extra {
				b.targets[i]++
			}
		}
	}

	rep.Swaps = b.distribute(seed, rowLabel)
	rep.StreakFixes = b.breakStreaks(numOptions)

	rep.Counts = make(map[string]int, letters)
	rep.Balanced = true
	for i, c := range b.counts {
		if i < numOptions {
			rep.Counts[Letter(i)] = c
		} else if c > 0 {
			rep.Counts[Letter(i)] = c
		}
		if !b.withinBounds(i, numOptions) {
			rep.Balanced = false
		}
	}
	for i := range b.entries {
		b.entries[i].Letter = Letter(b.entries[i].Index)
	}
	rep.Entries = b.entries

	if !rep.Balanced {
		log.Warn("exam: answer key only partially balanced",
			"row", rowLabel, "counts", rep.Counts, "questions", len(entries))
	}
	log.Debug("exam: answer key balanced",
		"row", rowLabel, "key", rep.Letters(), "swaps", rep.Swaps, "streak_fixes", rep.StreakFixes)
	return rep
}

// balancer holds the mutable state of one BalanceAnswerKey call.
type balancer struct {
	order   map[string][]int
	entries []KeyEntry
	counts  []int
	targets []int
}

// distribute runs the greedy donor/recipient pass and returns the number of
// swaps made.
func (b *balancer) distribute(seed, rowLabel string) int {
	n := len(b.entries)
	if n == 0 {
		return 0
	}
	swaps := 0
	// Every swap lowers the total excess by one, so n swaps always suffice.
	for range n {
		if !b.swapOne(seed, rowLabel) {
			break
		}
		swaps++
	}
	return swaps
}

// swapOne makes a single donor swap. It tries over-represented letters, then
// under-represented letters, in alphabetical order and reports false when no
// letter is over target or no pair has a donor.
func (b *balancer) swapOne(seed, rowLabel string) bool {
	n := len(b.entries)
	for over := range b.counts {
		excess := b.counts[over] - b.targets[over]
		if excess <= 0 {
			continue
		}
		for under := range b.counts {
			if b.counts[under] >= b.targets[under] {
				continue
			}
			key := fmt.Sprintf("%s-%s-%s-%s-%d", seed, rowLabel, Letter(over), Letter(under), excess)
			start := startIndex(Hash(key), n)
			for step := range n {
				i := (start + step) % n
				e := &b.entries[i]
				if e.Index != over || e.options <= under {
					continue
				}
				b.move(e, under)
				examscan.Logger().Debug("exam: donor swap",
					"question", e.QuestionID, "from", Letter(over), "to", Letter(under))
				return true
			}
		}
	}
	return false
}

// breakStreaks runs the single streak pass and returns the number of fixes.
func (b *balancer) breakStreaks(numOptions int) int {
	fixes := 0
	run, prev := 0, -1
	for i := range b.entries {
		e := &b.entries[i]
		if e.Index == prev {
			run++
		} else {
			run = 1
		}
		if run >= maxStreak {
			remaining := make([]int, 0, numOptions)
			for l := range min(numOptions, e.options) {
				if l != e.Index {
					remaining = append(remaining, l)
				}
			}
			if len(remaining) > 0 {
				b.move(e, remaining[e.Position%len(remaining)])
				fixes++
				run = 1
			}
		}
		prev = e.Index
	}
	return fixes
}

// move swaps the correct option of e into display slot to.
func (b *balancer) move(e *KeyEntry, to int) {
	perm := b.order[e.QuestionID]
	perm[e.Index], perm[to] = perm[to], perm[e.Index]
	b.counts[e.Index]--
	b.counts[to]++
	e.Index = to
}

// withinBounds reports whether letter i occurs floor(n/k) to ceil(n/k) times.
// Letters past k must not occur at all.
func (b *balancer) withinBounds(i, numOptions int) bool {
	if i >= numOptions || numOptions <= 0 {
		return b.counts[i] == 0
	}
	n := len(b.entries)
	lo, hi := n/numOptions, n/numOptions
	if n%numOptions != 0 {
		hi++
	}
	return b.counts[i] >= lo && b.counts[i] <= hi
}

// startIndex maps a hash to a key position as |int32(h)| mod n.
func startIndex(h uint32, n int) int {
	v := int64(int32(h))
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
