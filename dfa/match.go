package dfa

import "github.com/capturematch/capturematch/tagnfa"

// Result is the outcome of running Match: whether the input matched,
// and — if so — the capture group boundaries. Boundaries are
// expressed as code point (rune) offsets into the input that was
// matched; Boundaries[2k] and Boundaries[2k+1] are the start and end
// of the explicit capturing group with parser index k (0-based), or
// -1 if that group did not participate. The public facade's group 0
// (which always spans the whole match) is synthesized from the match
// span itself, not from any marker here — it is not part of this
// array.
type Result struct {
	Matched    bool
	Boundaries []int
}

// Match runs the two-pass algorithm of spec.md §4.4.2–§4.4.4: a
// backward pass through the Recognizer (M₃) determines whether a
// match exists and records, for every prefix length, which M₂ states
// are still live; if that pass ends in an accepting state, a forward
// pass through the Tagger (M₄) walks the input once more, keyed by
// the recorded trace, placing every capture group's boundaries.
//
// Match succeeds only if the automata consume all of input. The
// capturematch façade implements lookingAt and find by running Match
// on the whole subject with the pattern wrapped in a capturing group
// plus lazy `.*` padding, and reads the match span from that group.
func Match(r *Recognizer, tg *Tagger, groupCount int, input []rune) Result {
	n := len(input)
	trace := make([]StateID, n+1)
	trace[n] = 0 // Recognizer.Build always interns the start power-state as 0.

	cur := trace[n]
	for i := n - 1; i >= 0; i-- {
		next := r.Step(cur, input[i])
		if next == DeadState {
			return Result{Matched: false}
		}
		trace[i] = next
		cur = next
	}
	if !r.IsAccepting(cur) {
		return Result{Matched: false}
	}

	boundaries := make([]int, 2*groupCount)
	for i := range boundaries {
		boundaries[i] = -1
	}

	// The forward pass retraces the same ground the reverse pass just
	// covered, left to right this time. trace[j] is the M₃ power-state
	// confirming that a candidate M₂ state is still consistent with
	// matching the remaining suffix input[j:]; BuildTagger keys every
	// M₄ edge by Owners(v) of its own target v, so an edge is only
	// valid to take when looked up under the trace entry for the
	// state *after* taking it — not the one before.
	//
	// Step 0 resolves the pure-ε choice between M₁'s start and the
	// first preserved state, before any input is consumed: since
	// nothing has been read yet, that choice must already be
	// consistent with matching the *entire* input, i.e. trace[0].
	// Step j, for 1 <= j <= n, then consumes input[j-1] on the way to
	// the next preserved state, validated against the suffix that
	// remains after that character: trace[j]. That is n+1 steps in
	// total, walking trace[0..n] in ascending order and landing on
	// tg.Terminal() exactly when trace[n] — the empty suffix, {Match}
	// — is reached; a zero-length match (n == 0) still runs the single
	// j == 0 step, so it never gets stuck at StartState.
	state := StartState
	for j := 0; j <= n; j++ {
		edge, ok := tg.Step(state, trace[j])
		if !ok {
			panic("dfa: forward tagging pass failed after an accepting reverse pass; this is a construction bug, not a match failure")
		}
		for _, m := range edge.Markers {
			switch m.Kind {
			case tagnfa.MarkerGroupStart:
				if idx := 2 * m.GroupIdx; idx < len(boundaries) {
					boundaries[idx] = j
				}
			case tagnfa.MarkerGroupEnd:
				if idx := 2*m.GroupIdx + 1; idx < len(boundaries) {
					boundaries[idx] = j
				}
			}
		}
		state = edge.Target
	}
	if state != tg.Terminal() {
		panic("dfa: forward tagging pass ended at a non-terminal state; this is a construction bug, not a match failure")
	}

	return Result{Matched: true, Boundaries: boundaries}
}
