package dfa

import (
	"github.com/capturematch/capturematch/collapse"
	"github.com/capturematch/capturematch/tagnfa"
)

// StartState is M₄'s synthetic "before the first character" state.
const StartState StateID = 0

// encode maps an M₂ (M₁) state id to its M₄ StateID. StartState (0) is
// reserved for the synthetic initial state, so every real M₂ state is
// shifted up by one.
func encode(v tagnfa.StateID) StateID { return StateID(v) + 1 }

// TagEdge is one M₄ transition: the M₄ successor state and the
// GroupStart/GroupEnd markers to apply when this edge is taken, in the
// order they occur along the winning path.
type TagEdge struct {
	Target  StateID
	Markers []tagnfa.PathMarker
}

// Tagger is M₄: built from M₂ and its Recognizer (M₃) per spec.md
// §4.4.3. Its states are M₂ state indices (shifted by encode) plus
// StartState; edges are keyed by the M₃ power-state reached by the
// reverse pass at the corresponding input position, resolving the
// nondeterminism M₂ still has (multiple forward-reachable preserved
// successors) in favor of the one M₃ says is actually live going
// forward, breaking ties the same way the original match semantics
// would via comparePaths.
type Tagger struct {
	edges    []map[StateID]TagEdge // indexed by M4 StateID
	terminal StateID
}

// Terminal is the M₄ state equal to M₂'s Match state: landing here
// after the forward pass means the match succeeded.
func (t *Tagger) Terminal() StateID { return t.terminal }

// Step looks up the edge leaving state keyed by the M₃ power-state m3.
func (t *Tagger) Step(state StateID, m3 StateID) (TagEdge, bool) {
	if int(state) >= len(t.edges) {
		return TagEdge{}, false
	}
	e, ok := t.edges[state][m3]
	return e, ok
}

// BuildTagger constructs M₄ from M₂ and its already-built Recognizer.
func BuildTagger(m2 *collapse.NFA, r *Recognizer) *Tagger {
	type source struct {
		state StateID
		cands map[tagnfa.StateID]collapse.Path
	}

	sources := []source{{state: StartState, cands: m2.Start}}
	for _, u := range m2.CharStates() {
		sources = append(sources, source{state: encode(u), cands: m2.Transitions(u)})
	}

	maxState := int(StartState)
	for _, s := range sources {
		if int(s.state) > maxState {
			maxState = int(s.state)
		}
	}
	edges := make([]map[StateID]TagEdge, maxState+1)

	type candidate struct {
		v    tagnfa.StateID
		path collapse.Path
	}

	for _, s := range sources {
		best := make(map[StateID]candidate)
		for v, path := range s.cands {
			for _, m3 := range r.Owners(v) {
				cur, ok := best[m3]
				if !ok || comparePaths(path, cur.path) < 0 {
					best[m3] = candidate{v: v, path: path}
				}
			}
		}
		out := make(map[StateID]TagEdge, len(best))
		for m3, c := range best {
			out[m3] = TagEdge{Target: encode(c.v), Markers: stripToGroupMarkers(c.path)}
		}
		edges[s.state] = out
	}

	return &Tagger{edges: edges, terminal: encode(r.Terminal())}
}

// comparePaths orders two marker paths the way the winning forward
// continuation is chosen: lexicographically, with Plus preferred over
// Minus at the first point of divergence. Per spec.md §4.4.3, any two
// paths competing for the same M₃ successor can only diverge at a
// Fork (Plus/Minus); a divergence anywhere else is a construction
// invariant violation, not a recoverable ambiguity.
func comparePaths(a, b collapse.Path) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i].Kind == tagnfa.MarkerPlus && b[i].Kind == tagnfa.MarkerMinus {
			return -1
		}
		if a[i].Kind == tagnfa.MarkerMinus && b[i].Kind == tagnfa.MarkerPlus {
			return 1
		}
		panic("dfa: comparePaths found a divergence outside Plus/Minus; construction invariant violated")
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// stripToGroupMarkers keeps only the markers match.go's forward pass
// acts on. Boundary markers are dropped here: per spec.md §9 they carry
// no group side effect, so nothing downstream ever looks at one.
func stripToGroupMarkers(path collapse.Path) []tagnfa.PathMarker {
	var out []tagnfa.PathMarker
	for _, m := range path {
		if m.Kind == tagnfa.MarkerGroupStart || m.Kind == tagnfa.MarkerGroupEnd {
			out = append(out, m)
		}
	}
	return out
}
