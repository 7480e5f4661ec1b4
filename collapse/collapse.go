// Package collapse builds M₂: the ε-collapse of a tagnfa.NFA (M₁),
// annotating each preserved-state-to-preserved-state reachability with
// the shortest PathMarker sequence a leftmost-longest-greedy matcher
// would take. "Preserved" states are M₁'s terminal (Match) states and
// every state with an outgoing Char transition — the only states whose
// identity the DFA stages downstream need to remember.
//
// Grounded directly on spec.md §4.4.1's Floyd–Warshall-style
// relaxation, generalized from the teacher's nfa/reverse.go two-pass
// (reachability, then materialize) shape: a first pass computes
// reach[u][v], a second reconstructs and stores the per-preserved-state
// transition maps.
package collapse

import (
	"github.com/capturematch/capturematch/ranges"
	"github.com/capturematch/capturematch/tagnfa"
)

// reachEntry records the first marker of the best known u→v ε-path, or
// !ok if no path is known yet.
type reachEntry struct {
	marker tagnfa.PathMarker
	ok     bool
}

// Path is the full marker sequence of one u→v ε-path, reconstructed by
// repeatedly following each node's reach-preferred next marker.
type Path = []tagnfa.PathMarker

// NFA is M₂: per preserved Char state, its character predicate and the
// map of reachable preserved successors with their shortest marker
// path; plus the analogous map for M₁'s initial state.
type NFA struct {
	M1    *tagnfa.NFA
	Start map[tagnfa.StateID]Path // reachable preserved state -> path, from M1.Start()
	trans map[tagnfa.StateID]map[tagnfa.StateID]Path
}

// Transitions returns, for the given preserved Char state, the map of
// preserved successors reachable after consuming its character, each
// with the shortest marker path taken to reach it.
func (n *NFA) Transitions(charState tagnfa.StateID) map[tagnfa.StateID]Path {
	return n.trans[charState]
}

// CharStates returns every preserved Char state u that M₂ has an
// outgoing transition map for — the domain of Transitions.
func (n *NFA) CharStates() []tagnfa.StateID {
	ids := make([]tagnfa.StateID, 0, len(n.trans))
	for u := range n.trans {
		ids = append(ids, u)
	}
	return ids
}

// Pred returns the character predicate M₁'s Char state u consumes.
func (n *NFA) Pred(u tagnfa.StateID) ranges.Set {
	set, _, ok := n.M1.State(u).Char()
	if !ok {
		panic("collapse: Pred called on a non-Char state")
	}
	return set
}

// Build collapses m1 into M₂.
func Build(m1 *tagnfa.NFA) *NFA {
	n := m1.NumStates()

	// Eps states carry no marker of their own and are contracted away
	// before the Floyd–Warshall relaxation: every edge target consulted
	// below is resolved through skip(), so the relaxation only ever
	// operates over the Fork/Mark-contributing subset of states that
	// spec.md §4.4.1's base case actually lists (Eps isn't among the
	// listed contributors). skip is memoized since the same Eps chains
	// are resolved repeatedly while seeding the base case.
	skipCache := make(map[tagnfa.StateID]tagnfa.StateID, n)
	skip := func(id tagnfa.StateID) tagnfa.StateID {
		if v, ok := skipCache[id]; ok {
			return v
		}
		visited := make(map[tagnfa.StateID]bool)
		cur := id
		for {
			if visited[cur] {
				break // ε-only cycle; shouldn't occur in this construction
			}
			visited[cur] = true
			next, ok := m1.State(cur).Eps()
			if !ok {
				break
			}
			cur = next
		}
		skipCache[id] = cur
		return cur
	}

	reach := make([][]reachEntry, n)
	for i := range reach {
		reach[i] = make([]reachEntry, n)
	}

	for i := 0; i < n; i++ {
		id := tagnfa.StateID(i)
		s := m1.State(id)
		if _, ok := s.Eps(); ok {
			continue // contracted via skip(), contributes no direct edge itself
		}
		if m, next, ok := s.Mark(); ok {
			setIfBetter(reach, i, int(skip(next)), m)
		}
		if o1, o2, ok := s.Fork(); ok {
			setIfBetter(reach, i, int(skip(o1)), tagnfa.PathMarker{Kind: tagnfa.MarkerPlus})
			setIfBetter(reach, i, int(skip(o2)), tagnfa.PathMarker{Kind: tagnfa.MarkerMinus})
		}
	}

	// Floyd–Warshall relaxation proper (spec.md §4.4.1): update
	// reach[i][j] iff absent or the new candidate is Plus.
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !reach[i][k].ok {
				continue
			}
			for j := 0; j < n; j++ {
				if reach[k][j].ok {
					setIfBetter(reach, i, j, reach[i][k].marker)
				}
			}
		}
	}

	preserved := make([]bool, n)
	for i := 0; i < n; i++ {
		s := m1.State(tagnfa.StateID(i))
		if s.IsMatch() {
			preserved[i] = true
		}
		if _, _, ok := s.Char(); ok {
			preserved[i] = true
		}
	}

	rebuild := func(from tagnfa.StateID) map[tagnfa.StateID]Path {
		from = skip(from)
		out := make(map[tagnfa.StateID]Path)
		if preserved[from] {
			out[from] = nil
		}
		for j := 0; j < n; j++ {
			if preserved[j] && reach[from][j].ok {
				out[tagnfa.StateID(j)] = shortestMarkerPath(m1, reach, skip, from, tagnfa.StateID(j))
			}
		}
		return out
	}

	trans := make(map[tagnfa.StateID]map[tagnfa.StateID]Path)
	for i := 0; i < n; i++ {
		s := m1.State(tagnfa.StateID(i))
		if _, next, ok := s.Char(); ok {
			trans[tagnfa.StateID(i)] = rebuild(next)
		}
	}

	return &NFA{
		M1:    m1,
		Start: rebuild(m1.Start()),
		trans: trans,
	}
}

// setIfBetter applies the spec's update rule: replace reach[i][j] iff
// it was absent or the candidate marker is Plus (strictly preferred).
func setIfBetter(reach [][]reachEntry, i, j int, candidate tagnfa.PathMarker) {
	cur := reach[i][j]
	if !cur.ok {
		reach[i][j] = reachEntry{marker: candidate, ok: true}
		return
	}
	if cur.marker.Kind == tagnfa.MarkerPlus {
		return
	}
	if candidate.Kind == tagnfa.MarkerPlus {
		reach[i][j] = reachEntry{marker: candidate, ok: true}
	}
}

// shortestMarkerPath reconstructs the full marker sequence of the best
// from→to ε-path by repeatedly following, from the current node, the
// direct edge carrying reach[current][to]'s marker (skipping over any
// contracted Eps hops along the way).
func shortestMarkerPath(m1 *tagnfa.NFA, reach [][]reachEntry, skip func(tagnfa.StateID) tagnfa.StateID, from, to tagnfa.StateID) Path {
	var path Path
	cur := from
	for cur != to {
		entry := reach[cur][to]
		if !entry.ok {
			panic("collapse: shortestMarkerPath called on an unreachable pair")
		}
		next, ok := directNeighbor(m1, skip, cur, entry.marker)
		if !ok {
			panic("collapse: reach table inconsistent with M1 structure")
		}
		path = append(path, entry.marker)
		cur = next
	}
	return path
}

// directNeighbor returns the state reached by following u's one direct
// ε-edge carrying marker m (Mark: its own marker; Fork: Plus->out1,
// Minus->out2), resolved through skip() since the relaxation's targets
// were seeded post-skip.
func directNeighbor(m1 *tagnfa.NFA, skip func(tagnfa.StateID) tagnfa.StateID, u tagnfa.StateID, m tagnfa.PathMarker) (tagnfa.StateID, bool) {
	s := m1.State(u)
	if mk, next, ok := s.Mark(); ok && mk == m {
		return skip(next), true
	}
	if o1, o2, ok := s.Fork(); ok {
		if m.Kind == tagnfa.MarkerPlus {
			return skip(o1), true
		}
		if m.Kind == tagnfa.MarkerMinus {
			return skip(o2), true
		}
	}
	return tagnfa.InvalidState, false
}
