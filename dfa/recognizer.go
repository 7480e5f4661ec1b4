// Package dfa builds M₃ (the Recognizer, a reverse-simulation DFA) and
// M₄ (the Tagger, a forward capture-emitting DFA) from a collapse.NFA
// (M₂), and drives the two-pass match algorithm spec.md §4.4.2–§4.4.4
// describes: a backward pass over the input through M₃ determines
// whether a match exists at all and records, for every prefix length,
// the set of M₂ states still live; a forward pass through M₄, keyed by
// that recorded trace, then walks the input once more to place capture
// group boundaries.
//
// Grounded on the teacher's dfa/onepass (subset-construction-from-NFA
// shape) and dfa/lazy (on-the-fly per-character transition table)
// packages, and on internal/sparse for power-state membership tracking
// the same way the teacher uses it for NFA thread sets during
// simulation.
package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/capturematch/capturematch/collapse"
	"github.com/capturematch/capturematch/internal/conv"
	"github.com/capturematch/capturematch/internal/sparse"
	"github.com/capturematch/capturematch/ranges"
	"github.com/capturematch/capturematch/tagnfa"
)

// StateID indexes an M₃ (or M₄) state.
type StateID uint32

// DeadState is returned by Recognizer.Step when no transition covers
// the given code point — the reverse pass fails immediately here, per
// spec.md §4.4.4.
const DeadState StateID = 0xFFFFFFFF

// edge is one outgoing partition of a Recognizer state: reading any
// code point in Set leads to Target.
type edge struct {
	Set    ranges.Set
	Target StateID
}

// Recognizer is M₃: the subset-construction DFA over the REVERSE of
// M₂, per spec.md §4.4.2. Its states are sets of M₂ (i.e. M₁) state
// IDs; Members[s] lists the sorted M₂ states power-state s represents,
// and Owners(v) lists every power-state that contains M₂ state v — the
// index the Tagger (M₄) consumes when it builds its own transition
// table keyed by "which M₃ state was reached looking forward".
type Recognizer struct {
	M2       *collapse.NFA
	Members  [][]tagnfa.StateID
	edges    [][]edge
	accept   []bool
	owners   [][]StateID
	terminal tagnfa.StateID
}

// Terminal returns M₁'s unique Match state — the state the Tagger (M₄)
// treats as its success target.
func (r *Recognizer) Terminal() tagnfa.StateID { return r.terminal }

// NumStates returns the number of M₃ states.
func (r *Recognizer) NumStates() int { return len(r.Members) }

// IsAccepting reports whether s's member set intersects M₂'s initial
// states — equivalently, whether reverse-simulating from s to the end
// of input is equivalent to M₂ accepting the consumed suffix forward.
func (r *Recognizer) IsAccepting(s StateID) bool { return r.accept[s] }

// Owners returns every M₃ state whose member set contains the M₂
// (M₁) state v.
func (r *Recognizer) Owners(v tagnfa.StateID) []StateID { return r.owners[v] }

// Step returns the successor of s on code point c, or DeadState if no
// outgoing partition covers c.
func (r *Recognizer) Step(s StateID, c rune) StateID {
	for _, e := range r.edges[s] {
		if e.Set.Contains(int32(c)) {
			return e.Target
		}
	}
	return DeadState
}

// Build performs the subset construction described in spec.md §4.4.2:
// reverse every M₂ transition u →{pred} v into v →{pred} u, start the
// reversed graph at M₂'s (unique) terminal Match state, and partition
// each power-state's outgoing predicates into disjoint sub-ranges (via
// ranges.DisjointPartition) to keep the alphabet bounded.
func Build(m2 *collapse.NFA) *Recognizer {
	m1 := m2.M1
	n := m1.NumStates()

	terminal := tagnfa.InvalidState
	for i := 0; i < n; i++ {
		if m1.State(tagnfa.StateID(i)).IsMatch() {
			terminal = tagnfa.StateID(i)
			break
		}
	}
	if terminal == tagnfa.InvalidState {
		panic("dfa: M1 has no Match state")
	}

	type revEdge struct {
		U    tagnfa.StateID
		Pred ranges.Set
	}
	reverse := make(map[tagnfa.StateID][]revEdge)
	for _, u := range m2.CharStates() {
		pred := m2.Pred(u)
		for v := range m2.Transitions(u) {
			reverse[v] = append(reverse[v], revEdge{U: u, Pred: pred})
		}
	}

	initial := make(map[tagnfa.StateID]bool, len(m2.Start))
	for id := range m2.Start {
		initial[id] = true
	}

	sortedMembers := func(s *sparse.SparseSet) []tagnfa.StateID {
		var out []tagnfa.StateID
		s.Iter(func(v uint32) { out = append(out, tagnfa.StateID(v)) })
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}
	canon := func(members []tagnfa.StateID) string {
		buf := make([]byte, 4*len(members))
		for i, m := range members {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(m))
		}
		return string(buf)
	}
	internOf := func(keys []tagnfa.StateID) []tagnfa.StateID {
		s := sparse.NewSparseSet(uint32(n))
		for _, k := range keys {
			s.Insert(uint32(k))
		}
		return sortedMembers(s)
	}

	index := make(map[string]StateID)
	var membersList [][]tagnfa.StateID
	var edgesList [][]edge
	var acceptList []bool
	var queue []StateID

	intern := func(members []tagnfa.StateID) StateID {
		key := canon(members)
		if id, ok := index[key]; ok {
			return id
		}
		id := StateID(conv.IntToUint32(len(membersList)))
		index[key] = id
		membersList = append(membersList, members)
		edgesList = append(edgesList, nil)
		acceptList = append(acceptList, false)
		queue = append(queue, id)
		return id
	}

	start := intern(internOf([]tagnfa.StateID{terminal}))
	_ = start // always StateID(0): the first intern call

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members := membersList[cur]

		acc := false
		for _, m := range members {
			if initial[m] {
				acc = true
				break
			}
		}
		acceptList[cur] = acc

		predByU := make(map[tagnfa.StateID]ranges.Set)
		for _, v := range members {
			for _, re := range reverse[v] {
				if existing, ok := predByU[re.U]; ok {
					predByU[re.U] = ranges.Union(existing, re.Pred)
				} else {
					predByU[re.U] = re.Pred
				}
			}
		}
		partition := ranges.DisjointPartition(predByU)

		var edges []edge
		for _, entry := range partition {
			target := intern(internOf(entry.Keys))
			edges = append(edges, edge{Set: entry.Set, Target: target})
		}
		edgesList[cur] = edges
	}

	owners := make([][]StateID, n)
	for sid, members := range membersList {
		for _, m := range members {
			owners[m] = append(owners[m], StateID(sid))
		}
	}

	return &Recognizer{
		M2:       m2,
		Members:  membersList,
		edges:    edgesList,
		accept:   acceptList,
		owners:   owners,
		terminal: terminal,
	}
}
