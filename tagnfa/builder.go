package tagnfa

import (
	"github.com/capturematch/capturematch/internal/conv"
	"github.com/capturematch/capturematch/ranges"
)

// out is a dangling transition slot awaiting a patch: state `id`'s
// `slot`-th output (0 = next/out1, 1 = out2; only kindFork states use
// slot 1). Grounded on the teacher's Builder.Patch/PatchSplit pair,
// generalized into a single addressable (state, slot) so a frag's out
// list can mix single-target and fork-target dangling ends uniformly.
type out struct {
	id   StateID
	slot int
}

// frag is one compiled subexpression: an entry state plus every
// dangling output still needing a target. Composing frags (concat,
// alternate, repetition) never touches earlier states other than to
// patch their dangling outs — the same incremental, arena-append
// discipline as the teacher's Builder.
type frag struct {
	start StateID
	outs  []out
}

// Builder accumulates M₁ states into a single growing arena.
type Builder struct {
	states     []State
	groupCount int
}

func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 64)}
}

func (b *Builder) addState(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, s)
	return id
}

func (b *Builder) addChar(set ranges.Set) StateID {
	return b.addState(State{kind: kindChar, class: set, next: InvalidState})
}

func (b *Builder) addEps() StateID {
	return b.addState(State{kind: kindEps, next: InvalidState})
}

func (b *Builder) addMark(m PathMarker) StateID {
	return b.addState(State{kind: kindMark, marker: m, next: InvalidState})
}

func (b *Builder) addFork() StateID {
	return b.addState(State{kind: kindFork, out1: InvalidState, out2: InvalidState})
}

func (b *Builder) addMatch() StateID {
	return b.addState(State{kind: kindMatch})
}

// patch sets dangling slot `o` to target. Slot 0 is `next` for
// kindChar/kindEps/kindMark states and `out1` for kindFork; slot 1 is
// `out2` and only valid for kindFork.
func (b *Builder) patch(o out, target StateID) {
	s := &b.states[o.id]
	switch s.kind {
	case kindFork:
		if o.slot == 0 {
			s.out1 = target
		} else {
			s.out2 = target
		}
	default:
		s.next = target
	}
}

func (b *Builder) patchAll(outs []out, target StateID) {
	for _, o := range outs {
		b.patch(o, target)
	}
}

func (b *Builder) build(start StateID) *NFA {
	return &NFA{states: b.states, start: start, groupCount: b.groupCount}
}
