package ranges

import (
	"container/heap"
	"math"
	"sort"
)

// event is a single sweep-line endpoint belonging to list `list`. Each
// input range [lo, hi] in a list contributes two events: an "open" event
// at lo and a "close" event at hi+1 (the half-open-interval transform).
// Representing closes at hi+1 rather than hi means events sharing a
// value can simply have their masks combined in any order — it is the
// mandated (endpoint, isUpper) ordering applied at the moment the range
// is translated into events, which is what keeps a singleton range
// [a,a] (open at a, close at a+1) from vanishing: the two events land at
// different sweep-line positions instead of cancelling at the same one.
type event struct {
	val     int64
	isUpper bool
	list    int
}

// eventIter walks one input list's ranges, yielding its open/close
// endpoints in increasing order. Within a single canonical Set the
// ranges are already sorted and non-adjacent, so a list's own events are
// emitted in increasing order without any merging on the iterator's
// part — the heap below performs the cross-list merge.
type eventIter struct {
	rs      []IntRange
	idx     int
	atUpper bool // false: next event opens rs[idx]; true: next event closes it
}

func (it *eventIter) peek(list int) (event, bool) {
	if it.idx >= len(it.rs) {
		return event{}, false
	}
	r := it.rs[it.idx]
	if !it.atUpper {
		return event{val: int64(r.Lo), isUpper: false, list: list}, true
	}
	return event{val: int64(r.Hi) + 1, isUpper: true, list: list}, true
}

func (it *eventIter) advance() {
	if it.atUpper {
		it.idx++
		it.atUpper = false
	} else {
		it.atUpper = true
	}
}

// iterHeap is the mandatory priority queue of iterators: a min-heap over
// "next pending event from list i", ordered by (endpoint, isUpper).
type iterHeap struct {
	iters []*eventIter
	cur   []event
	order []int
}

func newIterHeap(lists [][]IntRange) *iterHeap {
	h := &iterHeap{
		iters: make([]*eventIter, len(lists)),
		cur:   make([]event, len(lists)),
	}
	for i, rs := range lists {
		h.iters[i] = &eventIter{rs: rs}
		if ev, ok := h.iters[i].peek(i); ok {
			h.cur[i] = ev
			h.order = append(h.order, i)
		}
	}
	heap.Init(h)
	return h
}

func (h *iterHeap) Len() int { return len(h.order) }
func (h *iterHeap) Less(i, j int) bool {
	a, b := h.cur[h.order[i]], h.cur[h.order[j]]
	if a.val != b.val {
		return a.val < b.val
	}
	return !a.isUpper && b.isUpper
}
func (h *iterHeap) Swap(i, j int) { h.order[i], h.order[j] = h.order[j], h.order[i] }
func (h *iterHeap) Push(x any)    { h.order = append(h.order, x.(int)) }
func (h *iterHeap) Pop() any {
	old := h.order
	n := len(old)
	v := old[n-1]
	h.order = old[:n-1]
	return v
}

// next pops the smallest pending event across all lists, or ok=false when
// every iterator is exhausted.
func (h *iterHeap) next() (event, bool) {
	if h.Len() == 0 {
		return event{}, false
	}
	listIdx := h.order[0]
	ev := h.cur[listIdx]
	h.iters[listIdx].advance()
	if nextEv, ok := h.iters[listIdx].peek(listIdx); ok {
		h.cur[listIdx] = nextEv
		heap.Fix(h, 0)
	} else {
		heap.Pop(h)
	}
	return ev, true
}

// taggedRange is an intermediate sweep output: a run of positions all
// covered by exactly the input lists named in mask.
type taggedRange struct {
	lo, hi int64
	mask   uint64
}

// sweepTagged merges the endpoint streams of all input lists and, at
// every distinct position, reports the exact bitmask of which lists
// currently have an open range covering that position. At most 64 input
// lists are supported (one bit per list), which comfortably covers every
// use in this engine (character-class set algebra, DFA alphabet
// partitioning).
func sweepTagged(lists [][]IntRange) []taggedRange {
	if len(lists) > 64 {
		panic("ranges: sweepTagged supports at most 64 input lists")
	}
	h := newIterHeap(lists)

	var out []taggedRange
	var mask uint64
	var curPos int64
	haveCur := false

	for {
		ev, ok := h.next()
		if !ok {
			break
		}
		if haveCur && ev.val > curPos && mask != 0 {
			out = append(out, taggedRange{lo: curPos, hi: ev.val - 1, mask: mask})
		}
		if ev.isUpper {
			mask &^= 1 << uint(ev.list)
		} else {
			mask |= 1 << uint(ev.list)
		}
		curPos = ev.val
		haveCur = true
	}
	return coalesceTagged(out)
}

func coalesceTagged(rs []taggedRange) []taggedRange {
	if len(rs) == 0 {
		return rs
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].lo < rs[j].lo })
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if last.mask == r.mask && last.hi+1 >= r.lo {
			if r.hi > last.hi {
				last.hi = r.hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func popcount(m uint64) int {
	n := 0
	for m != 0 {
		n++
		m &= m - 1
	}
	return n
}

func clampInt32(v int64) int32 {
	if v < math.MinInt32 {
		return math.MinInt32
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// mustCoalesce merges adjacent/overlapping ranges in rs into canonical
// form. rs need not be pre-sorted.
func mustCoalesce(rs []IntRange) Set {
	if len(rs) == 0 {
		return Set{}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if last.Hi+1 >= r.Lo {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return Set{ranges: out}
}

// sweepUnary normalizes a single (possibly unsorted/overlapping) list of
// raw ranges, used by UnionOf.
func sweepUnary(rs []IntRange, p func(open int) bool) Set {
	tagged := sweepTagged([][]IntRange{rs})
	var out []IntRange
	for _, t := range tagged {
		if p(popcount(t.mask)) {
			out = append(out, IntRange{Lo: clampInt32(t.lo), Hi: clampInt32(t.hi)})
		}
	}
	return mustCoalesce(out)
}

func countPredicateSets(lists []Set, p func(open int) bool) Set {
	raw := make([][]IntRange, len(lists))
	for i, s := range lists {
		raw[i] = s.ranges
	}
	tagged := sweepTagged(raw)
	var out []IntRange
	for _, t := range tagged {
		if p(popcount(t.mask)) {
			out = append(out, IntRange{Lo: clampInt32(t.lo), Hi: clampInt32(t.hi)})
		}
	}
	return mustCoalesce(out)
}

// Union returns the union of all given sets: p(n) = n >= 1.
func Union(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	return countPredicateSets(sets, func(n int) bool { return n >= 1 })
}

// Intersection returns the intersection of all given sets: p(n) = n == N.
func Intersection(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	n := len(sets)
	return countPredicateSets(sets, func(open int) bool { return open == n })
}

// SymmetricDifference returns the set of positions covered by an odd
// number of the given sets: p(n) = n mod 2 == 1.
func SymmetricDifference(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	return countPredicateSets(sets, func(n int) bool { return n%2 == 1 })
}

// Difference returns a \ b: positions in a that are not in b.
func Difference(a, b Set) Set {
	tagged := sweepTagged([][]IntRange{a.ranges, b.ranges})
	var out []IntRange
	for _, t := range tagged {
		if t.mask == 1 { // bit 0 (a) set, bit 1 (b) clear
			out = append(out, IntRange{Lo: clampInt32(t.lo), Hi: clampInt32(t.hi)})
		}
	}
	return mustCoalesce(out)
}

// Complement returns the complement of s within the full int32 domain:
// p(n) = n == 0. complement(complement(s)) == s holds because the sweep
// is exhaustive over [MinInt32, MaxInt32].
func Complement(s Set) Set {
	return ComplementWithin(s, math.MinInt32, math.MaxInt32)
}

// ComplementWithin returns the complement of s restricted to [lo, hi].
// This is what desugaring a negated character class (`[^...]`) actually
// wants: the complement within the legal code point domain, not the full
// int32 domain.
func ComplementWithin(s Set, lo, hi int32) Set {
	bound := MustOf(IntRange{Lo: lo, Hi: hi})
	tagged := sweepTagged([][]IntRange{bound.ranges, s.ranges})
	var out []IntRange
	for _, t := range tagged {
		if t.mask == 1 { // inside bound (bit 0), not in s (bit 1 clear)
			out = append(out, IntRange{Lo: clampInt32(t.lo), Hi: clampInt32(t.hi)})
		}
	}
	return mustCoalesce(out)
}

// PartitionEntry is one output bucket of DisjointPartition: the keys
// whose input sets all cover this bucket's code points, and the disjoint
// Set of code points itself.
type PartitionEntry[K comparable] struct {
	Keys []K
	Set  Set
}

// DisjointPartition partitions the alphabet covered by the given keyed
// sets into the maximal disjoint subranges, tagging each with exactly the
// subset of keys whose input set covers it. The result is lossless: for
// every input key k, unioning every output value whose key set contains k
// reconstructs m[k] exactly.
func DisjointPartition[K comparable](m map[K]Set) map[string]PartitionEntry[K] {
	if len(m) == 0 {
		return map[string]PartitionEntry[K]{}
	}
	keys := make([]K, 0, len(m))
	lists := make([][]IntRange, 0, len(m))
	for k, v := range m {
		keys = append(keys, k)
		lists = append(lists, v.ranges)
	}
	tagged := sweepTagged(lists)
	out := make(map[string]PartitionEntry[K])
	for _, t := range tagged {
		if t.mask == 0 {
			continue
		}
		var subset []K
		for i, k := range keys {
			if t.mask&(1<<uint(i)) != 0 {
				subset = append(subset, k)
			}
		}
		sk := partitionKey(t.mask)
		entry, seen := out[sk]
		if !seen {
			entry = PartitionEntry[K]{Keys: subset}
		}
		entry.Set = unionRange(entry.Set, IntRange{Lo: clampInt32(t.lo), Hi: clampInt32(t.hi)})
		out[sk] = entry
	}
	return out
}

func partitionKey(mask uint64) string {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(mask >> (8 * i))
	}
	return string(buf)
}

func unionRange(s Set, r IntRange) Set {
	rs := append(append([]IntRange{}, s.ranges...), r)
	return mustCoalesce(rs)
}
