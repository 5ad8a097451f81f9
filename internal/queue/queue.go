// Package queue implements the priority-queue enumeration core: the
// classical Weir et al. "next function" over a PCFG, realized as a
// deduplicating pivot rule over a max-heap of partial derivations.
package queue

import (
	"container/heap"

	"github.com/weircrack/pcfg/internal/grammar"
)

// PartialDerivation is a fully-instantiated choice of one group per segment
// of one template: a set of strings, not yet a single terminal string.
type PartialDerivation struct {
	TemplateIndex    int
	Groups           []int // arena index, one per template segment
	Pivot            int
	BaseProbability  float64
	JointProbability float64
}

// pdHeap is a max-heap of *PartialDerivation ordered by JointProbability.
// container/heap only ever gives us a min-heap, so Less is inverted.
type pdHeap []*PartialDerivation

func (h pdHeap) Len() int { return len(h) }
func (h pdHeap) Less(i, j int) bool {
	return h[i].JointProbability > h[j].JointProbability
}
func (h pdHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pdHeap) Push(x any)   { *h = append(*h, x.(*PartialDerivation)) }
func (h *pdHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is the priority queue driving enumeration. It is mutated by exactly
// one control-flow path: pop, emit, expand, push successors.
type Queue struct {
	h pdHeap
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Len reports how many partial derivations remain queued.
func (q *Queue) Len() int { return q.h.Len() }

// Push inserts a partial derivation. Zero-probability derivations must
// never reach here; callers are expected to have filtered those out
// already.
func (q *Queue) Push(pd *PartialDerivation) {
	heap.Push(&q.h, pd)
}

// Pop removes and returns the partial derivation with the highest joint
// probability, or (nil, false) if the queue is empty.
func (q *Queue) Pop() (*PartialDerivation, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*PartialDerivation), true
}

// Seed pushes one PartialDerivation per resolved template, with every
// segment bound to its chain head and pivot = 0.
func Seed(q *Queue, templates []grammar.ResolvedTemplate) {
	for i, t := range templates {
		if t.JointProbability <= 0 {
			continue
		}
		groups := make([]int, len(t.Heads))
		copy(groups, t.Heads)
		q.Push(&PartialDerivation{
			TemplateIndex:    i,
			Groups:           groups,
			Pivot:            0,
			BaseProbability:  t.Template.BaseProbability,
			JointProbability: t.JointProbability,
		})
	}
}

// Expand generates every successor of a just-popped derivation per the
// pivot rule and pushes the ones with nonzero probability: for each segment
// index i with pivot <= i < len(segments), if the group at i has a next
// group, a successor advances position i to that next group and stamps its
// own pivot to i. This is the correctness mechanism: a popped derivation
// with pivot p only ever advances positions >= p, so no two expansion paths
// can produce the same (template, group tuple) combination.
func Expand(q *Queue, arena *grammar.Arena, parent *PartialDerivation) {
	for i := parent.Pivot; i < len(parent.Groups); i++ {
		cur := arena.Get(parent.Groups[i])
		if cur.Next == grammar.NoNext {
			continue
		}
		next := arena.Get(cur.Next)
		if next.Probability <= 0 {
			continue
		}
		groups := make([]int, len(parent.Groups))
		copy(groups, parent.Groups)
		groups[i] = cur.Next

		joint := parent.BaseProbability
		for _, gi := range groups {
			joint *= arena.Get(gi).Probability
		}
		if joint <= 0 {
			continue
		}
		q.Push(&PartialDerivation{
			TemplateIndex:    parent.TemplateIndex,
			Groups:           groups,
			Pivot:            i,
			BaseProbability:  parent.BaseProbability,
			JointProbability: joint,
		})
	}
}
