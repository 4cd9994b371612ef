package tetris

import "math/rand/v2"

// DefaultLookahead is the number of upcoming kinds kept in the queue.
const DefaultLookahead = 5

// SupplyQueue hands out piece kinds using a 7-bag: every bag holds one of each
// kind in random order, and a new bag is shuffled only once the previous one is
// drained.
type SupplyQueue struct {
	rng       *rand.Rand
	lookahead int
	bag       []Kind
	queue     []Kind
}

// NewSupplyQueue creates a queue already filled to lookahead.
func NewSupplyQueue(rng *rand.Rand, lookahead int) *SupplyQueue {
	if lookahead < 1 {
		lookahead = DefaultLookahead
	}
	q := &SupplyQueue{
		rng:       rng,
		lookahead: lookahead,
		queue:     make([]Kind, 0, lookahead+KindCount),
	}
	q.Fill()
	return q
}

// Fill tops the queue up to its lookahead, opening new bags as needed.
func (q *SupplyQueue) Fill() {
	for len(q.queue) < q.lookahead {
		if len(q.bag) == 0 {
			q.refillBag()
		}
		q.queue = append(q.queue, q.bag[0])
		q.bag = q.bag[1:]
	}
}

func (q *SupplyQueue) refillBag() {
	q.bag = append(make([]Kind, 0, KindCount), Kinds[:]...)
	q.rng.Shuffle(len(q.bag), func(i, j int) {
		q.bag[i], q.bag[j] = q.bag[j], q.bag[i]
	})
}

// Pop removes and returns the next kind, then refills the queue.
func (q *SupplyQueue) Pop() Kind {
	if len(q.queue) == 0 {
		panic("supply queue is empty")
	}
	next := q.queue[0]
	q.queue = append(q.queue[:0], q.queue[1:]...)
	q.Fill()
	return next
}

// Preview returns a copy of the queued kinds, next first.
func (q *SupplyQueue) Preview() []Kind {
	out := make([]Kind, len(q.queue))
	copy(out, q.queue)
	return out
}

// Len returns the number of queued kinds.
func (q *SupplyQueue) Len() int {
	return len(q.queue)
}

// Lookahead returns the queue's target length.
func (q *SupplyQueue) Lookahead() int {
	return q.lookahead
}

// Reset discards the queue and the partially drawn bag and fills again.
func (q *SupplyQueue) Reset() {
	q.queue = q.queue[:0]
	q.bag = q.bag[:0]
	q.Fill()
}
