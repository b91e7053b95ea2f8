package book

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/shopspring/decimal"
)

// Ladder is a price-ordered map from price to PriceLevel for one side of
// the book. Ask and bid ladders are the same structure differing only in
// comparator direction: the ask ladder compares ascending (best = smallest
// price), the bid ladder descending (best = largest price); either way the
// tree's natural (Left-to-Right) order is "best to worst", so a plain
// in-order walk is a priority walk.
//
// Backed by a red-black tree keyed on decimal.Decimal, storing *PriceLevel
// per key.
type Ladder struct {
	tree *redblacktree.Tree
}

func ascendingComparator(a, b interface{}) int {
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

func descendingComparator(a, b interface{}) int {
	return b.(decimal.Decimal).Cmp(a.(decimal.Decimal))
}

func newAskLadder() *Ladder {
	return &Ladder{tree: redblacktree.NewWith(utils.Comparator(ascendingComparator))}
}

func newBidLadder() *Ladder {
	return &Ladder{tree: redblacktree.NewWith(utils.Comparator(descendingComparator))}
}

// PeekTop returns the best-priced level, or nil if the ladder is empty.
func (l *Ladder) PeekTop() *PriceLevel {
	node := l.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*PriceLevel)
}

// PeekTopOrder returns the head order of the best-priced level, or nil.
func (l *Ladder) PeekTopOrder() *Order {
	level := l.PeekTop()
	if level == nil {
		return nil
	}
	return level.Front()
}

// Insert places order into the level at its limit price, creating the
// level if needed. Order must be bookable (have a limit price); Insert
// panics on an order without one.
func (l *Ladder) Insert(order *Order) {
	price, ok := order.LimitPrice()
	if !ok {
		panic("book: attempted to insert a non-limit order into a ladder")
	}

	if existing, found := l.tree.Get(price); found {
		existing.(*PriceLevel).pushBack(order)
		return
	}

	level := newPriceLevel(price)
	level.pushBack(order)
	l.tree.Put(price, level)
}

// Remove locates order's level by its limit price and removes it from the
// queue, dropping the level entirely if it becomes empty. Returns false if
// the level does not exist.
func (l *Ladder) Remove(order *Order) bool {
	price, ok := order.LimitPrice()
	if !ok {
		return false
	}
	levelAny, found := l.tree.Get(price)
	if !found {
		return false
	}
	level := levelAny.(*PriceLevel)
	if removed := level.remove(order.ID()); removed == nil {
		return false
	}
	if level.Empty() {
		l.tree.Remove(price)
	}
	return true
}

// removeLevel drops a now-empty level at price from the ladder. Called by
// the matching walk once a level's cached quantity hits zero.
func (l *Ladder) removeLevel(price decimal.Decimal) {
	l.tree.Remove(price)
}

// Empty reports whether the ladder has any resting levels at all.
func (l *Ladder) Empty() bool { return l.tree.Empty() }

// ProbeFeasible sums the remaining quantity of every level that matches
// taker, walking best to worst, without mutating anything. It returns true
// as soon as the running sum reaches taker.Remaining() (feasible), and
// false as soon as a non-matching level or the end of the ladder is
// reached first (infeasible). Used by the Fill-Or-Kill / All-Or-None
// pre-match gate.
func (l *Ladder) ProbeFeasible(taker *Order) bool {
	needed := taker.Remaining()
	sum := decimal.Zero

	it := l.tree.Iterator()
	for it.Next() {
		level := it.Value().(*PriceLevel)
		if !level.Matches(taker) {
			return false
		}
		sum = sum.Add(level.Quantity())
		if sum.GreaterThanOrEqual(needed) {
			return true
		}
	}
	return false
}

// Levels returns every resting level, best to worst. Used by
// Orderbook.Depth only; the matching walk uses PeekTop/removeLevel
// directly so it never iterates while mutating.
func (l *Ladder) Levels() []*PriceLevel {
	levels := make([]*PriceLevel, 0, l.tree.Size())
	it := l.tree.Iterator()
	for it.Next() {
		levels = append(levels, it.Value().(*PriceLevel))
	}
	return levels
}
