package game

// ResourceNode is a fixed-position energy source. The set of nodes is
// created at init and never changes during play; only Value moves.
type ResourceNode struct {
	ID  string
	Pos Vec2i

	Value            int
	MaxValue         int
	RegenerationRate int
}

// deplete removes up to amount from the node and returns what was actually
// taken.
func (n *ResourceNode) deplete(amount int) int {
	if amount > n.Value {
		amount = n.Value
	}
	n.Value -= amount
	return amount
}

// regenerate adds the node's regeneration rate capped at MaxValue and
// returns the amount actually added.
func (n *ResourceNode) regenerate() int {
	before := n.Value
	n.Value += n.RegenerationRate
	if n.Value > n.MaxValue {
		n.Value = n.MaxValue
	}
	return n.Value - before
}
