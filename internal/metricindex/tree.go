package metricindex

// Tree is an unbalanced binary search tree keyed by metric value.
// Values smaller than a node go left, equal or larger values go right.
// The zero value is an empty tree ready for use.
//
// A Tree is filled once from a snapshot and then only read. Sorted input
// degrades it to a list; the index is rebuilt per refresh so this is accepted.
type Tree struct {
	root *treeNode
	size int
}

type treeNode struct {
	Node
	left  *treeNode
	right *treeNode
}

// Insert adds a node for value. Duplicates are kept.
func (t *Tree) Insert(value float64, companyID string, period Period, metricType MetricType) {
	n := &treeNode{Node: Node{Value: value, CompanyID: companyID, Period: period, Type: metricType}}
	t.size++
	if t.root == nil {
		t.root = n
		return
	}

	cur := t.root
	for {
		if value < cur.Value {
			if cur.left == nil {
				cur.left = n
				return
			}
			cur = cur.left
			continue
		}
		if cur.right == nil {
			cur.right = n
			return
		}
		cur = cur.right
	}
}

// Len returns the number of stored nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// FindInRange returns every node with min <= value <= max.
// Result order is not part of the contract.
func (t *Tree) FindInRange(min, max float64) []Node {
	out := []Node{}
	if t == nil || min > max {
		return out
	}
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		if n.Value > min {
			walk(n.left)
		}
		if n.Value >= min && n.Value <= max {
			out = append(out, n.Node)
		}
		// duplicates of max live in the right subtree
		if n.Value <= max {
			walk(n.right)
		}
	}
	walk(t.root)
	return out
}

// SortedNodes returns all nodes in ascending value order.
func (t *Tree) SortedNodes() []Node {
	out := make([]Node, 0, t.Len())
	if t == nil {
		return out
	}
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.Node)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// TopK returns the k largest nodes in descending order.
func (t *Tree) TopK(k int) []Node {
	if k <= 0 {
		return []Node{}
	}
	sorted := t.SortedNodes()
	if k > len(sorted) {
		k = len(sorted)
	}
	out := make([]Node, 0, k)
	for i := len(sorted) - 1; i >= len(sorted)-k; i-- {
		out = append(out, sorted[i])
	}
	return out
}

// FindAboveThreshold returns every node with value strictly greater than threshold.
func (t *Tree) FindAboveThreshold(threshold float64) []Node {
	out := []Node{}
	if t == nil {
		return out
	}
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		if n.Value > threshold {
			walk(n.left)
			out = append(out, n.Node)
		}
		walk(n.right)
	}
	walk(t.root)
	return out
}
