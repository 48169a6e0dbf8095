package ptrie

import "fmt"

// diffItem pairs the nodes reached by the same key prefix in the two
// snapshots being compared. Either side may be nil.
type diffItem struct {
	key []byte
	old *node
	new *node
}

// DiffIter invokes the given callback for every entry that is different
// from the given older snapshot. The iteration will stop if the
// callback returns keepGoing==false or an error. Callback invocation
// with added==removed==false signifies entries whose values have
// changed. Subtrees shared between the two snapshots are skipped by
// reference, so the cost is proportional to the difference, not the
// size. No ordering of callbacks is promised.
func (t Trie) DiffIter(
	old Trie,
	f func(added, removed bool,
		key string, addedValue, removedValue *Value,
	) (bool, error),
) error {
	stack := []diffItem{{nil, old.root, t.root}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.old == item.new {
			// shared subtree, nothing in it differs
			continue
		}
		var oldValue, newValue *Value
		if item.old != nil {
			oldValue = item.old.value
		}
		if item.new != nil {
			newValue = item.new.value
		}
		keepGoing := true
		var err error
		switch {
		case oldValue == nil && newValue != nil:
			keepGoing, err = f(true, false, string(item.key), newValue, nil)
		case oldValue != nil && newValue == nil:
			keepGoing, err = f(false, true, string(item.key), nil, oldValue)
		case oldValue != nil && newValue != nil && !oldValue.Equal(*newValue):
			keepGoing, err = f(false, false, string(item.key), newValue, oldValue)
		}
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
		edges := unionEdges(item.old, item.new)
		// pushed descending so pops come out in ascending edge order,
		// keeping output deterministic for tests
		for i := len(edges) - 1; i >= 0; i-- {
			c := edges[i]
			childKey := append(append([]byte{}, item.key...), c)
			var oldChild, newChild *node
			if item.old != nil {
				oldChild = item.old.children[c]
			}
			if item.new != nil {
				newChild = item.new.children[c]
			}
			stack = append(stack, diffItem{childKey, oldChild, newChild})
		}
	}
	return nil
}

func unionEdges(old, new *node) []byte {
	var seen [256]bool
	for _, c := range old.edges() {
		seen[c] = true
	}
	for _, c := range new.edges() {
		seen[c] = true
	}
	var out []byte
	for i := 0; i < 256; i++ {
		if seen[i] {
			out = append(out, byte(i))
		}
	}
	return out
}
