package ptrie

import (
	"context"
	"fmt"
)

// Persist is the interface for loading and storing (serialized) trie
// nodes. The given string identity corresponds to the content which is
// immutable (never modified).
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(ctx context.Context, name string, data []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// RemoteConfig controls how nodes are persisted and loaded.
type RemoteConfig struct {
	// StoreImmutablePartsWith is used to store and load serialized nodes.
	StoreImmutablePartsWith Persist

	// Marshal function, defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function, defaults to JSON.
	Unmarshal func([]byte, interface{}) error

	// NodeCache caches deserialized nodes and may be shared across
	// multiple tries.
	NodeCache NodeCache
}

// Root identifies a version of a trie whose nodes are accessible in the
// persistent store. A nil Link is the empty trie.
type Root struct {
	Link *string
	Size uint64
}

// New returns an empty snapshot.
func New() Trie {
	return Trie{}
}

// Get returns the value stored at the given key, if there is one and it
// holds the requested kind. A missing key, a key that is only a prefix
// of stored keys, and a stored value of a different kind all read as
// absent. Get allocates nothing and can run concurrently with any other
// operation on any snapshot.
func (t Trie) Get(key string, kind Kind) (Value, bool) {
	n := t.root
	for i := 0; i < len(key); i++ {
		if n == nil {
			return Value{}, false
		}
		n = n.children[key[i]]
	}
	if n == nil || n.value == nil || n.value.kind != kind {
		return Value{}, false
	}
	return *n.value, true
}

// GetInt32 is shorthand for Get with KindInt32.
func (t Trie) GetInt32(key string) (int32, bool) {
	v, ok := t.Get(key, KindInt32)
	if !ok {
		return 0, false
	}
	return v.Int32()
}

// GetInt64 is shorthand for Get with KindInt64.
func (t Trie) GetInt64(key string) (int64, bool) {
	v, ok := t.Get(key, KindInt64)
	if !ok {
		return 0, false
	}
	return v.Int64()
}

// GetFloat64 is shorthand for Get with KindFloat64.
func (t Trie) GetFloat64(key string) (float64, bool) {
	v, ok := t.Get(key, KindFloat64)
	if !ok {
		return 0, false
	}
	return v.Float64()
}

// GetBool is shorthand for Get with KindBool.
func (t Trie) GetBool(key string) (bool, bool) {
	v, ok := t.Get(key, KindBool)
	if !ok {
		return false, false
	}
	return v.Bool()
}

// GetString is shorthand for Get with KindString.
func (t Trie) GetString(key string) (string, bool) {
	v, ok := t.Get(key, KindString)
	if !ok {
		return "", false
	}
	return v.StringValue()
}

// GetBytes is shorthand for Get with KindBytes.
func (t Trie) GetBytes(key string) ([]byte, bool) {
	v, ok := t.Get(key, KindBytes)
	if !ok {
		return nil, false
	}
	return v.Bytes()
}

// Put returns a new snapshot with the given value stored at the given
// key, replacing any previous value of any kind there. The receiver is
// untouched: only nodes along the key's path are copied, and every
// other subtree of the result is the same reference as in the receiver.
// The empty key addresses the root node's own value slot.
func (t Trie) Put(key string, v Value) Trie {
	value := &v
	if t.root == nil {
		return Trie{root: newPath(key, value), size: t.size + 1}
	}
	newRoot := t.root.xcopy()
	n := newRoot
	orig := t.root
	for i := 0; i < len(key); i++ {
		c := key[i]
		origChild := orig.children[c]
		if origChild == nil {
			// nothing left to copy; the rest of the key is fresh
			if n.children == nil {
				n.children = make(map[byte]*node, 1)
			}
			n.children[c] = newPath(key[i+1:], value)
			return Trie{root: newRoot, size: t.size + 1}
		}
		child := origChild.xcopy()
		n.children[c] = child
		n = child
		orig = origChild
	}
	size := t.size
	if n.value == nil {
		size++
	}
	n.value = value
	return Trie{root: newRoot, size: size}
}

// Delete returns a snapshot without the given key. Deleting an absent
// key is a no-op that returns the receiver unchanged. Ancestors along
// the path are rebuilt with the same copy discipline as Put, and nodes
// left both childless and valueless are pruned upward until a node
// retains a child or a value; deleting the last key yields the empty
// trie.
func (t Trie) Delete(key string) Trie {
	if t.root == nil {
		return t
	}
	path := make([]pathEntry, 0, len(key))
	n := t.root
	for i := 0; i < len(key); i++ {
		c := key[i]
		child := n.children[c]
		if child == nil {
			return t
		}
		path = append(path, pathEntry{n, c})
		n = child
	}
	if n.value == nil {
		return t
	}
	// The landed node keeps its children but loses its value; nil means
	// it pruned away entirely. Sharing the children map is fine, neither
	// node will ever be written again.
	var rebuilt *node
	if len(n.children) > 0 {
		rebuilt = &node{children: n.children}
	}
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		parent := p.node.xcopy()
		if rebuilt != nil {
			parent.children[p.c] = rebuilt
		} else {
			delete(parent.children, p.c)
			if len(parent.children) == 0 {
				parent.children = nil
			}
		}
		if parent.children == nil && parent.value == nil {
			rebuilt = nil
		} else {
			rebuilt = parent
		}
	}
	return Trie{root: rebuilt, size: t.size - 1}
}

// Size returns the number of keys in the snapshot.
func (t Trie) Size() uint64 {
	return t.size
}

// MakeRoot writes every node of the snapshot to the persistent store,
// content-addressed, and returns a Root identifying the version.
// Subtrees shared with already-flushed versions are deduplicated by
// address.
func (t Trie) MakeRoot(ctx context.Context, config *RemoteConfig) (*Root, error) {
	if config == nil || config.StoreImmutablePartsWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	if t.root == nil {
		return &Root{nil, 0}, nil
	}
	marshal := config.Marshal
	if marshal == nil {
		marshal = defaultMarshal
	}
	link, err := t.root.store(ctx, config.StoreImmutablePartsWith, config.NodeCache, marshal, map[*node]string{})
	if err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return &Root{&link, t.size}, nil
}

// LoadTrie loads a previously-flushed version from the persistent
// store.
func (r *Root) LoadTrie(ctx context.Context, config *RemoteConfig) (Trie, error) {
	if r.Link == nil {
		return Trie{}, nil
	}
	if config == nil || config.StoreImmutablePartsWith == nil {
		return Trie{}, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	root, err := loadNode(ctx, config, *r.Link)
	if err != nil {
		return Trie{}, fmt.Errorf("load root: %w", err)
	}
	if n := root.countEntries(); n != r.Size {
		return Trie{}, fmt.Errorf("root size %d inconsistent with %d loaded entries", r.Size, n)
	}
	return Trie{root: root, size: r.Size}, nil
}
