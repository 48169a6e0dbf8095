package ptrie

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/minio/blake2b-simd"
)

// stringNodeT is the wire form of a node: the value slot plus a mapping
// from hex-encoded edge byte to the child's content address.
type stringNodeT = struct {
	Value    *Value            `json:"v,omitempty"`
	Children map[string]string `json:"c,omitempty"`
}

var (
	defaultUnmarshal = json.Unmarshal
	defaultMarshal   = json.Marshal
)

// store flushes the subtree rooted at this node, children first, and
// returns the node's content address. stored memoizes nodes already
// flushed in this call, so subtrees shared within one snapshot are
// visited once; the cache short-circuits re-stores across snapshots.
func (n *node) store(ctx context.Context, persist Persist, cache NodeCache, marshal func(interface{}) ([]byte, error), stored map[*node]string) (string, error) {
	if link, ok := stored[n]; ok {
		return link, nil
	}
	wire := stringNodeT{Value: n.value}
	if len(n.children) > 0 {
		wire.Children = make(map[string]string, len(n.children))
		for c, child := range n.children {
			childLink, err := child.store(ctx, persist, cache, marshal, stored)
			if err != nil {
				return "", fmt.Errorf("store child %02x: %w", c, err)
			}
			wire.Children[fmt.Sprintf("%02x", c)] = childLink
		}
	}
	encoded, err := marshal(wire)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	hashBytes := blake2b.Sum256(encoded)
	hash := base64.RawURLEncoding.EncodeToString(hashBytes[:])
	stored[n] = hash
	if cache != nil && cache.Contains(hash) {
		return hash, nil
	}
	err = persist.Store(ctx, hash, encoded)
	if err != nil {
		return "", fmt.Errorf("persist store: %w", err)
	}
	if cache != nil {
		cache.Add(hash, n)
	}
	return hash, nil
}

// loadNode fetches and reconstructs the subtree at the given content
// address. A link that appears under several parents resolves to the
// same in-memory node via the cache, which is safe since nodes are
// immutable.
func loadNode(ctx context.Context, config *RemoteConfig, link string) (*node, error) {
	if config.NodeCache != nil {
		if cached, ok := config.NodeCache.Get(link); ok {
			return cached.(*node), nil
		}
	}
	nodeBytes, err := config.StoreImmutablePartsWith.Load(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("persist load %s: %w", link, err)
	}
	unmarshal := config.Unmarshal
	if unmarshal == nil {
		unmarshal = defaultUnmarshal
	}
	var wire stringNodeT
	err = unmarshal(nodeBytes, &wire)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", link, err)
	}
	n := node{value: wire.Value}
	if len(wire.Children) > 0 {
		n.children = make(map[byte]*node, len(wire.Children))
		for edge, childLink := range wire.Children {
			c, err := strconv.ParseUint(edge, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("bad edge %q in %s: %w", edge, link, err)
			}
			child, err := loadNode(ctx, config, childLink)
			if err != nil {
				return nil, err
			}
			n.children[byte(c)] = child
		}
	}
	if n.value == nil && n.children == nil {
		return nil, fmt.Errorf("node %s is childless and valueless", link)
	}
	if config.NodeCache != nil {
		config.NodeCache.Add(link, &n)
	}
	return &n, nil
}
