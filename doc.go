/*
Package ptrie provides an immutable, versioned trie mapping string
keys to typed values.  Put and Delete never modify the snapshot they
are called on; they return a new snapshot whose root was rebuilt by
copying only the nodes along the affected key's path, sharing every
other subtree with the parent version.  Old versions stay valid and
cheap: deriving a snapshot costs O(key length), not O(size).

Uses

- Keeping many live versions of a key/value namespace

- Efficient copy-on-write alternative to cloning a Go builtin map

- Content-addressed storage of versions via MakeRoot/LoadTrie

Values

The value slot is a closed tagged union (Kind + Value) rather than an
open interface, so retrieval is by kind: Get asks for a Kind and a
stored value of any other kind reads as absent, never as a fault.

Concurrency

Because nodes are immutable once a snapshot is returned, any number of
goroutines can Get against any snapshots, including ones that other
goroutines are concurrently deriving new snapshots from.  What the
package does not arbitrate is which derived snapshot becomes "the"
current version of a handle shared between writers; publish a shared
current snapshot with a single writer or an atomic swap of your own.

Inspiration

The immutable data types in Clojure, Haskell, ML and other functional
languages really do make it easier to "reason about" systems; easier
to test, provide a foundation to build more quickly on.  The node
persistence follows the content-addressing convention of Merkle
structures: equal addresses indicate equal subtrees, so identical
subtrees are stored once no matter how many versions reference them.
*/
package ptrie
