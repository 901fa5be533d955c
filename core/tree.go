package core

import (
	"bytes"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Leaf is any value that can be hashed into the tree by streaming its bytes.
type Leaf interface {
	WriteTo(w io.Writer) (n int64, err error)
}

type MerklePath [][]byte

// MerkleTree commits to an ordered list of leaves with blake2b-256. A level with
// an odd number of nodes duplicates its last hash, so every path carries a full
// set of siblings.
type MerkleTree struct {
	levels [][][]byte // levels[0] holds the leaf hashes, the last level the root
}

func newTreeHasher() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

func hashLeaf(leaf Leaf) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := leaf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write leaf content: %w", err)
	}

	h := newTreeHasher()
	h.Write(buf.Bytes())
	return h.Sum(nil), nil
}

func hashNodes(left, right []byte) []byte {
	h := newTreeHasher()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

func NewMerkleTree(leaves []Leaf) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("cannot build a tree with no leaves")
	}

	level := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		var err error
		if level[i], err = hashLeaf(leaf); err != nil {
			return nil, err
		}
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		next := make([][]byte, (len(level)+1)/2)
		for i := range next {
			left := level[2*i]
			right := left
			if 2*i+1 < len(level) {
				right = level[2*i+1]
			}
			next[i] = hashNodes(left, right)
		}
		levels = append(levels, next)
		level = next
	}

	return &MerkleTree{levels: levels}, nil
}

func (m *MerkleTree) Root() []byte {
	root := m.levels[len(m.levels)-1][0]
	out := make([]byte, len(root))
	copy(out, root)
	return out
}

// Path returns the sibling hashes from the leaf at index up to the root.
func (m *MerkleTree) Path(index int) (MerklePath, error) {
	if index < 0 || index >= len(m.levels[0]) {
		return nil, fmt.Errorf("index %d out of bounds for %d leaves", index, len(m.levels[0]))
	}

	path := make(MerklePath, 0, len(m.levels)-1)
	for _, level := range m.levels[:len(m.levels)-1] {
		sibling := index ^ 1
		if sibling >= len(level) {
			sibling = index // odd level end: the last hash is its own sibling
		}
		path = append(path, level[sibling])
		index /= 2
	}

	return path, nil
}

// VerifyPath checks that the leaf at the given index hashes up to root.
func VerifyPath(leaf Leaf, path MerklePath, root []byte, index int) (bool, error) {
	if index < 0 {
		return false, fmt.Errorf("index must be non-negative")
	}
	if len(root) == 0 {
		return false, fmt.Errorf("root hash cannot be empty")
	}

	current, err := hashLeaf(leaf)
	if err != nil {
		return false, err
	}

	for _, sibling := range path {
		if index%2 == 0 {
			current = hashNodes(current, sibling)
		} else {
			current = hashNodes(sibling, current)
		}
		index /= 2
	}

	return bytes.Equal(current, root), nil
}
