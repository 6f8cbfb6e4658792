// Package merkle implements the fixed-depth binary hash tree used to prove
// transaction inclusion in childchain blocks.  The tree layout matches the
// rootchain's on-chain verifier: leaf nodes are keccak256 hashes of the
// encoded transactions, unsupplied leaves are padded with precomputed empty
// hashes and parents are keccak256(left || right).
package merkle

import (
	"bytes"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
)

// DefaultDepth supports up to 2^16 transactions per childchain block.
const DefaultDepth = 16

// emptyHashes[l] pads a missing node at level l, derived by repeated
// self-hashing of the empty byte string.
var emptyHashes [DefaultDepth + 1]ethCommon.Hash

func init() {
	h := crypto.Keccak256Hash(nil)
	for i := 0; i <= DefaultDepth; i++ {
		emptyHashes[i] = h
		h = crypto.Keccak256Hash(h.Bytes())
	}
}

// Tree is a fixed-depth merkle tree over an ordered sequence of leaf byte
// strings.  It is immutable once built.
type Tree struct {
	depth  int
	leaves [][]byte
	// levels[0] holds the hashed leaves, levels[depth] the root
	levels [][]ethCommon.Hash
}

// New builds a tree of the given depth.  A depth of 0 selects DefaultDepth.
func New(leaves [][]byte, depth int) (*Tree, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if depth > DefaultDepth {
		return nil, tracerr.Wrap(&common.ProofError{
			Reason: "tree depth exceeds the supported maximum"})
	}
	if len(leaves) > 1<<depth {
		return nil, tracerr.Wrap(&common.ProofError{
			Reason: "more leaves than the tree depth can hold"})
	}
	t := &Tree{
		depth:  depth,
		leaves: leaves,
		levels: make([][]ethCommon.Hash, depth+1),
	}
	level := make([]ethCommon.Hash, len(leaves))
	for i, leaf := range leaves {
		level[i] = crypto.Keccak256Hash(leaf)
	}
	t.levels[0] = level
	for l := 0; l < depth; l++ {
		cur := t.levels[l]
		next := make([]ethCommon.Hash, (len(cur)+1)/2)
		for i := 0; i < len(next); i++ {
			left := t.node(l, 2*i)
			right := t.node(l, 2*i+1)
			next[i] = crypto.Keccak256Hash(left.Bytes(), right.Bytes())
		}
		t.levels[l+1] = next
	}
	return t, nil
}

// node returns the hash at (level, index), falling back to the empty hash
// for indexes beyond the populated range.
func (t *Tree) node(level, index int) ethCommon.Hash {
	if index < len(t.levels[level]) {
		return t.levels[level][index]
	}
	return emptyHashes[level]
}

// Root returns the tree root.  An empty tree still has a well-defined root
// made of padding hashes alone.
func (t *Tree) Root() ethCommon.Hash {
	return t.node(t.depth, 0)
}

// Depth returns the tree depth.
func (t *Tree) Depth() int {
	return t.depth
}

// InclusionProof returns the sibling hashes on the path from the given leaf
// to the root, in leaf-to-root order.  The proof has exactly Depth entries.
// Fails when the leaf is not present in the tree.
func (t *Tree) InclusionProof(leaf []byte) ([]ethCommon.Hash, error) {
	index := -1
	for i, l := range t.leaves {
		if bytes.Equal(l, leaf) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, tracerr.Wrap(&common.ProofError{Reason: "leaf not present in tree"})
	}
	return t.InclusionProofAt(index)
}

// InclusionProofAt is InclusionProof for a known leaf index.
func (t *Tree) InclusionProofAt(index int) ([]ethCommon.Hash, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, tracerr.Wrap(&common.ProofError{Reason: "leaf index out of range"})
	}
	proof := make([]ethCommon.Hash, t.depth)
	for l := 0; l < t.depth; l++ {
		proof[l] = t.node(l, index^1)
		index >>= 1
	}
	return proof, nil
}

// Verify recomputes the root from a leaf value, its index and an inclusion
// proof, and compares it against the expected root.
func Verify(leaf []byte, index int, proof []ethCommon.Hash, root ethCommon.Hash) bool {
	h := crypto.Keccak256Hash(leaf)
	for _, sibling := range proof {
		if index&1 == 0 {
			h = crypto.Keccak256Hash(h.Bytes(), sibling.Bytes())
		} else {
			h = crypto.Keccak256Hash(sibling.Bytes(), h.Bytes())
		}
		index >>= 1
	}
	return h == root
}

// ProofBytes flattens an inclusion proof into the concatenated byte form
// the rootchain contracts consume.
func ProofBytes(proof []ethCommon.Hash) []byte {
	b := make([]byte, 0, len(proof)*ethCommon.HashLength)
	for _, h := range proof {
		b = append(b, h.Bytes()...)
	}
	return b
}
