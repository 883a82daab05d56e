package condtable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const memoSize = 16

// memo caches header trees and totals. Both are pure functions of their
// inputs, so a fingerprint of the inputs is a safe key.
type memo struct {
	headers *lru.Cache[uint64, HeaderTree]
	totals  *lru.Cache[uint64, Totals]
}

func newMemo() *memo {
	headers, _ := lru.New[uint64, HeaderTree](memoSize)
	totals, _ := lru.New[uint64, Totals](memoSize)
	return &memo{headers: headers, totals: totals}
}

func (m *memo) headerTree(columns []Column, groups []Group) HeaderTree {
	key := headerFingerprint(columns, groups)
	if tree, ok := m.headers.Get(key); ok {
		return tree
	}
	tree := BuildHeaderTree(columns, groups)
	m.headers.Add(key, tree)
	return tree
}

// aggregate caches totals by row-set generation: callers bump generation
// whenever the rows change.
func (m *memo) aggregate(generation uint64, rows []Row, columns []Column) Totals {
	key := totalsFingerprint(generation, columns)
	if totals, ok := m.totals.Get(key); ok {
		return totals
	}
	totals := Aggregate(rows, columns)
	m.totals.Add(key, totals)
	return totals
}

func headerFingerprint(columns []Column, groups []Group) uint64 {
	d := xxhash.New()
	for _, c := range columns {
		writeField(d, c.Key)
		writeField(d, c.Label)
	}
	d.Write([]byte{0xff})
	for _, g := range groups {
		writeField(d, g.Label)
		for _, child := range g.Children {
			writeField(d, child.ColumnKey)
		}
		d.Write([]byte{0xfe})
	}
	return d.Sum64()
}

func totalsFingerprint(generation uint64, columns []Column) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], generation)
	d.Write(buf[:])
	for _, c := range columns {
		writeField(d, c.Key)
	}
	return d.Sum64()
}

// writeField writes s with a terminator so adjacent fields cannot run
// together.
func writeField(d *xxhash.Digest, s string) {
	d.WriteString(s)
	d.Write([]byte{0})
}
