package store

import (
	"fmt"
	"sync"
)

// Key layout:
//
//	book:seq:<seq>             -> JSON record (book + seq)
//	book:id:<id>               -> seq
//	idx:genre:<genreID>:<seq>  -> empty
//
// seq is the zero-padded catalog position, so lexicographic key order is catalog order.
const (
	bookPrefix      = "book:"
	bookSeqPrefix   = "book:seq:"
	bookByIDPrefix  = "book:id:"
	indexPrefix     = "idx:"
	genreIndexName  = "genre"
	seqWidth        = 10
)

// keyPool provides reusable byte slices for building database keys.
var keyPool = sync.Pool{
	New: func() any {
		// Covers prefix + "idx:" + index name + genre id + padded seq.
		return make([]byte, 0, 128)
	},
}

// formatSeq renders a catalog position as a fixed-width key segment.
func formatSeq(seq int) string {
	return fmt.Sprintf("%0*d", seqWidth, seq)
}

// buildKey constructs a database key from prefix and suffix using a pooled buffer.
// The returned slice is valid until releaseKey is called. Pooled keys are for reads
// only: a WriteBatch keeps references to its keys until flushed.
//
// Usage:
//
//	key := buildKey(bookSeqPrefix, formatSeq(seq))
//	defer releaseKey(key)
//	item, err := txn.Get(key)
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// buildIndexKey constructs "idx:<indexName>:<value>:<seq>". An empty seq yields the
// prefix that scans every entry for value.
func buildIndexKey(indexName, value, seq string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, indexPrefix...)
	buf = append(buf, indexName...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	buf = append(buf, ':')
	buf = append(buf, seq...)
	return buf
}

// releaseKey returns a key buffer to the pool for reuse.
// After calling this, the key slice must not be used.
func releaseKey(key []byte) {
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}
