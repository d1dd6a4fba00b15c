// Package dedupe tracks submission content digests so identical files are
// scored once per run.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultMaxSize bounds the number of remembered digests.
const DefaultMaxSize = 50000

// Deduper records seen submission digests.
type Deduper interface {
	// SeenAndRecord atomically checks if digest was seen and records it if not.
	// Returns the submission id that first recorded the digest and true when
	// the digest was already present.
	SeenAndRecord(ctx context.Context, digest, submissionID string) (string, bool)

	// Unrecord forgets a digest so the same content can be queued again,
	// e.g. after the queue rejected the job.
	Unrecord(ctx context.Context, digest string)

	Size() int64
}

// node is one remembered digest in insertion order.
type node struct {
	digest     string
	submission string
	prev, next *node
}

func (n *node) reset() {
	n.digest = ""
	n.submission = ""
	n.prev = nil
	n.next = nil
}

// inMemoryDeduper keeps digests in a map plus an insertion-ordered list.
// When bounded, the oldest digest is evicted first.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]*node
	head     *node // newest
	tail     *node // oldest
	maxSize  int   // <= 0 means unbounded
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: DefaultMaxSize,
		seen:    make(map[string]*node),
		nodePool: sync.Pool{
			New: func() any { return &node{} },
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, digest, submissionID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.seen[digest]; ok {
		return n.submission, true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	n := d.nodePool.Get().(*node)
	n.digest = digest
	n.submission = submissionID
	n.next = d.head
	if d.head != nil {
		d.head.prev = n
	}
	d.head = n
	if d.tail == nil {
		d.tail = n
	}
	d.seen[digest] = n
	d.size.Add(1)
	return submissionID, false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, digest string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.seen[digest]; ok {
		d.remove(n)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// evictOldest drops the tail. Must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	if d.tail != nil {
		d.remove(d.tail)
	}
}

// remove unlinks n and returns it to the pool. Must be called with d.mu held.
func (d *inMemoryDeduper) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		d.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		d.tail = n.prev
	}
	delete(d.seen, n.digest)
	n.reset()
	d.nodePool.Put(n)
	d.size.Add(-1)
}
