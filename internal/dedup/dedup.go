// Package dedup merges duplicate observations of the same Mode S frame
// received from multiple sensors within a short window (spec §4.5),
// grounded on jet1090's deduplicate_messages: a byte-keyed cache plus a
// min-heap of expiry timestamps, so a frame's metadata accumulates across
// every sensor that reported it before it's emitted once, merged.
package dedup

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090go/internal/ingest"
)

// Merged is a deduplicated frame carrying every sensor's metadata that
// observed it within the window.
type Merged struct {
	Frame     []byte
	Timestamp time.Time
	Sensors   []ingest.SensorMetadata
}

type expiryEntry struct {
	expiresAt time.Time
	key       string
}

type expiryHeap []expiryEntry

func (h expiryHeap) Len() int            { return len(h) }
func (h expiryHeap) Less(i, j int) bool  { return h[i].expiresAt.Before(h[j].expiresAt) }
func (h expiryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x interface{}) { *h = append(*h, x.(expiryEntry)) }
func (h *expiryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Deduplicator buffers RawFrames for Window before emitting a Merged
// record, in frame-arrival order.
type Deduplicator struct {
	Window time.Duration
	Logger *logrus.Logger

	mu     sync.Mutex
	cache  map[string][]ingest.SensorMetadata
	frames map[string][]byte
	heap   expiryHeap
}

// NewDeduplicator creates a Deduplicator with the given window.
func NewDeduplicator(window time.Duration, logger *logrus.Logger) *Deduplicator {
	return &Deduplicator{
		Window: window,
		Logger: logger,
		cache:  make(map[string][]ingest.SensorMetadata),
		frames: make(map[string][]byte),
	}
}

// Run drains in, merges duplicates, and emits onto out until ctx is
// canceled or in is closed.
func (d *Deduplicator) Run(ctx context.Context, in <-chan ingest.RawFrame, out chan<- Merged) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-in:
			if !ok {
				return
			}
			d.ingest(frame, out)
		}
	}
}

func (d *Deduplicator) ingest(rf ingest.RawFrame, out chan<- Merged) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := string(rf.Frame)
	now := rf.Timestamp

	first := len(d.cache[key]) == 0
	d.cache[key] = append(d.cache[key], rf.Metadata)
	if first {
		d.frames[key] = rf.Frame
		heap.Push(&d.heap, expiryEntry{expiresAt: now.Add(d.Window), key: key})
	}

	for d.heap.Len() > 0 {
		top := d.heap[0]
		if top.expiresAt.After(now) {
			break
		}
		heap.Pop(&d.heap)

		metadata, ok := d.cache[top.key]
		if !ok {
			continue // already emitted by a later expiry entry for the same key
		}
		frame := d.frames[top.key]
		delete(d.cache, top.key)
		delete(d.frames, top.key)

		merged := Merged{Frame: frame, Timestamp: now, Sensors: metadata}
		select {
		case out <- merged:
		default:
			if d.Logger != nil {
				d.Logger.WithField("frame_len", len(frame)).Debug("dropped merged frame: downstream full")
			}
		}
	}
}
