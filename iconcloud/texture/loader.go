package texture

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrent bounds in-flight fetches per batch.
const DefaultMaxConcurrent = 8

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	Fetcher  Fetcher
	Uploader Uploader
	Decode   DecodeOptions

	// MaxConcurrent bounds in-flight fetches of one batch. Zero means
	// DefaultMaxConcurrent.
	MaxConcurrent int

	Log log.FieldLogger
}

// Stats counts loader activity since creation.
type Stats struct {
	Batches  uint64
	Settled  uint64
	Failed   uint64
	Stale    uint64
	Disposed uint64
}

// Loader runs texture batches. It is safe for concurrent use.
type Loader struct {
	fetcher  Fetcher
	uploader Uploader
	decode   DecodeOptions
	limit    int64
	log      log.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	gen    uint64
	active *batch
	closed bool

	committed atomic.Pointer[Set]

	batches  atomic.Uint64
	settled  atomic.Uint64
	failed   atomic.Uint64
	stale    atomic.Uint64
	disposed atomic.Uint64
}

type batch struct {
	gen      uint64
	locators []string
	acc      []Entry
	count    int
	state    State
	released bool
	done     chan struct{}

	// sem bounds this batch's fetches so stale work never holds its slots.
	sem *semaphore.Weighted
}

// NewLoader returns a loader with no active batch.
func NewLoader(cfg LoaderConfig) (*Loader, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("texture: loader: nil fetcher")
	}
	if cfg.Uploader == nil {
		return nil, fmt.Errorf("texture: loader: nil uploader")
	}
	n := cfg.MaxConcurrent
	if n <= 0 {
		n = DefaultMaxConcurrent
	}
	l := cfg.Log
	if l == nil {
		l = log.StandardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ld := &Loader{
		fetcher:  cfg.Fetcher,
		uploader: cfg.Uploader,
		decode:   cfg.Decode,
		limit:    int64(n),
		log:      l.WithField("component", "texture"),
		ctx:      ctx,
		cancel:   cancel,
	}
	ld.committed.Store(emptySet)
	return ld, nil
}

// Load starts a batch for locators and returns its generation.
//
// If locators equal the active batch's list no new batch is started. Otherwise
// the active batch is superseded: its textures are disposed, the published set
// becomes empty, and its late results will be discarded.
func (l *Loader) Load(locators []string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}
	if l.active != nil && slices.Equal(l.active.locators, locators) {
		return l.active.gen, nil
	}

	if l.active != nil {
		l.releaseLocked(l.active)
	}

	l.gen++
	b := &batch{
		gen:      l.gen,
		locators: slices.Clone(locators),
		acc:      make([]Entry, 0, len(locators)),
		done:     make(chan struct{}),
		sem:      semaphore.NewWeighted(l.limit),
	}
	l.active = b
	l.batches.Add(1)
	l.committed.Store(&Set{gen: b.gen, total: len(b.locators)})

	l.log.WithFields(log.Fields{"batch": b.gen, "count": len(b.locators)}).Debug("batch started")

	if len(b.locators) == 0 {
		l.commitLocked(b)
		return b.gen, nil
	}

	for i, loc := range b.locators {
		l.wg.Add(1)
		go l.fetch(b, i, loc)
	}
	return b.gen, nil
}

func (l *Loader) fetch(b *batch, index int, locator string) {
	defer l.wg.Done()

	if err := b.sem.Acquire(l.ctx, 1); err != nil {
		l.settle(b, index, locator, nil, err)
		return
	}
	if !l.isCurrent(b) {
		b.sem.Release(1)
		l.settle(b, index, locator, nil, nil)
		return
	}
	tex, err := l.acquire(locator)
	b.sem.Release(1)

	l.settle(b, index, locator, tex, err)
}

// isCurrent reports whether b is still the active, unreleased batch.
func (l *Loader) isCurrent(b *batch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return b.gen == l.gen && !b.released
}

func (l *Loader) acquire(locator string) (Texture, error) {
	data, err := l.fetcher.Fetch(l.ctx, locator)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, l.decode)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", locator, err)
	}
	tex, err := l.uploader.Upload(img, ColorSpaceSRGB)
	if err != nil {
		return nil, fmt.Errorf("texture: upload %s: %w", locator, err)
	}
	return tex, nil
}

func (l *Loader) settle(b *batch, index int, locator string, tex Texture, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.log.WithFields(log.Fields{"batch": b.gen, "index": index, "locator": locator})

	if b.gen != l.gen || b.released {
		l.stale.Add(1)
		if tex != nil {
			l.disposeLocked(tex)
		}
		entry.Debug("stale result discarded")
		return
	}

	if err != nil {
		l.failed.Add(1)
		entry.WithError(err).Warn("texture load failed")
	} else {
		b.acc = append(b.acc, Entry{Index: index, Texture: tex})
	}
	l.settled.Add(1)
	b.count++

	if b.count == len(b.locators) {
		l.commitLocked(b)
		return
	}
	b.state = StateLoading
}

func (l *Loader) commitLocked(b *batch) {
	b.state = StateCommitted
	l.committed.Store(&Set{
		gen:     b.gen,
		total:   len(b.locators),
		entries: slices.Clone(b.acc),
	})
	close(b.done)

	l.log.WithFields(log.Fields{
		"batch":  b.gen,
		"loaded": len(b.acc),
		"total":  len(b.locators),
	}).Info("batch committed")
}

func (l *Loader) releaseLocked(b *batch) {
	if b.released {
		return
	}
	b.released = true
	for _, e := range b.acc {
		l.disposeLocked(e.Texture)
	}
	b.acc = nil
	if b.state != StateCommitted {
		close(b.done)
	}
	l.log.WithField("batch", b.gen).Debug("batch released")
}

func (l *Loader) disposeLocked(t Texture) {
	t.Dispose()
	l.disposed.Add(1)
}

// Committed returns the published set of the active batch. It is empty until
// the batch commits.
func (l *Loader) Committed() *Set {
	return l.committed.Load()
}

// State returns the state of the active batch.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		return StateEmpty
	}
	return l.active.state
}

// Generation returns the active batch generation, zero before the first Load.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Ready returns a channel closed when the active batch commits or is released.
// Before the first Load it returns a closed channel.
func (l *Loader) Ready() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return l.active.done
}

// Wait blocks until the active batch commits or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns activity counters.
func (l *Loader) Stats() Stats {
	return Stats{
		Batches:  l.batches.Load(),
		Settled:  l.settled.Load(),
		Failed:   l.failed.Load(),
		Stale:    l.stale.Load(),
		Disposed: l.disposed.Load(),
	}
}

// Close releases the active batch and waits for in-flight fetches to return.
// Results that arrive during Close are disposed. Close is idempotent.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	if l.active != nil {
		l.releaseLocked(l.active)
	}
	l.committed.Store(emptySet)
	l.mu.Unlock()

	l.cancel()
	l.wg.Wait()
	return nil
}
