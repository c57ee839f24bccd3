// Package splash sequences the intro shown before the icon cloud.
//
// The sequence is a pure function of elapsed time: a title rotates through a
// fixed list, a progress counter climbs in fixed steps and clamps at 100, and
// after a fixed window the sequence completes. Completion is signalled once.
package splash

import (
	"slices"
	"sync"
	"time"
)

// Defaults.
const (
	DefaultDuration         = 3 * time.Second
	DefaultTextInterval     = 800 * time.Millisecond
	DefaultProgressInterval = 50 * time.Millisecond
	DefaultProgressStep     = 2
	DefaultSubtitle         = "Software Engineer & AI Specialist"
	DefaultMonogram         = "RA"
)

// DefaultTexts are the rotating titles.
var DefaultTexts = []string{"Welcome", "Building", "Creating", "Innovating"}

// Config controls the sequence timing and content.
type Config struct {
	Duration         time.Duration
	TextInterval     time.Duration
	ProgressInterval time.Duration
	ProgressStep     int

	Texts    []string
	Subtitle string
	Monogram string
}

// DefaultConfig returns the stock intro.
func DefaultConfig() Config {
	return Config{
		Duration:         DefaultDuration,
		TextInterval:     DefaultTextInterval,
		ProgressInterval: DefaultProgressInterval,
		ProgressStep:     DefaultProgressStep,
		Texts:            slices.Clone(DefaultTexts),
		Subtitle:         DefaultSubtitle,
		Monogram:         DefaultMonogram,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.TextInterval <= 0 {
		c.TextInterval = d.TextInterval
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = d.ProgressInterval
	}
	if c.ProgressStep <= 0 {
		c.ProgressStep = d.ProgressStep
	}
	if len(c.Texts) == 0 {
		c.Texts = d.Texts
	}
	return c
}

// State is a snapshot of the sequence.
type State struct {
	Elapsed   time.Duration
	TextIndex int
	Text      string
	Subtitle  string
	Monogram  string
	// Progress is a percentage in [0, 100].
	Progress int
	Done     bool
}

// Sequencer is safe for concurrent use.
type Sequencer struct {
	cfg  Config
	once sync.Once
	done chan struct{}

	mu      sync.Mutex
	skipped bool
	last    State
}

func New(cfg Config) *Sequencer {
	return &Sequencer{cfg: cfg.withDefaults(), done: make(chan struct{})}
}

// Advance computes the state at elapsed and completes the sequence once the
// window has passed.
func (s *Sequencer) Advance(elapsed time.Duration) State {
	if elapsed < 0 {
		elapsed = 0
	}
	c := s.cfg

	idx := int(elapsed/c.TextInterval) % len(c.Texts)
	progress := int(elapsed/c.ProgressInterval) * c.ProgressStep
	if progress > 100 {
		progress = 100
	}

	s.mu.Lock()
	done := s.skipped || elapsed >= c.Duration
	st := State{
		Elapsed:   elapsed,
		TextIndex: idx,
		Text:      c.Texts[idx],
		Subtitle:  c.Subtitle,
		Monogram:  c.Monogram,
		Progress:  progress,
		Done:      done,
	}
	s.last = st
	s.mu.Unlock()

	if done {
		s.complete()
	}
	return st
}

// Skip completes the sequence early.
func (s *Sequencer) Skip() {
	s.mu.Lock()
	s.skipped = true
	s.last.Done = true
	s.mu.Unlock()
	s.complete()
}

// Last returns the state computed by the latest Advance.
func (s *Sequencer) Last() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Done is closed when the sequence completes.
func (s *Sequencer) Done() <-chan struct{} { return s.done }

// Finished reports whether the sequence has completed.
func (s *Sequencer) Finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Sequencer) complete() {
	s.once.Do(func() { close(s.done) })
}
