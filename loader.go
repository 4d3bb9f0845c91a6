package brochure

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// LoadEvent 一次上传的解码结果
type LoadEvent struct {
	Slot    Slot
	Seq     uint64
	Name    string
	Texture *Texture
	Err     error
}

func (e LoadEvent) Failed() bool {
	return e.Err != nil
}

// Loader decodes uploads on their own goroutines. Results are delivered in
// completion order; an earlier upload for a slot is never cancelled, so a slow
// first image can land after a fast second one.
type Loader struct {
	events chan LoadEvent
	done   chan struct{}
	logger *zap.Logger

	mu     sync.Mutex
	seq    uint64
	closed bool
	wg     sync.WaitGroup
}

func NewLoader(opts ...Option) *Loader {
	o := newOptions(opts)
	return &Loader{
		events: make(chan LoadEvent, o.eventBuffer),
		done:   make(chan struct{}),
		logger: o.logger,
	}
}

func (l *Loader) Events() <-chan LoadEvent {
	return l.events
}

// Load starts decoding data for slot and returns its submission sequence
// number. It returns 0 once the loader is closed.
func (l *Loader) Load(slot Slot, name string, data []byte) uint64 {
	return l.start(slot, name, func() ([]byte, error) { return data, nil })
}

// LoadFile is Load with the bytes read from path on the decoding goroutine.
func (l *Loader) LoadFile(slot Slot, path string) uint64 {
	return l.start(slot, path, func() ([]byte, error) { return os.ReadFile(path) })
}

func (l *Loader) start(slot Slot, name string, read func() ([]byte, error)) uint64 {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	l.seq++
	seq := l.seq
	l.wg.Add(1)
	l.mu.Unlock()

	l.logger.Debug("upload started", zap.Stringer("slot", slot), zap.String("name", name), zap.Uint64("seq", seq))
	go func() {
		defer l.wg.Done()
		ev := LoadEvent{Slot: slot, Seq: seq, Name: name}
		data, err := read()
		if err == nil {
			ev.Texture, err = DecodeTexture(name, data)
		}
		if err != nil {
			ev.Err = &AssetLoadError{Slot: slot, Name: name, Err: err}
		}
		select {
		case l.events <- ev:
		case <-l.done:
		}
	}()
	return seq
}

// Close stops accepting uploads, drops results nobody is waiting for and
// closes the event channel.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
	close(l.events)
}
