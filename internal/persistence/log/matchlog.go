// Package log records the domain-event stream of a match as zstd-compressed
// JSONL. The record is append-only; cmd/replay decodes it back into a
// readable match transcript.
package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"gridtactics.dev/internal/events"
)

// Record is one logged event. Seq orders records within a match.
type Record struct {
	Seq     uint64          `json:"seq"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MatchWriter appends records to a single per-match file.
type MatchWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	seq uint64
}

func NewMatchWriter(path string) (*MatchWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MatchWriter{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

// Append writes one event line. Safe for concurrent use, though the engine
// emits from a single goroutine.
func (w *MatchWriter) Append(event string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return fmt.Errorf("match log closed")
	}

	w.seq++
	rec := Record{Seq: w.seq, Event: event}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		rec.Payload = raw
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *MatchWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	var firstErr error
	if err := w.w.Flush(); err != nil {
		firstErr = err
	}
	if err := w.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	w.f = nil
	return firstErr
}

// Recorder ties a MatchWriter to an event bus.
type Recorder struct {
	subs []*events.Subscription
}

// Attach subscribes the writer to every named event. Detach cancels exactly
// those subscriptions, so re-attaching cannot stack duplicates.
func Attach(bus *events.Bus, names []string, w *MatchWriter) *Recorder {
	r := &Recorder{}
	for _, name := range names {
		name := name
		r.subs = append(r.subs, bus.On(name, func(payload any) {
			// A full disk should not take the game down with it.
			_ = w.Append(name, payload)
		}))
	}
	return r
}

func (r *Recorder) Detach() {
	for _, s := range r.subs {
		s.Cancel()
	}
	r.subs = nil
}

// ReadAll decodes a match record back into memory.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Record
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return out, fmt.Errorf("corrupt match log line %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}
