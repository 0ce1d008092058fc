package logs

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/domain/service"
)

const minBufferCapacity = 16

type bufferedRecord struct {
	level slog.Level
	entry service.LogEntry
}

// RingBuffer keeps the most recent log records in a fixed-size circular slice.
// Once full, each new record overwrites the oldest one.
type RingBuffer struct {
	mu      sync.Mutex
	records []bufferedRecord
	next    int
	full    bool
}

var _ service.LogBuffer = (*RingBuffer)(nil)

// NewRingBuffer creates a buffer holding up to capacity records.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < minBufferCapacity {
		capacity = minBufferCapacity
	}

	return &RingBuffer{records: make([]bufferedRecord, capacity)}
}

func (b *RingBuffer) add(rec bufferedRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[b.next] = rec
	b.next = (b.next + 1) % len(b.records)
	if b.next == 0 {
		b.full = true
	}
}

// Len returns the number of records held.
func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.full {
		return len(b.records)
	}

	return b.next
}

// Cap returns the buffer capacity.
func (b *RingBuffer) Cap() int {
	return len(b.records)
}

// Entries returns up to limit records at or above minLevel, newest first.
// A non-positive limit returns every matching record.
func (b *RingBuffer) Entries(minLevel slog.Level, limit int) []service.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := b.next
	if b.full {
		size = len(b.records)
	}

	entries := make([]service.LogEntry, 0, min(size, max(limit, 0)))
	for i := 1; i <= size; i++ {
		idx := (b.next - i + len(b.records)) % len(b.records)
		rec := b.records[idx]
		if rec.level < minLevel {
			continue
		}
		entries = append(entries, rec.entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}

	return entries
}

// bufferHandler is an slog.Handler that writes into a RingBuffer.
type bufferHandler struct {
	buffer *RingBuffer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewBufferHandler returns a handler storing records at or above level in buffer.
func NewBufferHandler(buffer *RingBuffer, level slog.Leveler) slog.Handler {
	return &bufferHandler{buffer: buffer, level: level}
}

func (h *bufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bufferHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		addAttr(attrs, nil, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		addAttr(attrs, h.groups, attr)

		return true
	})
	if len(attrs) == 0 {
		attrs = nil
	}

	h.buffer.add(bufferedRecord{
		level: record.Level,
		entry: service.LogEntry{
			Time:    record.Time,
			Level:   record.Level.String(),
			Message: record.Message,
			Attrs:   attrs,
		},
	})

	return nil
}

func (h *bufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, prefixAttr(h.groups, attr))
	}

	return &next
}

func (h *bufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.groups = append(append([]string{}, h.groups...), name)

	return &next
}

func prefixAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return attr
	}

	key := attr.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	return slog.Attr{Key: key, Value: attr.Value}
}

func addAttr(dst map[string]any, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}
		for _, child := range attr.Value.Group() {
			addAttr(dst, nested, child)
		}

		return
	}

	attr = prefixAttr(groups, attr)
	value := attr.Value.Any()
	if err, ok := value.(error); ok {
		value = err.Error()
	}
	dst[attr.Key] = value
}
