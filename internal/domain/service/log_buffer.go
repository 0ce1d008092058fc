package service

import (
	"log/slog"
	"time"
)

// LogEntry is one captured log record.
type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// LogBuffer exposes the most recent log records kept in memory.
type LogBuffer interface {
	// Entries returns up to limit records at or above minLevel, newest first.
	Entries(minLevel slog.Level, limit int) []LogEntry
}
