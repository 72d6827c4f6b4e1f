package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages command history with file persistence. Each line of the
// file is prefixed with "E:" for statements or "C:" for commands.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path. An
// empty path keeps history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeEval}

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			entry.Line = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			entry.Line, entry.Mode = s, modeCtrl
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

// Write appends a new entry to the history with the specified mode.
// If a duplicate entry exists (same line and mode), the old one is removed.
func (h *History) Write(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Skip if same as last entry (both line and mode)
	if n := len(h.entries); n > 0 && h.entries[n-1] == (HistoryEntry{entry, mode}) {
		return len(entry), nil
	}

	idx := slices.Index(h.entries, HistoryEntry{entry, mode})
	if idx >= 0 {
		h.entries = slices.Delete(h.entries, idx, idx+1)
	}

	h.entries = append(h.entries, HistoryEntry{Line: entry, Mode: mode})

	if h.path == "" {
		return len(entry), nil
	}

	// If we removed a duplicate, rewrite the entire file
	// Otherwise, just append
	if idx >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(mode.prefix() + entry + "\n")
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	total := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(entry.Mode.prefix() + entry.Line + "\n")
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}
