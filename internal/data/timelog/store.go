package timelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/cache"
	"github.com/penwyp/go-timelog/internal/data/parser"
	"github.com/penwyp/go-timelog/internal/util"
)

// Store reads and appends the timelog file. Every operation opens and closes the file.
type Store struct {
	path   string
	parser *parser.Parser
	cache  *cache.EntryCache
}

// NewStore creates a store for the log at path.
func NewStore(path string, p *parser.Parser) *Store {
	if p == nil {
		p = parser.NewParser(nil)
	}
	return &Store{
		path:   path,
		parser: p,
		cache:  cache.NewEntryCache(),
	}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Entries returns every valid entry in file order. A missing log file is returned as an error
// wrapping fs.ErrNotExist.
func (s *Store) Entries() ([]model.Entry, error) {
	if cached := s.cache.Get(s.path); cached.Found {
		return cached.Entries, nil
	}

	state, err := cache.ReadFileState(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timelog: %w", err)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timelog: %w", err)
	}
	defer file.Close()

	result, err := s.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timelog %s: %w", s.path, err)
	}

	if result.Skipped > 0 {
		util.LogDebug(fmt.Sprintf("Parsed %s: %d lines, %d entries, %d skipped",
			s.path, result.Lines, len(result.Entries), result.Skipped))
	}

	s.cache.Set(s.path, state, result.Entries)
	return result.Entries, nil
}

// Units returns entries grouped so that each marker travels with the line after it.
func (s *Store) Units() ([]model.Unit, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return GroupUnits(entries), nil
}

// GroupUnits merges markers with the following entry. Trailing markers form their own unit.
func GroupUnits(entries []model.Entry) []model.Unit {
	var units []model.Unit
	var pending []model.Entry

	for _, entry := range entries {
		if entry.Marker {
			pending = append(pending, entry)
			continue
		}
		unit := model.Unit{Entries: append(pending, entry)}
		units = append(units, unit)
		pending = nil
	}
	if len(pending) > 0 {
		units = append(units, model.Unit{Entries: pending})
	}
	return units
}

// Append writes body stamped with at and returns the written line. Markers start a new
// visual block, so they are preceded by a blank line.
func (s *Store) Append(body string, at time.Time) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("refusing to append an empty entry")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return "", fmt.Errorf("failed to create timelog directory: %w", err)
	}

	line := parser.FormatLine(at, body)
	msg := line + "\n"
	if parser.IsMarker(body) {
		msg = "\n" + msg
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open timelog for append: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(msg); err != nil {
		return "", fmt.Errorf("failed to append to timelog: %w", err)
	}

	s.cache.Invalidate(s.path)
	util.LogDebug("Appended entry", util.Field{Key: "line", Value: line})
	return line, nil
}

// Search scans history newest first for entries whose line contains term (case-insensitive),
// skipping markers and repeated bodies. Matches are returned oldest first. limit <= 0 means no
// limit.
func (s *Store) Search(term string, limit int) ([]model.Entry, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	seen := make(map[string]struct{})
	var matches []model.Entry

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if needle != "" && !strings.Contains(strings.ToLower(entry.Raw), needle) {
			continue
		}
		if entry.Marker {
			continue
		}
		if _, dup := seen[entry.Body]; dup {
			continue
		}

		seen[entry.Body] = struct{}{}
		matches = append(matches, entry)
		if limit > 0 && len(matches) == limit {
			break
		}
	}

	reverse(matches)
	return matches, nil
}

// Tail returns the entries of the last limit units, oldest first.
func (s *Store) Tail(limit int) ([]model.Entry, error) {
	units, err := s.Units()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(units) > limit {
		units = units[len(units)-limit:]
	}

	var out []model.Entry
	for _, unit := range units {
		out = append(out, unit.Entries...)
	}
	return out, nil
}

func reverse(entries []model.Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
