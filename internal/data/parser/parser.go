package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-timelog/internal/core/constants"
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/util"
)

// ErrMalformedLine is returned for lines without a parsable "YYYY-MM-DD HH:MM" prefix.
var ErrMalformedLine = errors.New("malformed timelog line")

// Parser turns timelog lines into entries, interpreting timestamps in its location.
type Parser struct {
	location *time.Location
}

// ParseResult holds the entries of one read plus how many lines were skipped.
type ParseResult struct {
	Entries []model.Entry
	Lines   int
	Skipped int
}

// NewParser creates a Parser. A nil location means time.Local.
func NewParser(location *time.Location) *Parser {
	if location == nil {
		location = time.Local
	}
	return &Parser{location: location}
}

// ParseLine parses a single line. Surrounding whitespace is ignored.
func (p *Parser) ParseLine(line string) (model.Entry, error) {
	line = strings.TrimSpace(line)
	if len(line) < constants.LineTimeLength {
		return model.Entry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	ts, err := time.ParseInLocation(constants.LineTimeLayout, line[:constants.LineTimeLength], p.location)
	if err != nil {
		return model.Entry{}, fmt.Errorf("%w: %q: %v", ErrMalformedLine, line, err)
	}

	body := strings.TrimSpace(strings.TrimPrefix(line[constants.LineTimeLength:], ":"))
	entry := model.Entry{
		Time:   ts,
		Raw:    line,
		Body:   body,
		Detail: body,
		Marker: IsMarker(line),
	}

	if entry.Marker {
		return entry, nil
	}

	if project, detail, ok := strings.Cut(body, ":"); ok {
		project = strings.TrimSpace(project)
		if project != "" && !strings.HasSuffix(project, "*") {
			entry.Project = project
			entry.Detail = strings.TrimSpace(detail)
		}
	}

	return entry, nil
}

// Parse reads every line from r. Blank lines are ignored and malformed lines are skipped.
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		result.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := p.ParseLine(line)
		if err != nil {
			result.Skipped++
			util.LogDebug(fmt.Sprintf("Skip line %d: %v", result.Lines, err))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// IsMarker reports whether a line or body is an arrival/start marker.
func IsMarker(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), constants.MarkerSuffix)
}

// FormatLine renders a log line without the trailing newline.
func FormatLine(at time.Time, body string) string {
	return fmt.Sprintf("%s: %s", at.Format(constants.LineTimeLayout), body)
}
