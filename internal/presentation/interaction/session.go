package interaction

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/penwyp/go-timelog/internal/core/constants"
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/aggregator"
	"github.com/penwyp/go-timelog/internal/data/timelog"
	"github.com/penwyp/go-timelog/internal/presentation/display"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/penwyp/go-timelog/internal/util"
)

// Editor opens the timelog in an external program.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// ExecEditor runs Command with "+9999999 <path>" so the editor starts at the last line.
type ExecEditor struct {
	Command string
}

func (e ExecEditor) Edit(ctx context.Context, path string) error {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return fmt.Errorf("no editor configured")
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], "+9999999", path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", args[0], err)
	}
	return nil
}

// Session is the interactive prompt. It is a small state machine fed one KeyEvent at a time.
type Session struct {
	store   *timelog.Store
	agg     *aggregator.Aggregator
	display *display.TerminalDisplay
	editor  Editor
	clock   *util.TimeProvider

	state   State
	text    []rune
	matches []model.Entry
}

func NewSession(store *timelog.Store, agg *aggregator.Aggregator, td *display.TerminalDisplay, editor Editor, clock *util.TimeProvider) *Session {
	return &Session{
		store:   store,
		agg:     agg,
		display: td,
		editor:  editor,
		clock:   clock,
		state:   StateAwaitingKey,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Text returns the text typed so far.
func (s *Session) Text() string {
	return string(s.text)
}

// Start prints the banner, the period summaries and the latest tasks, then the prompt.
func (s *Session) Start() error {
	now := s.clock.Now()
	s.display.Header(now, s.agg.Calendar().WorkingDays(now.Year()))

	if err := s.showSummary(); err != nil {
		return err
	}

	s.display.Newline()
	if err := s.showMatches(""); err != nil {
		return err
	}
	s.display.Prompt(false)
	return nil
}

// Run starts the session and dispatches keys until the user quits.
func (s *Session) Run(ctx context.Context, keys KeyReader) error {
	if err := s.Start(); err != nil {
		return err
	}

	for s.state != StateQuit {
		if err := ctx.Err(); err != nil {
			return nil
		}

		event, err := keys.ReadKey()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		if err := s.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Handle applies one key event. Errors reading or writing the timelog are returned; editor
// failures are shown and the session continues.
func (s *Session) Handle(ctx context.Context, event KeyEvent) error {
	if s.state == StateQuit {
		return nil
	}
	empty := len(s.text) == 0

	switch event.Type {
	case EventQuit:
		if empty || isControlQuit(event.Key) {
			s.quit()
			return nil
		}
	case EventEscape:
		return nil
	case EventEnter:
		if empty {
			return nil
		}
		return s.submit(ctx)
	case EventBackspace:
		if empty {
			return nil
		}
		s.text = s.text[:len(s.text)-1]
		s.display.Redraw(string(s.text))
		return nil
	case EventSpace:
		if empty {
			return nil
		}
	case EventDigit:
		if empty {
			return s.selectMatch(int(event.Key - '0'))
		}
	case EventTab:
		s.display.Newline()
		if !empty {
			if err := s.showMatches(string(s.text)); err != nil {
				return err
			}
		}
		s.text = nil
		s.display.Prompt(false)
		return nil
	}

	s.text = append(s.text, event.Key)
	s.display.Echo(string(event.Key))
	return nil
}

func (s *Session) quit() {
	s.state = StateQuit
	s.display.Newline()
	util.LogDebug("Interactive session finished")
}

func (s *Session) selectMatch(index int) error {
	if index >= len(s.matches) {
		return nil
	}
	if err := s.write(s.matches[index].Body); err != nil {
		return err
	}
	s.matches = nil
	s.display.Prompt(true)
	return nil
}

// submit runs the command typed on the prompt or stores it as a new task.
func (s *Session) submit(ctx context.Context) error {
	text := strings.TrimSpace(string(s.text))
	s.text = nil
	command := strings.ToLower(text)
	util.LogDebug("Submit", util.Field{Key: "text", Value: text})

	var err error
	switch {
	case command == "q" || command == "quit" || command == "exit":
		s.quit()
		return nil
	case command == "l" || command == "list":
		err = s.showTail()
	case command == "s" || command == "summary":
		s.display.Newline()
		err = s.showSummary()
	case command == "a*" || command == "*":
		err = s.write(constants.ArrivalBody)
	case command == "e" || command == "edit":
		if editErr := s.editor.Edit(ctx, s.store.Path()); editErr != nil {
			util.LogError("Editor failed", util.Field{Key: "error", Value: editErr.Error()})
			s.display.Error(editErr)
		}
	case isSearch(text):
		s.display.Newline()
		err = s.showMatches(text)
	default:
		err = s.write(text)
	}
	if err != nil {
		return err
	}

	s.display.Prompt(true)
	return nil
}

// isSearch reports whether submitted text is a history search rather than a task.
func isSearch(text string) bool {
	return text != "" && !strings.Contains(text, ":") && !strings.Contains(text, constants.MarkerSuffix)
}

func (s *Session) write(body string) error {
	line, err := s.store.Append(body, s.clock.Now())
	if err != nil {
		return err
	}
	s.display.TaskAdded(line)
	return nil
}

func (s *Session) showMatches(term string) error {
	matches, err := s.store.Search(term, constants.DefaultSearchLimit)
	if err != nil {
		return err
	}
	s.matches = matches
	s.display.Matches(term, constants.DefaultSearchLimit, matches)
	return nil
}

func (s *Session) showTail() error {
	entries, err := s.store.Tail(constants.DefaultListLimit)
	if err != nil {
		return err
	}
	s.display.Newline()
	s.display.Lines(entries)
	return nil
}

func (s *Session) showSummary() error {
	entries, err := s.store.Entries()
	if err != nil {
		return err
	}

	now := s.clock.Now()
	groups := formatter.BuildGroups(s.agg,
		s.agg.Summaries(entries, now, false),
		s.agg.Summaries(entries, now, true))
	return s.display.Summary(groups)
}
