package interaction

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyReader yields one key event per call.
type KeyReader interface {
	ReadKey() (KeyEvent, error)
}

// KeyboardReader reads keys one rune at a time. When the input is a terminal it is switched to
// raw mode only for the duration of each read, so output in between is written in cooked mode.
type KeyboardReader struct {
	in     *bufio.Reader
	fd     int
	isTerm bool
}

// NewKeyboardReader reads from f, typically os.Stdin.
func NewKeyboardReader(f *os.File) *KeyboardReader {
	fd := int(f.Fd())
	return &KeyboardReader{
		in:     bufio.NewReader(f),
		fd:     fd,
		isTerm: term.IsTerminal(fd),
	}
}

// NewReaderKeyboard reads keys from a plain reader, e.g. a pipe.
func NewReaderKeyboard(r io.Reader) *KeyboardReader {
	return &KeyboardReader{in: bufio.NewReader(r), fd: -1}
}

// ReadKey blocks until a key is available. End of input is reported as Ctrl-D.
func (kr *KeyboardReader) ReadKey() (KeyEvent, error) {
	if kr.isTerm {
		oldState, err := term.MakeRaw(kr.fd)
		if err != nil {
			return KeyEvent{}, err
		}
		defer term.Restore(kr.fd, oldState)
	}

	r, _, err := kr.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return KeyEvent{Key: keyEOT, Type: EventQuit}, nil
		}
		return KeyEvent{}, err
	}

	if r == keyEscape {
		kr.skipEscapeSequence()
	}
	return parseInput(r), nil
}

// skipEscapeSequence drops the already buffered remainder of a CSI or SS3 sequence.
func (kr *KeyboardReader) skipEscapeSequence() {
	if kr.in.Buffered() == 0 {
		return
	}
	next, err := kr.in.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return
	}
	_, _ = kr.in.ReadByte()

	for kr.in.Buffered() > 0 {
		b, err := kr.in.ReadByte()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			return
		}
	}
}
