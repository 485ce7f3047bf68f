// internal/console/prompt.go
//
// Line-oriented terminal input shared by the console collaborators.
// Responsibilities:
//   - Printing a prompt and reading one trimmed line.
//   - Reading a line without echo when the input is a terminal.
//   - Printing validation errors followed by the help hint.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrInputClosed is returned when the input ends while a value is expected.
var ErrInputClosed = errors.New("input closed")

const helpHint = "To get more help, enter '?'"

// Terminal is the console shared by every collaborator of a session. It owns
// the only buffered reader on its input.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal behind in, or -1 when in is not a terminal.
	fd int
}

// NewTerminal wraps in and out. Input echo is suppressed for secrets only when
// in is an *os.File attached to a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Terminal{in: bufio.NewReader(in), out: out, fd: fd}
}

// ask prints prompt and returns the next line without surrounding spaces.
func (t *Terminal) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			fmt.Fprintln(t.out)
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

// askHidden is ask without echo on a terminal.
func (t *Terminal) askHidden(ctx context.Context, prompt string) (string, error) {
	if t.fd < 0 {
		return t.ask(ctx, prompt)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	b, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("read hidden input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Password reads one line without echo when the input is a terminal.
func (t *Terminal) Password(ctx context.Context, prompt string) (string, error) {
	return t.askHidden(ctx, prompt)
}

func (t *Terminal) println(a ...any) { fmt.Fprintln(t.out, a...) }

// invalid reports a rejected value. Non-validation errors are returned.
func (t *Terminal) invalid(err error) error {
	if !game.IsValidationError(err) {
		return err
	}
	t.println(err)
	t.println(helpHint)
	return nil
}
