// Package cli implements the interactive terminal sessions: lessons for new
// vocabulary and reviews of scheduled items.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/gloser-app/gloser/internal/session"
)

var errEnd = errors.New("end")

// InteractiveCLI contains shared logic for the interactive sessions.
type InteractiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// newInteractiveCLI creates the base CLI on the given streams. Production
// callers pass os.Stdin and os.Stdout; tests pass buffers.
func newInteractiveCLI(in io.Reader, out io.Writer) *InteractiveCLI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &InteractiveCLI{
		stdinReader:  bufio.NewReader(in),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

//go:generate mockgen -source=interactive.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run drives a session until it ends or the user interrupts.
func (cli *InteractiveCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine reads one line of input and trims surrounding whitespace. A final
// unterminated line is returned before io.EOF surfaces.
func (cli *InteractiveCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (cli *InteractiveCLI) printf(format string, args ...any) {
	fmt.Fprintf(cli.stdoutWriter, format, args...)
}

func (cli *InteractiveCLI) println(args ...any) {
	fmt.Fprintln(cli.stdoutWriter, args...)
}

func (cli *InteractiveCLI) printVerdict(verdict session.Verdict) {
	expression := cli.bold.Sprintf("%s", verdict.Question.Prompt())
	answer := cli.italic.Sprintf("%s", verdict.Question.Answer())
	if verdict.Correct {
		cli.printf("✅ ")
		cli.println(color.GreenString(`It's correct. The answer for %s is "%s"`, expression, answer))
	} else {
		cli.printf("❌ ")
		cli.println(color.RedString(`It's wrong. The answer for %s is "%s"`, expression, answer))
	}
}
