package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/marcin-skalski/jiraclui/internal/session"
)

// RunLines drives sess from line input, starting at step. Prompts go to
// out. End of input ends the run like an exit; a cancelled ctx ends it
// with ctx.Err() even while waiting for a line.
func RunLines(ctx context.Context, sess *session.Session, step session.Step, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for !step.Done {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, step.Prompt.Label)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case text, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			step = sess.Submit(ctx, text)
		}
	}
	return nil
}
