package form

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Console is a line-oriented terminal standing in for the analysis window.
// The picker, the notifier and the menu loop share its input.
type Console struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan string
}

// NewConsole reads from in and writes prompts and messages to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// Picker returns a FilePicker prompting on the console
func (c *Console) Picker() *ConsolePicker { return &ConsolePicker{console: c} }

// Notifier returns a Notifier printing to the console
func (c *Console) Notifier() *ConsoleNotifier { return &ConsoleNotifier{console: c} }

// readLine prints prompt and returns the next input line. ok is false at
// end of input or once ctx is cancelled, whichever comes first.
func (c *Console) readLine(ctx context.Context, prompt string) (string, bool) {
	c.once.Do(c.startReader)
	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// startReader scans input in the background so a blocked read never holds
// up cancellation. The channel is closed at end of input.
func (c *Console) startReader() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
	}()
}

// ConsolePicker asks for file paths on the console. An empty answer cancels.
type ConsolePicker struct {
	console *Console
}

// OpenFile asks for an existing file
func (p *ConsolePicker) OpenFile(ctx context.Context, title string, filter FileFilter) (string, bool, error) {
	path, ok := p.ask(ctx, title, filter)
	if !ok {
		return "", false, ctx.Err()
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		fmt.Fprintf(p.console.out, "File not found: %s\n", path)
		return "", false, nil
	}
	return path, true, nil
}

// SaveFile asks for a destination path
func (p *ConsolePicker) SaveFile(ctx context.Context, title string, filter FileFilter) (string, bool, error) {
	path, ok := p.ask(ctx, title, filter)
	if !ok {
		return "", false, ctx.Err()
	}
	return path, true, nil
}

func (p *ConsolePicker) ask(ctx context.Context, title string, filter FileFilter) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	line, ok := p.console.readLine(ctx, fmt.Sprintf("%s [%s] (blank to cancel): ", title, filter))
	if !ok {
		return "", false
	}
	// Paths pasted from a file manager often arrive quoted
	line = strings.Trim(line, `"'`)
	return line, line != ""
}

// ConsoleNotifier prints messages to the console
type ConsoleNotifier struct {
	console *Console
}

// Error prints an error message
func (n *ConsoleNotifier) Error(title, message string) {
	fmt.Fprintf(n.console.out, "[%s] %s\n", title, message)
}

// Info prints an informational message
func (n *ConsoleNotifier) Info(title, message string) {
	fmt.Fprintf(n.console.out, "[%s] %s\n", title, message)
}

// Run shows the menu and dispatches choices until the user exits, input
// ends or ctx is cancelled. Cancellation also interrupts a pending prompt.
// Action errors have already been shown to the user and do not stop the loop.
func Run(ctx context.Context, session *Session, console *Console) error {
	for !session.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		printMenu(console.out, session)
		line, ok := console.readLine(ctx, "> ")
		if !ok {
			return ctx.Err()
		}
		if line == "" {
			continue
		}

		action, err := ParseAction(line)
		if err != nil {
			fmt.Fprintf(console.out, "%v\n", err)
			continue
		}

		if err := session.Dispatch(ctx, action); err != nil {
			session.logger.WarnContext(ctx, "Action failed",
				"action", action.String(),
				"error", err.Error())
		}
	}
	return nil
}

func printMenu(out io.Writer, session *Session) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d) %-20s %s\n", ActionSelectExport, ActionSelectExport, session.ExportStatus())
	fmt.Fprintf(out, "  %d) %-20s %s\n", ActionSelectImport, ActionSelectImport, session.ImportStatus())
	fmt.Fprintf(out, "  %d) %s\n", ActionRunAnalysis, ActionRunAnalysis)
	fmt.Fprintf(out, "  %d) %s\n", ActionExit, ActionExit)
}
