package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"okuyorum-admin/admin"
)

const defaultWidth = 120

// terminal is the CLI face of the admin feedback layer: notifications become
// printed lines, navigation changes the shell's current route and
// confirmations are y/N prompts.
type terminal struct {
	mu    sync.Mutex
	in    *bufio.Scanner
	rawIn io.Reader
	out   io.Writer
	route string
}

func newTerminal(sc *bufio.Scanner, rawIn io.Reader, out io.Writer) *terminal {
	return &terminal{in: sc, rawIn: rawIn, out: out, route: admin.RouteHome}
}

func (t *terminal) Notify(n admin.Notification) {
	mark := "✔"
	if n.Kind == admin.KindDestructive {
		mark = "✖"
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n.Message == "" {
		fmt.Fprintf(t.out, "%s %s\n", mark, n.Title)
		return
	}
	fmt.Fprintf(t.out, "%s %s: %s\n", mark, n.Title, n.Message)
}

func (t *terminal) Navigate(route string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.route = route
	fmt.Fprintf(t.out, "→ %s\n", route)
}

// Route is where the last navigation left the user.
func (t *terminal) Route() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.route
}

func (t *terminal) setRoute(route string) {
	t.mu.Lock()
	t.route = route
	t.mu.Unlock()
}

// Confirm accepts e/evet/y/yes; anything else, including EOF, is a no.
func (t *terminal) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}
	answer, ok := t.ask(prompt + " [e/H]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "e", "evet", "y", "yes":
		return true
	}
	return false
}

// ask prints label and reads one trimmed line.
func (t *terminal) ask(label string) (string, bool) {
	fmt.Fprint(t.out, label)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

// readPassword masks input on a real terminal and falls back to a plain
// line read when stdin is piped.
func (t *terminal) readPassword(prompt string) (string, error) {
	if f, ok := t.rawIn.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(t.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(t.out) // newline after masked input
		return strings.TrimSpace(string(b)), nil
	}
	line, ok := t.ask(prompt)
	if !ok {
		return "", io.ErrUnexpectedEOF
	}
	return line, nil
}

// width is the usable table width.
func (t *terminal) width() int {
	if f, ok := t.out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 40 {
			return w
		}
	}
	return defaultWidth
}
