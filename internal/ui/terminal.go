package ui

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondelve/internal/game"
)

// ErrClosed is returned from ReadLine when the player closes the terminal
// session (Escape or Ctrl-C).
var ErrClosed = errors.New("terminal session closed")

// Terminal adapts the tcell screen to the controller's IO contract: it
// renders view snapshots and turns key events into submitted lines.
type Terminal struct {
	screen   *Screen
	renderer *Renderer

	// view is the last rendered snapshot, redrawn as the input line echoes.
	view    game.View
	hasView bool
	input   []rune
}

// NewTerminal creates a terminal over an initialized screen.
func NewTerminal(screen *Screen) *Terminal {
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(screen),
	}
}

// Render draws the snapshot with the current input line.
func (t *Terminal) Render(v game.View) {
	t.view = v
	t.hasView = true
	t.renderer.Render(t.view, string(t.input))
}

// ReadLine collects key events into a line until Enter submits it. Escape
// and Ctrl-C end the session with ErrClosed.
func (t *Terminal) ReadLine() (string, error) {
	for {
		event := t.screen.PollEvent()
		switch ev := event.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", ErrClosed
			case tcell.KeyEnter:
				line := string(t.input)
				t.input = t.input[:0]
				return line, nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(t.input) > 0 {
					t.input = t.input[:len(t.input)-1]
					t.redraw()
				}
			case tcell.KeyRune:
				t.input = append(t.input, ev.Rune())
				t.redraw()
			}
		case *tcell.EventResize:
			t.screen.Sync()
			t.redraw()
		}
	}
}

func (t *Terminal) redraw() {
	if t.hasView {
		t.renderer.Render(t.view, string(t.input))
	}
}
