package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/game"
)

// symbolStyles maps map glyphs to their display styles.
var symbolStyles = map[rune]tcell.Style{
	'.': tcell.StyleDefault.Foreground(data.MustParseHexColor("#303030")),
	'#': tcell.StyleDefault.Foreground(data.MustParseHexColor("#DADADA")),
	'@': tcell.StyleDefault.Foreground(data.MustParseHexColor("#87FFD7")).Bold(true),
	'E': tcell.StyleDefault.Foreground(data.MustParseHexColor("#D70000")),
	'p': tcell.StyleDefault.Foreground(data.MustParseHexColor("#8700AF")),
	'$': tcell.StyleDefault.Foreground(data.MustParseHexColor("#FFFF87")),
	'T': tcell.StyleDefault.Foreground(data.MustParseHexColor("#00AF5F")),
	'X': tcell.StyleDefault.Background(data.MustParseHexColor("#5FAFFF")),
}

var (
	headerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true).Underline(true)
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// panelGap is the space between the map's right edge and the status panel.
const panelGap = 3

// Renderer draws a view snapshot: map on the left, status panel on the
// right, log and prompt line below.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the whole frame. input is the in-progress command line,
// echoed after the prompt.
func (r *Renderer) Render(v game.View, input string) {
	r.screen.Clear()

	mapWidth := 0
	for y, row := range v.Symbols {
		if len(row) > mapWidth {
			mapWidth = len(row)
		}
		for x, symbol := range row {
			r.screen.SetContent(x, y, symbol, symbolStyle(symbol))
		}
	}

	r.drawPanel(v, mapWidth+panelGap)

	logY := len(v.Symbols) + 1
	r.drawText(0, logY, "Log:", headerStyle)
	for i, line := range v.Log {
		r.drawText(0, logY+1+i, "- "+line, textStyle)
	}

	promptY := logY + 1 + len(v.Log)
	r.drawText(0, promptY, "> "+input, labelStyle)

	r.screen.Show()
}

// drawPanel draws the status, actions, and key columns beside the map.
func (r *Renderer) drawPanel(v game.View, x int) {
	lines := []struct {
		text  string
		style tcell.Style
	}{
		{"Status:", headerStyle},
		{fmt.Sprintf("HP : %d/%d    ATK : %s", v.HP, v.MaxHP, v.AttackText), textStyle},
		{fmt.Sprintf("Gold : %d", v.Gold), textStyle},
		{fmt.Sprintf("Weapon : %s", v.WeaponName), textStyle},
		{fmt.Sprintf("Inventory : %s", v.InventoryText), textStyle},
		{"", textStyle},
		{fmt.Sprintf("Enemies remaining: %d", v.EnemiesRemaining), textStyle},
		{"", textStyle},
		{"Actions:", headerStyle},
		{"[W]Up [S]Down [A]Left [D]Right [F]Fight [R]Run", textStyle},
		{"[T]Take [U]Use [Q]Quit [P]Save [L]Load", textStyle},
		{"", textStyle},
		{"Key:", headerStyle},
		{"[#]Wall [.]Floor [@]Player [E]Enemy", textStyle},
		{"[X]Exit [$]Gold [p]Potion [T]Treasure", textStyle},
	}
	for y, line := range lines {
		r.drawText(x, y, line.text, line.style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

func symbolStyle(symbol rune) tcell.Style {
	if style, ok := symbolStyles[symbol]; ok {
		return style
	}
	return tcell.StyleDefault
}
