package game

import (
	"fmt"
	"sort"
	"strings"
)

// logTail is how many log messages the view carries.
const logTail = 5

// view builds the render snapshot for the current state.
func (c *Controller) view() View {
	symbols := make([][]rune, c.grid.Rows())
	for y := 0; y < c.grid.Rows(); y++ {
		symbols[y] = make([]rune, c.grid.Columns())
		for x := 0; x < c.grid.Columns(); x++ {
			tile := c.grid.At(x, y)
			switch {
			case x == c.player.X && y == c.player.Y:
				symbols[y][x] = '@'
			case tile.Item() != nil:
				symbols[y][x] = tile.Item().Symbol()
			case tile.Enemy() != nil:
				symbols[y][x] = tile.Enemy().Symbol
			default:
				symbols[y][x] = tile.Symbol()
			}
		}
	}

	hp := c.player.HP
	if hp < 0 {
		hp = 0
	}

	weaponName := "-"
	attackText := "1-2"
	if c.player.Weapon != nil {
		weaponName = c.player.Weapon.Name()
		attackText = fmt.Sprintf("%d-%d", c.player.Weapon.AttackLow, c.player.Weapon.AttackHigh)
	}

	return View{
		Symbols:          symbols,
		HP:               hp,
		MaxHP:            c.player.MaxHP,
		Gold:             c.player.Gold,
		WeaponName:       weaponName,
		AttackText:       attackText,
		InventoryText:    c.inventoryText(),
		EnemiesRemaining: c.grid.EnemiesRemaining(),
		Log:              c.log.Tail(logTail),
	}
}

// inventoryText collapses duplicate items into "Name xN", in first-seen
// order.
func (c *Controller) inventoryText() string {
	if len(c.player.Inventory) == 0 {
		return "(empty)"
	}

	counts := map[string]int{}
	order := map[string]int{}
	for _, item := range c.player.Inventory {
		if _, seen := counts[item.Name()]; !seen {
			order[item.Name()] = len(order)
		}
		counts[item.Name()]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return order[names[i]] < order[names[j]] })

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if counts[name] > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// formatDuration renders seconds as hh:mm:ss; a nil duration renders as
// "-" (no completed run yet).
func formatDuration(seconds *float64) string {
	if seconds == nil {
		return "-"
	}
	total := int(*seconds)
	hour := total / 3600
	minute := (total % 3600) / 60
	second := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}
