// Package termview renders flock snapshots on a terminal grid with tcell.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// arrows are indexed by heading in eighths of a turn, counterclockwise from east.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

const (
	obstacleGlyph = '#'
	idleGlyph     = '•'
)

var (
	boidStyle     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Project maps a world position (origin centered, y up) onto a cols x rows
// grid (origin top left, rows down). ok is false when the cell is off the grid.
func Project(pos geometry.Vector2D, halfWidth, halfHeight float64, cols, rows int) (col, row int, ok bool) {
	if halfWidth <= 0 || halfHeight <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor((pos.X + halfWidth) / (2 * halfWidth) * float64(cols)))
	row = int(math.Floor((halfHeight - pos.Y) / (2 * halfHeight) * float64(rows)))
	ok = col >= 0 && col < cols && row >= 0 && row < rows
	return col, row, ok
}

// Glyph picks the arrow closest to the direction of vel.
func Glyph(vel geometry.Vector2D) rune {
	if vel.LenSqr() == 0 {
		return idleGlyph
	}
	i := int(math.Round(vel.Heading() / (math.Pi / 4)))
	return arrows[((i%8)+8)%8]
}

// View draws snapshots on a tcell screen. The top row is a status line, the
// world fills the rest.
type View struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Draw clears the screen and renders snap. Nothing is shown until Show.
func (v *View) Draw(snap *simulation.Snapshot) {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if rows < 2 || snap == nil {
		return
	}
	worldRows := rows - 1

	for _, o := range snap.Obstacles {
		if c, r, ok := Project(o.Pos, snap.HalfWidth, snap.HalfHeight, cols, worldRows); ok {
			v.screen.SetContent(c, r+1, obstacleGlyph, nil, obstacleStyle)
		}
	}
	for _, b := range snap.Boids {
		if c, r, ok := Project(b.Pos, snap.HalfWidth, snap.HalfHeight, cols, worldRows); ok {
			v.screen.SetContent(c, r+1, Glyph(b.Vel), nil, boidStyle)
		}
	}

	status := fmt.Sprintf(" tick %d | boids %d | checksum %s | q to quit ",
		snap.Tick, len(snap.Boids), snap.ChecksumHex())
	for i, ch := range []rune(status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, 0, ch, nil, statusStyle)
	}
}

// Show flushes what Draw wrote.
func (v *View) Show() { v.screen.Show() }
