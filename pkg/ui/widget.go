package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is implemented by everything a UIPanel can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space the widget takes in the panel, label included.
	Height() float64
	// MoveTo places the widget top at y, the panel calls it while scrolling.
	MoveTo(y float64)
}

// hover reports whether the cursor is inside the rectangle.
func hover(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}

// clickLatch turns a held mouse button into a single click.
type clickLatch struct {
	down bool
}

// fired returns true once per press while over is true.
func (c *clickLatch) fired(over bool) bool {
	if over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !c.down {
			c.down = true
			return true
		}
		return false
	}
	c.down = false
	return false
}
