package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// UIPanel stacks widgets in titled, collapsible sections inside a scrollable box.
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64
	Hidden        bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []*PanelSection
}

// PanelSection groups widgets under a header; clicking the header collapses it.
type PanelSection struct {
	Title     string
	Collapsed bool
	Widgets   []Widget
	headerY   float64
	latch     clickLatch
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section, following widgets go into it.
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, &PanelSection{Title: title})
}

func (p *UIPanel) add(w Widget) {
	if len(p.sections) == 0 {
		p.AddSection("")
	}
	s := p.sections[len(p.sections)-1]
	s.Widgets = append(s.Widgets, w)
}

// AddSlider adds a slider widget to the current section.
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.add(s)
	return s
}

// AddCheckbox adds a checkbox widget to the current section.
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(c)
	return c
}

// AddButton adds a full width button to the current section.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, label, onClick)
	p.add(b)
	return b
}

// layout positions headers and widgets for the current scroll offset.
func (p *UIPanel) layout() float64 {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, s := range p.sections {
		s.headerY = y
		y += sectionHeight
		if s.Collapsed {
			continue
		}
		for _, w := range s.Widgets {
			w.MoveTo(y)
			y += w.Height()
		}
	}
	return y + p.ScrollOffset - p.Y
}

func (p *UIPanel) visible(y float64) bool {
	return y >= p.Y+titleHeight-sectionHeight && y <= p.Y+p.Height-margin
}

// Update handles scrolling, section toggles and widget input.
// Nothing happens while the panel is hidden.
func (p *UIPanel) Update() {
	if p.Hidden {
		return
	}
	contentHeight := p.layout()

	if _, dy := ebiten.Wheel(); dy != 0 && hover(p.X, p.Y, p.Width, p.Height) {
		maxScroll := max(contentHeight-p.Height+40, 0)
		p.ScrollOffset = min(max(p.ScrollOffset-dy*20, 0), maxScroll)
		p.layout()
	}

	for _, s := range p.sections {
		if p.visible(s.headerY) && s.latch.fired(hover(p.X+5, s.headerY, p.Width-10, 20)) {
			s.Collapsed = !s.Collapsed
			p.layout()
			return
		}
		if s.Collapsed {
			continue
		}
		for _, w := range s.Widgets {
			w.Update()
		}
	}
}

// Draw renders the panel and all visible widgets.
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	p.layout()

	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	for _, s := range p.sections {
		if p.visible(s.headerY) {
			vector.FillRect(screen,
				float32(p.X+5), float32(s.headerY),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			marker := "- "
			if s.Collapsed {
				marker = "+ "
			}
			ebitenutil.DebugPrintAt(screen, marker+s.Title, int(p.X+margin), int(s.headerY+3))
		}
		if s.Collapsed {
			continue
		}
		y := s.headerY + sectionHeight
		for _, w := range s.Widgets {
			if p.visible(y) {
				w.Draw(screen)
			}
			y += w.Height()
		}
	}
}
