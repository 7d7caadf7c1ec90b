package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is implemented by every control hosted in a Panel.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

type entry struct {
	widget Widget
	label  string
	height float64
}

// Panel stacks widgets vertically inside a translucent box. Layout is fixed
// at construction: widgets are placed top to bottom in insertion order.
type Panel struct {
	X, Y    float64
	Width   float64
	entries []entry
	cursorY float64

	bg     color.RGBA
	border color.RGBA
}

// NewPanel creates an empty panel anchored at (x, y).
func NewPanel(x, y, width float64) *Panel {
	return &Panel{
		X:       x,
		Y:       y,
		Width:   width,
		cursorY: y + 26,
		bg:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		border:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection inserts a section header.
func (p *Panel) AddSection(title string) {
	p.entries = append(p.entries, entry{label: title, height: 22})
	p.cursorY += 22
}

// AddSlider appends a labeled slider and returns it for value reads.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.cursorY+16, p.Width-20, label, min, max, value)
	p.entries = append(p.entries, entry{widget: s, label: label, height: 32})
	p.cursorY += 32
	return s
}

// AddCheckbox appends a labeled checkbox and returns it for value reads.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.cursorY+4, label, value)
	p.entries = append(p.entries, entry{widget: c, label: label, height: 26})
	p.cursorY += 26
	return c
}

// AddButton appends a full-width button wired to onClick.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.cursorY+4, p.Width-20, 26, label, onClick)
	p.entries = append(p.entries, entry{widget: b, height: 34})
	p.cursorY += 34
	return b
}

// Height returns the panel's rendered height.
func (p *Panel) Height() float64 {
	return p.cursorY - p.Y + 10
}

// Update forwards input handling to every widget.
func (p *Panel) Update() {
	for _, e := range p.entries {
		if e.widget != nil {
			e.widget.Update()
		}
	}
}

// Draw renders the panel background, labels and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height()), p.bg, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height()), 2, p.border, true)

	y := p.Y + 6
	ebitenutil.DebugPrintAt(screen, "Configuration", int(p.X+10), int(y))
	y += 20

	for _, e := range p.entries {
		switch w := e.widget.(type) {
		case nil:
			// Section header row.
			vector.FillRect(screen, float32(p.X+5), float32(y),
				float32(p.Width-10), 18,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, e.label, int(p.X+10), int(y+2))
		case *Slider:
			ebitenutil.DebugPrintAt(screen, e.label, int(p.X+10), int(y))
			w.Draw(screen)
		case *Checkbox:
			ebitenutil.DebugPrintAt(screen, e.label, int(p.X+34), int(y+4))
			w.Draw(screen)
		default:
			w.Draw(screen)
		}
		y += e.height
	}
}
