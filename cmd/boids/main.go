package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

// Game is the ebiten shell around the simulation. It owns no agent state:
// each frame it ticks the flock once and draws whatever Snapshot returns.
type Game struct {
	cfg   *flock.Config
	flock *flock.Flock

	panel        *ui.Panel
	wVisualRange *ui.Slider
	wMinDistance *ui.Slider
	wCentering   *ui.Slider
	wAvoid       *ui.Slider
	wMatching    *ui.Slider
	wSpeedLimit  *ui.Slider
	wMargin      *ui.Slider
	wTurnFactor  *ui.Slider
	wPopulation  *ui.Slider
	wShowMargin  *ui.Checkbox

	curW, curH int
	ticks      uint64
}

func newGame(cfg *flock.Config, f *flock.Flock) *Game {
	g := &Game{
		cfg:   cfg,
		flock: f,
		curW:  int(cfg.FieldWidth),
		curH:  int(cfg.FieldHeight),
	}

	panel := ui.NewPanel(10, 10, 260)

	panel.AddSection("Flocking Rules")
	g.wVisualRange = panel.AddSlider("Visual Range", 10, 200, cfg.VisualRange)
	g.wMinDistance = panel.AddSlider("Min Distance", 1, 100, cfg.MinDistance)
	g.wCentering = panel.AddSlider("Centering Factor", 0.0005, 0.02, cfg.CenteringFactor)
	g.wAvoid = panel.AddSlider("Avoid Factor", 0.001, 0.2, cfg.AvoidFactor)
	g.wMatching = panel.AddSlider("Matching Factor", 0.001, 0.2, cfg.MatchingFactor)

	panel.AddSection("Physics & Bounds")
	g.wSpeedLimit = panel.AddSlider("Speed Limit", 1, 30, cfg.SpeedLimit)
	g.wMargin = panel.AddSlider("Margin", 10, 400, cfg.Margin)
	g.wTurnFactor = panel.AddSlider("Turn Factor", 0.05, 3, cfg.TurnFactor)

	panel.AddSection("Population (applies on Reset)")
	g.wPopulation = panel.AddSlider("Boids", 1, 1000, float64(cfg.PopulationCount))

	panel.AddSection("Visualization")
	g.wShowMargin = panel.AddCheckbox("Show Margin Band", false)

	panel.AddButton("Reset Flock", func() {
		cfg.PopulationCount = int(g.wPopulation.Value)
		f.Reset()
	})

	g.panel = panel
	return g
}

func (g *Game) Update() error {
	g.panel.Update()

	// Push live slider values into the shared config. The next Tick sees them.
	g.cfg.VisualRange = g.wVisualRange.Value
	g.cfg.MinDistance = g.wMinDistance.Value
	g.cfg.CenteringFactor = g.wCentering.Value
	g.cfg.AvoidFactor = g.wAvoid.Value
	g.cfg.MatchingFactor = g.wMatching.Value
	g.cfg.SpeedLimit = g.wSpeedLimit.Value
	g.cfg.Margin = g.wMargin.Value
	g.cfg.TurnFactor = g.wTurnFactor.Value

	if err := g.flock.Tick(); err != nil {
		return fmt.Errorf("tick %d: %w", g.ticks, err)
	}
	g.ticks++
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	field := g.flock.Field()
	if g.wShowMargin.Value {
		m := float32(g.cfg.Margin)
		vector.StrokeRect(screen, m, m,
			float32(field.Width)-2*m, float32(field.Height)-2*m,
			1, color.RGBA{R: 90, G: 90, B: 40, A: 255}, true)
	}

	for _, mark := range g.flock.Snapshot() {
		drawMark(screen, mark)
	}

	g.panel.Draw(screen)

	s := g.flock.Summary()
	hud := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s", ebiten.ActualFPS(), ebiten.ActualTPS(), s)
	ebitenutil.DebugPrintAt(screen, hud, int(field.Width)-220, 10)
}

// drawMark renders one agent as a small triangle pointing along its heading.
// Mark headings are offset by -Pi/2 for "up" facing sprites, so the velocity
// direction is heading + Pi/2.
func drawMark(screen *ebiten.Image, m flock.Mark) {
	angle := m.Heading + math.Pi/2

	tipX := m.X + math.Cos(angle)*6
	tipY := m.Y + math.Sin(angle)*6
	rightX := m.X + math.Cos(angle+2.5)*5
	rightY := m.Y + math.Sin(angle+2.5)*5
	leftX := m.X + math.Cos(angle-2.5)*5
	leftY := m.Y + math.Sin(angle-2.5)*5

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// Layout tracks window resizes and feeds them to the flock; the boundary rule
// observes the new bounds on the next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.curW || outsideHeight != g.curH {
		if err := g.flock.Resize(float64(outsideWidth), float64(outsideHeight)); err == nil {
			g.curW, g.curH = outsideWidth, outsideHeight
		}
	}
	return g.curW, g.curH
}

func main() {
	configFile := flag.String("config", "", "path to a JSON config file")
	schemaFile := flag.String("schema", "docs/config.schema.json", "path to the config JSON schema")
	flag.Parse()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	f, err := flock.New(cfg)
	if err != nil {
		log.Fatalf("flock: %v", err)
	}
	f.Reset()

	ebiten.SetWindowSize(int(cfg.FieldWidth), int(cfg.FieldHeight))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Flock Simulation")

	if err := ebiten.RunGame(newGame(cfg, f)); err != nil {
		log.Fatal(err)
	}
}
