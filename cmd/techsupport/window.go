package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nmtechsupport/techsupport/internal/game"
	"github.com/nmtechsupport/techsupport/internal/render"
	"github.com/nmtechsupport/techsupport/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Tech Support"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45
)

const (
	// Fixed UI positions
	modulesX     = 2
	modulesRow   = 3
	timerX       = 34
	timerRow     = 3
	consoleX     = 34
	consoleRow   = 10
	consoleWidth = gridCols - consoleX - 2
	consoleMax   = 30 // max visible console rows
)

// moduleKeys interact with the module at the same position in the list.
var moduleKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game is the Ebitengine game struct. It owns rendering and input.
// All puzzle state lives in session.
type Game struct {
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	session  *game.Session
	bomb     *world.Bomb
	modules  []*world.BombModule
	host     *bombHost
	display  *render.SegmentDisplay
}

func runWindow(s *game.Session, bomb *world.Bomb, host *bombHost, display *render.SegmentDisplay) error {
	atlas := render.NewFontAtlas()
	g := &Game{
		renderer: render.NewGridRenderer(atlas, cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		session:  s,
		bomb:     bomb,
		modules:  bomb.Modules(),
		host:     host,
		display:  display,
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.Config.TicksPerSecond)

	s.Start()
	g.drawScreen()
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.session.Up()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.session.Down()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.OK()
	}

	// Working a module solves it, unless tech support holds it.
	for i, key := range moduleKeys {
		if i >= len(g.modules) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if m := g.modules[i]; m.Interact() {
			m.Solve()
		}
	}

	g.session.Tick()
	g.drawScreen()
	return nil
}

func (g *Game) drawScreen() {
	buf := g.buffer
	buf.Clear()

	buf.WriteString(2, 0, title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(20, 0, fmt.Sprintf("[ %s  serial %s ]", g.bomb.Name, g.bomb.Serial), render.ColorLightCyan, render.ColorBlack)
	buf.WriteString(gridCols-14, 0, fmt.Sprintf("Strikes: %d", g.host.strikes), render.ColorLightRed, render.ColorBlack)

	buf.WriteString(modulesX, modulesRow, "--- Modules ---", render.ColorLightCyan, render.ColorBlack)
	for i, m := range g.modules {
		y := modulesRow + 1 + i
		buf.Set(modulesX, y, render.GlyphSmallBlock, render.LightColor(m.Light()), render.ColorBlack)
		label := fmt.Sprintf("%d %s", i+1, m.Name())
		clr := uint8(render.ColorLightGray)
		if m.Busy() {
			clr = render.ColorLightRed
		} else if m.IsSolved() {
			clr = render.ColorDarkGray
		}
		buf.WriteString(modulesX+2, y, label, clr, render.ColorBlack)
	}

	render.DrawSegments(buf, timerX, timerRow, g.display, render.ColorLightRed, render.ColorRed)
	stage := g.session.Stage()
	if t := g.session.Target(); t != nil {
		buf.WriteString(timerX+9, timerRow+1, "Holding: "+t.Name(), render.ColorYellow, render.ColorBlack)
		buf.WriteString(timerX+9, timerRow+2, "Stage: "+stage.String(), render.ColorYellow, render.ColorBlack)
	}

	buf.WriteString(consoleX, consoleRow, "--- Console ---", render.ColorLightCyan, render.ColorBlack)
	y := consoleRow + 1
	for _, msg := range g.session.Recent(g.session.Config.MessageCount) {
		if y >= consoleRow+1+consoleMax {
			break
		}
		y += buf.WriteWrapped(consoleX, y, consoleWidth, msg.Text, render.PriorityColor(msg.Priority), render.ColorBlack)
	}

	buf.WriteString(2, gridRows-1, "W/S: Select  Enter: OK  1-9: Work module  ESC: Quit", render.ColorDarkGray, render.ColorBlack)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
