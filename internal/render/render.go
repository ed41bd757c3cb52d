// Package render draws a session: the scrolled world, the HUD and the
// question overlay.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"mathplatformer/internal/level"
	"mathplatformer/internal/session"
)

var (
	colorBackground = color.RGBA{20, 20, 40, 0xFF}
	colorPlatform   = color.RGBA{0, 0, 0xFF, 0xFF}
	colorZone       = color.RGBA{0xFF, 0, 0, 0xFF}
	colorPlayer     = color.RGBA{0xFF, 0xFF, 0, 0xFF}
	colorOverlay    = color.RGBA{0, 0, 0, 200}
	colorTitle      = color.RGBA{0xFF, 0xFF, 0, 0xFF}
	colorFeedback   = color.RGBA{0, 0xFF, 0, 0xFF}
)

// lineHeight is the baseline-to-baseline distance for basicfont.Face7x13.
const lineHeight = 16

type Renderer struct {
	Width, Height int
	face          font.Face
}

func New(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height, face: basicfont.Face7x13}
}

func (r *Renderer) Draw(screen *ebiten.Image, s *session.Session) {
	screen.Fill(colorBackground)

	for _, p := range s.Level.Platforms {
		r.rect(screen, p.Rect, s.CameraX, colorPlatform)
	}
	for _, z := range s.Level.Unsolved() {
		r.rect(screen, z.Rect, s.CameraX, colorZone)
	}
	r.rect(screen, s.Player.Rect, s.CameraX, colorPlayer)

	if s.State == session.Challenge {
		r.drawChallenge(screen, s)
		return
	}
	r.drawHUD(screen, s)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, s *session.Session) {
	lines := []string{
		"Arrow keys to move, Space to jump",
		"Reach red zones to answer math questions.",
		fmt.Sprintf("Solved %d/%d", s.Solved(), s.Total()),
	}
	if s.Complete() {
		lines = append(lines, "All challenges cleared! Press Esc to quit.")
	}
	y := 10 + lineHeight
	for _, line := range lines {
		text.Draw(screen, line, r.face, 10, y, color.White)
		y += lineHeight + 4
	}
	if s.Feedback != "" {
		text.Draw(screen, s.Feedback, r.face, 10, y, colorFeedback)
	}
}

func (r *Renderer) drawChallenge(screen *ebiten.Image, s *session.Session) {
	q, _, ok := s.ActiveQuestion()
	if !ok {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(r.Width), float32(r.Height), colorOverlay, false)

	r.centered(screen, "Math Challenge!", 80, colorTitle)

	y := 140
	for _, line := range Wrap(r.face, q.Prompt, r.Width-100) {
		text.Draw(screen, line, r.face, 50, y, color.White)
		y += lineHeight + 5
	}

	for i, opt := range q.Options {
		r.centered(screen, fmt.Sprintf("%d. %s", i+1, opt), 220+i*40, color.White)
	}

	if s.Feedback != "" {
		r.centered(screen, s.Feedback, 400, colorFeedback)
	}
	r.centered(screen, "Press 1-4 to answer.", 450, color.White)
}

func (r *Renderer) rect(screen *ebiten.Image, rc level.Rect, cameraX float64, c color.Color) {
	vector.DrawFilledRect(screen,
		float32(rc.X-cameraX), float32(rc.Y), float32(rc.W), float32(rc.H), c, false)
}

func (r *Renderer) centered(screen *ebiten.Image, s string, y int, c color.Color) {
	text.Draw(screen, s, r.face, CenterX(r.face, s, r.Width), y, c)
}

// CenterX returns the x at which s must start to be centred in width.
func CenterX(face font.Face, s string, width int) int {
	return (width - font.MeasureString(face, s).Ceil()) / 2
}

// Wrap splits s into lines no wider than maxWidth. A single word wider than
// maxWidth gets a line of its own.
func Wrap(face font.Face, s string, maxWidth int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current == "" || font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
