package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"mathplatformer/internal/config"
	"mathplatformer/internal/input"
	"mathplatformer/internal/level"
	"mathplatformer/internal/logger"
	"mathplatformer/internal/physics"
	"mathplatformer/internal/quiz"
	"mathplatformer/internal/render"
	"mathplatformer/internal/session"
)

const (
	defaultLevelPath     = "data/level.yaml"
	defaultQuestionsPath = "data/questions.yaml"
)

type Game struct {
	session  *session.Session
	input    input.Source
	renderer *render.Renderer
	width    int
	height   int
}

func NewGame(cfg *config.Config, s *session.Session, src input.Source) *Game {
	return &Game{
		session:  s,
		input:    src,
		renderer: render.New(cfg.Window.Width, cfg.Window.Height),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if g.session.Update(g.input.Poll()) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session)
}

// dataSource picks the filesystem for a data file: the working directory
// when a path is configured, the embedded copy otherwise.
func dataSource(configured, fallback string) (fs.FS, string) {
	if configured == "" {
		return dataFS, fallback
	}
	return os.DirFS("."), configured
}

func loadWorld(cfg *config.Config) (*level.Level, *quiz.Bank, error) {
	qfs, qpath := dataSource(cfg.Data.Questions, defaultQuestionsPath)
	bank, err := quiz.Load(qfs, qpath)
	if err != nil {
		return nil, nil, err
	}

	lfs, lpath := dataSource(cfg.Data.Level, defaultLevelPath)
	lvl, err := level.Load(lfs, lpath, bank.Len())
	if err != nil {
		return nil, nil, err
	}
	return lvl, bank, nil
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Physics: physics.Params{
			Gravity:   cfg.Physics.Gravity,
			Speed:     cfg.Physics.Speed,
			JumpSpeed: cfg.Physics.JumpSpeed,
		},
		CameraLead: cfg.Camera.Lead,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	lvl, bank, err := loadWorld(cfg)
	if err != nil {
		lg.Fatal("failed to load world", zap.Error(err))
	}
	lg.Info("world loaded",
		zap.Int("platforms", len(lvl.Platforms)),
		zap.Int("zones", len(lvl.Zones)),
		zap.Int("questions", bank.Len()))

	s := session.New(lvl, bank, sessionOptions(cfg), lg)

	g := NewGame(cfg, s, input.NewKeyboard())

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		lg.Fatal("game loop failed", zap.Error(err))
	}
	lg.Info("session ended", zap.Int("solved", s.Solved()), zap.Int("total", s.Total()))
}
