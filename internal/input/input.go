// Package input turns keyboard state into session frames.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mathplatformer/internal/session"
)

// Source produces the input for one tick.
type Source interface {
	Poll() session.Frame
}

// Keys maps physical keys to actions. Answer keys are indexed by choice - 1.
type Keys struct {
	Left   []ebiten.Key
	Right  []ebiten.Key
	Jump   []ebiten.Key
	Quit   []ebiten.Key
	Answer [4][]ebiten.Key
}

func DefaultKeys() Keys {
	return Keys{
		Left:  []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Jump:  []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp},
		Quit:  []ebiten.Key{ebiten.KeyEscape},
		Answer: [4][]ebiten.Key{
			{ebiten.KeyDigit1, ebiten.KeyNumpad1},
			{ebiten.KeyDigit2, ebiten.KeyNumpad2},
			{ebiten.KeyDigit3, ebiten.KeyNumpad3},
			{ebiten.KeyDigit4, ebiten.KeyNumpad4},
		},
	}
}

// KeyState reports key status for the current tick.
type KeyState interface {
	Pressed(k ebiten.Key) bool     // held down
	JustPressed(k ebiten.Key) bool // went down this tick
}

// Build assembles a frame from key state. Held keys drive walking; jump,
// answer and quit fire once per press.
func (k Keys) Build(ks KeyState) session.Frame {
	f := session.Frame{
		Left:  anyOf(k.Left, ks.Pressed),
		Right: anyOf(k.Right, ks.Pressed),
	}
	if anyOf(k.Quit, ks.JustPressed) {
		f.Events = append(f.Events, session.Event{Kind: session.Quit})
	}
	if anyOf(k.Jump, ks.JustPressed) {
		f.Events = append(f.Events, session.Event{Kind: session.Jump})
	}
	for i, keys := range k.Answer {
		if anyOf(keys, ks.JustPressed) {
			f.Events = append(f.Events, session.Event{Kind: session.Answer, Choice: i + 1})
		}
	}
	return f
}

func anyOf(keys []ebiten.Key, fn func(ebiten.Key) bool) bool {
	for _, key := range keys {
		if fn(key) {
			return true
		}
	}
	return false
}

// Keyboard polls ebiten's keyboard.
type Keyboard struct {
	Keys Keys
}

func NewKeyboard() *Keyboard {
	return &Keyboard{Keys: DefaultKeys()}
}

func (kb *Keyboard) Poll() session.Frame {
	f := kb.Keys.Build(ebitenKeys{})
	if ebiten.IsWindowBeingClosed() {
		f.Events = append([]session.Event{{Kind: session.Quit}}, f.Events...)
	}
	return f
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
