// Package level describes the fixed world geometry: platforms to stand on
// and the challenge zones that stop play for a question.
package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("invalid level")

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) Left() float64 { return r.X }
func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Top() float64 { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

func (r Rect) validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("non-positive size %.1fx%.1f", r.W, r.H)
	}
	return nil
}

type Platform struct {
	Rect Rect
}

// ChallengeZone triggers a question when the player walks into it. Once
// solved it stays solved.
type ChallengeZone struct {
	Rect     Rect
	Question int
	Solved   bool
}

func (z *ChallengeZone) Solve() { z.Solved = true }

// Level is the whole world. Zones keep their creation order, which is also
// the order they are checked for overlap.
type Level struct {
	Player    Rect
	Platforms []Platform
	Zones     []*ChallengeZone
}

// PlatformRects returns the platform boxes in creation order.
func (l *Level) PlatformRects() []Rect {
	rects := make([]Rect, len(l.Platforms))
	for i, p := range l.Platforms {
		rects[i] = p.Rect
	}
	return rects
}

// Unsolved returns the zones still waiting for an answer, in creation order.
func (l *Level) Unsolved() []*ChallengeZone {
	var zones []*ChallengeZone
	for _, z := range l.Zones {
		if !z.Solved {
			zones = append(zones, z)
		}
	}
	return zones
}

func (l *Level) Remaining() int { return len(l.Unsolved()) }

// Validate checks geometry and that every zone points at one of the
// questions available.
func (l *Level) Validate(questions int) error {
	if err := l.Player.validate(); err != nil {
		return fmt.Errorf("%w: player: %v", ErrInvalidLevel, err)
	}
	for i, p := range l.Platforms {
		if err := p.Rect.validate(); err != nil {
			return fmt.Errorf("%w: platform %d: %v", ErrInvalidLevel, i, err)
		}
	}
	for i, z := range l.Zones {
		if err := z.Rect.validate(); err != nil {
			return fmt.Errorf("%w: zone %d: %v", ErrInvalidLevel, i, err)
		}
		if z.Question < 0 || z.Question >= questions {
			return fmt.Errorf("%w: zone %d references question %d of %d",
				ErrInvalidLevel, i, z.Question, questions)
		}
	}
	return nil
}

type levelFile struct {
	Player    Rect   `yaml:"player"`
	Platforms []Rect `yaml:"platforms"`
	Zones     []struct {
		Rect     `yaml:",inline"`
		Question int `yaml:"question"`
	} `yaml:"zones"`
}

// Load reads a YAML level from fsys and validates it against the number of
// questions in the bank.
func Load(fsys fs.FS, path string, questions int) (*Level, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level: %w", err)
	}

	var file levelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	l := &Level{Player: file.Player}
	for _, r := range file.Platforms {
		l.Platforms = append(l.Platforms, Platform{Rect: r})
	}
	for _, z := range file.Zones {
		l.Zones = append(l.Zones, &ChallengeZone{Rect: z.Rect, Question: z.Question})
	}

	if err := l.Validate(questions); err != nil {
		return nil, err
	}
	return l, nil
}
