// Package physics moves the player through the level: gravity, walking,
// jumping and axis-by-axis push-out against platforms.
package physics

import (
	"math"

	"mathplatformer/internal/level"
)

// Body is the player's collision state.
type Body struct {
	Rect     level.Rect
	VelY     float64
	Grounded bool
}

// MoveX shifts the body horizontally and pushes it out of any platform it
// ends up inside. Vertical velocity is left alone.
func MoveX(b Body, dx float64, platforms []level.Rect) Body {
	b.Rect.X += dx
	for _, p := range platforms {
		if !b.Rect.Overlaps(p) {
			continue
		}
		if dx > 0 {
			b.Rect.X = below(p.Left()-b.Rect.W, b.Rect.W, p.Left())
		}
		if dx < 0 {
			b.Rect.X = p.Right()
		}
	}
	return b
}

// MoveY shifts the body vertically. Landing on a platform zeroes VelY and
// sets Grounded; hitting one from below only zeroes VelY. Grounded is
// cleared first so it only reflects this move.
func MoveY(b Body, dy float64, platforms []level.Rect) Body {
	b.Grounded = false
	b.Rect.Y += dy
	for _, p := range platforms {
		if !b.Rect.Overlaps(p) {
			continue
		}
		if dy > 0 {
			b.Rect.Y = below(p.Top()-b.Rect.H, b.Rect.H, p.Top())
			b.VelY = 0
			b.Grounded = true
		}
		if dy < 0 {
			b.Rect.Y = p.Bottom()
			b.VelY = 0
		}
	}
	return b
}

// below returns the largest origin at or under start whose far edge
// (origin+size) does not pass limit. origin = limit-size can round so that
// origin+size lands one ulp past limit, which would count as an overlap.
func below(start, size, limit float64) float64 {
	origin := start
	for origin+size > limit {
		origin = math.Nextafter(origin, math.Inf(-1))
	}
	return origin
}

// Resolve applies dx then dy. Overlaps with several platforms are settled
// one platform at a time in slice order, so fast bodies can tunnel.
func Resolve(b Body, dx, dy float64, platforms []level.Rect) Body {
	b = MoveX(b, dx, platforms)
	return MoveY(b, dy, platforms)
}

// Params are the movement constants; the game takes them from config.
type Params struct {
	Gravity   float64
	Speed     float64
	JumpSpeed float64
}

type Player struct {
	Body
	params Params
}

func NewPlayer(rect level.Rect, params Params) *Player {
	return &Player{Body: Body{Rect: rect}, params: params}
}

// Step advances the player by one tick. Gravity is applied every tick, even
// when resting on a platform.
func (p *Player) Step(left, right bool, platforms []level.Rect) {
	dx := 0.0
	if left {
		dx = -p.params.Speed
	}
	if right {
		dx = p.params.Speed
	}
	p.VelY += p.params.Gravity
	p.Body = Resolve(p.Body, dx, p.VelY, platforms)
}

// Jump launches the player if it is standing on something. It reports
// whether the jump happened.
func (p *Player) Jump() bool {
	if !p.Grounded {
		return false
	}
	p.VelY = -p.params.JumpSpeed
	return true
}
