// Package session owns one play-through: the player, the level, the
// question bank and whether the world is running or paused on a question.
package session

import (
	"go.uber.org/zap"

	"mathplatformer/internal/level"
	"mathplatformer/internal/physics"
	"mathplatformer/internal/quiz"
)

type State int

const (
	Playing State = iota
	Challenge
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Challenge:
		return "challenge"
	default:
		return "unknown"
	}
}

const (
	MsgCorrect   = "Correct! Continue your journey."
	MsgIncorrect = "Incorrect! Try again. (Press 1-4 to answer)"
)

type EventKind int

const (
	Quit EventKind = iota
	Jump
	Answer
)

// Event is a discrete input action. Choice is only set for Answer and is
// 1-based, matching the keys the player presses.
type Event struct {
	Kind   EventKind
	Choice int
}

// Frame is everything the input side reports for one tick.
type Frame struct {
	Left, Right bool
	Events      []Event
}

type Options struct {
	Physics    physics.Params
	CameraLead float64 // player's distance from the left screen edge
}

type Session struct {
	Player *physics.Player
	Level  *level.Level
	Bank   *quiz.Bank

	State    State
	Feedback string
	CameraX  float64

	activeZone     *level.ChallengeZone
	activeQuestion int

	platforms  []level.Rect
	cameraLead float64
	log        *zap.Logger
}

func New(lvl *level.Level, bank *quiz.Bank, opts Options, log *zap.Logger) *Session {
	s := &Session{
		Player:     physics.NewPlayer(lvl.Player, opts.Physics),
		Level:      lvl,
		Bank:       bank,
		State:      Playing,
		platforms:  lvl.PlatformRects(),
		cameraLead: opts.CameraLead,
		log:        log,
	}
	s.updateCamera()
	return s
}

// Update runs one tick. It returns true once a Quit event has been seen;
// events after the Quit are dropped.
func (s *Session) Update(f Frame) bool {
	for _, ev := range f.Events {
		switch ev.Kind {
		case Quit:
			s.log.Info("quit requested",
				zap.Int("solved", s.Solved()),
				zap.Int("total", s.Total()))
			return true
		case Jump:
			s.Jump()
		case Answer:
			s.Answer(ev.Choice)
		}
	}

	if s.State != Playing {
		return false
	}

	s.Player.Step(f.Left, f.Right, s.platforms)
	s.checkZones()
	s.updateCamera()
	return false
}

// Jump is ignored while a question is open.
func (s *Session) Jump() {
	if s.State != Playing {
		return
	}
	s.Player.Jump()
}

// Answer submits the 1-based choice for the open question. Outside a
// challenge it does nothing.
func (s *Session) Answer(choice int) {
	if s.State != Challenge {
		return
	}

	q := s.Bank.At(s.activeQuestion)
	if !q.IsCorrect(choice - 1) {
		s.Feedback = MsgIncorrect
		s.log.Debug("wrong answer",
			zap.Int("question", s.activeQuestion),
			zap.Int("choice", choice))
		return
	}

	s.activeZone.Solve()
	s.Feedback = MsgCorrect
	s.State = Playing
	s.log.Info("challenge solved",
		zap.Int("question", s.activeQuestion),
		zap.Int("remaining", s.Level.Remaining()))
	s.activeZone = nil
}

// ActiveQuestion returns the open question. ok is false while playing.
func (s *Session) ActiveQuestion() (q quiz.Question, index int, ok bool) {
	if s.State != Challenge {
		return quiz.Question{}, -1, false
	}
	return s.Bank.At(s.activeQuestion), s.activeQuestion, true
}

func (s *Session) Solved() int { return s.Total() - s.Level.Remaining() }
func (s *Session) Total() int { return len(s.Level.Zones) }
func (s *Session) Complete() bool { return s.Level.Remaining() == 0 }

// checkZones opens the first unsolved zone the player touches, in zone
// creation order.
func (s *Session) checkZones() {
	for _, z := range s.Level.Zones {
		if z.Solved || !s.Player.Rect.Overlaps(z.Rect) {
			continue
		}
		s.activeZone = z
		s.activeQuestion = z.Question
		s.Feedback = ""
		s.State = Challenge
		s.log.Info("challenge started",
			zap.Int("question", z.Question),
			zap.Float64("x", s.Player.Rect.X),
			zap.Float64("y", s.Player.Rect.Y))
		return
	}
}

func (s *Session) updateCamera() {
	s.CameraX = CameraOffset(s.Player.Rect.X, s.cameraLead)
}

// CameraOffset is the world x drawn at the screen's left edge.
func CameraOffset(playerX, lead float64) float64 {
	return playerX - lead
}
