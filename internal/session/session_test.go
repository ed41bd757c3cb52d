package session

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"mathplatformer/internal/level"
	"mathplatformer/internal/physics"
	"mathplatformer/internal/quiz"
)

const cameraLead = 100

var testParams = physics.Params{Gravity: 0.8, Speed: 5, JumpSpeed: 15}

func shippedBank(t *testing.T) *quiz.Bank {
	t.Helper()
	bank, err := quiz.Load(os.DirFS("../.."), "data/questions.yaml")
	if err != nil {
		t.Fatalf("loading question bank: %v", err)
	}
	return bank
}

// newTestSession puts the player resting on a floor at y=100 with its box
// spanning x 0..30.
func newTestSession(t *testing.T, zones ...*level.ChallengeZone) *Session {
	t.Helper()
	lvl := &level.Level{
		Player:    level.Rect{X: 0, Y: 60, W: 30, H: 40},
		Platforms: []level.Platform{{Rect: level.Rect{X: -500, Y: 100, W: 2000, H: 20}}},
		Zones:     zones,
	}
	bank := shippedBank(t)
	if err := lvl.Validate(bank.Len()); err != nil {
		t.Fatalf("invalid test level: %v", err)
	}
	opts := Options{Physics: testParams, CameraLead: cameraLead}
	return New(lvl, bank, opts, zap.NewNop())
}

func answer(choice int) Frame {
	return Frame{Events: []Event{{Kind: Answer, Choice: choice}}}
}

func TestChallengeScenario(t *testing.T) {
	zone := &level.ChallengeZone{Rect: level.Rect{X: 20, Y: 60, W: 50, H: 40}, Question: 0}
	s := newTestSession(t, zone)

	s.Update(Frame{})
	if s.State != Challenge {
		t.Fatalf("State = %v, want challenge", s.State)
	}
	if _, idx, ok := s.ActiveQuestion(); !ok || idx != 0 {
		t.Fatalf("ActiveQuestion() = %d, %v; want 0, true", idx, ok)
	}
	if s.Feedback != "" {
		t.Errorf("Feedback = %q, want empty on entry", s.Feedback)
	}

	s.Update(answer(3))
	if s.State != Challenge {
		t.Fatalf("State = %v after wrong answer, want challenge", s.State)
	}
	if s.Feedback != MsgIncorrect {
		t.Errorf("Feedback = %q, want %q", s.Feedback, MsgIncorrect)
	}
	if zone.Solved {
		t.Fatal("zone solved by a wrong answer")
	}

	s.Update(answer(1))
	if s.State != Playing {
		t.Fatalf("State = %v after correct answer, want playing", s.State)
	}
	if !zone.Solved {
		t.Error("zone not solved after correct answer")
	}
	if s.Feedback != MsgCorrect {
		t.Errorf("Feedback = %q, want %q", s.Feedback, MsgCorrect)
	}
	if !s.Complete() || s.Solved() != 1 {
		t.Errorf("Solved() = %d, Complete() = %v", s.Solved(), s.Complete())
	}
}

func TestEveryWrongAnswerKeepsChallenge(t *testing.T) {
	for q := 0; q < shippedBank(t).Len(); q++ {
		zone := &level.ChallengeZone{Rect: level.Rect{X: 20, Y: 60, W: 50, H: 40}, Question: q}
		s := newTestSession(t, zone)
		s.Update(Frame{})
		correct := s.Bank.At(q).Correct + 1

		for choice := 1; choice <= quiz.OptionCount; choice++ {
			if choice == correct {
				continue
			}
			s.Update(answer(choice))
			if s.State != Challenge {
				t.Fatalf("question %d choice %d: State = %v, want challenge", q, choice, s.State)
			}
			if _, idx, ok := s.ActiveQuestion(); !ok || idx != q {
				t.Errorf("question %d choice %d: ActiveQuestion() = %d, %v", q, choice, idx, ok)
			}
			if zone.Solved {
				t.Fatalf("question %d choice %d: zone solved by a wrong answer", q, choice)
			}
			if s.Feedback != MsgIncorrect {
				t.Errorf("question %d choice %d: Feedback = %q", q, choice, s.Feedback)
			}
		}

		s.Update(answer(correct))
		if s.State != Playing || !zone.Solved {
			t.Errorf("question %d: correct choice %d left state %v solved=%v", q, correct, s.State, zone.Solved)
		}
	}
}

func TestSolvedZoneNeverRetriggers(t *testing.T) {
	zone := &level.ChallengeZone{Rect: level.Rect{X: 20, Y: 60, W: 50, H: 40}, Question: 0, Solved: true}
	s := newTestSession(t, zone)

	for i := 0; i < 10; i++ {
		s.Update(Frame{Right: i%2 == 0})
		if s.State != Playing {
			t.Fatalf("tick %d: solved zone triggered a challenge", i)
		}
	}
}

func TestFirstOverlappingZoneWins(t *testing.T) {
	first := &level.ChallengeZone{Rect: level.Rect{X: 10, Y: 60, W: 50, H: 40}, Question: 3}
	second := &level.ChallengeZone{Rect: level.Rect{X: 0, Y: 60, W: 50, H: 40}, Question: 1}
	s := newTestSession(t, first, second)

	s.Update(Frame{})
	if _, idx, ok := s.ActiveQuestion(); !ok || idx != 3 {
		t.Fatalf("ActiveQuestion() = %d, %v; want 3, true", idx, ok)
	}

	// Question 3 is answered with option 2.
	s.Update(answer(2))
	if !first.Solved || second.Solved {
		t.Fatalf("solved flags = %v, %v; want true, false", first.Solved, second.Solved)
	}

	s.Update(Frame{})
	if _, idx, ok := s.ActiveQuestion(); !ok || idx != 1 {
		t.Fatalf("ActiveQuestion() = %d, %v; want 1, true", idx, ok)
	}
}

func TestWorldFrozenDuringChallenge(t *testing.T) {
	zone := &level.ChallengeZone{Rect: level.Rect{X: 20, Y: 60, W: 50, H: 40}, Question: 0}
	s := newTestSession(t, zone)
	s.Update(Frame{})

	before := s.Player.Body
	camera := s.CameraX
	s.Update(Frame{Right: true, Events: []Event{{Kind: Jump}}})
	s.Update(Frame{Left: true})

	if s.Player.Body != before {
		t.Errorf("player moved during challenge: %+v -> %+v", before, s.Player.Body)
	}
	if s.CameraX != camera {
		t.Errorf("camera moved during challenge: %v -> %v", camera, s.CameraX)
	}
}

func TestAnswerWhilePlayingIsIgnored(t *testing.T) {
	zone := &level.ChallengeZone{Rect: level.Rect{X: 500, Y: 60, W: 50, H: 40}, Question: 0}
	s := newTestSession(t, zone)

	s.Update(answer(1))
	if s.State != Playing || zone.Solved || s.Feedback != "" {
		t.Errorf("answer while playing changed state: %v solved=%v feedback=%q", s.State, zone.Solved, s.Feedback)
	}
}

func TestJumpWhilePlaying(t *testing.T) {
	s := newTestSession(t)
	s.Update(Frame{})
	if !s.Player.Grounded {
		t.Fatal("player should be grounded on the floor")
	}

	s.Update(Frame{Events: []Event{{Kind: Jump}}})
	if s.Player.Grounded {
		t.Error("player still grounded after jumping")
	}
	if s.Player.VelY >= 0 {
		t.Errorf("VelY = %v, want upward", s.Player.VelY)
	}
}

func TestQuit(t *testing.T) {
	s := newTestSession(t)
	if s.Update(Frame{}) {
		t.Fatal("Update() reported quit without a quit event")
	}
	if !s.Update(Frame{Events: []Event{{Kind: Quit}}}) {
		t.Fatal("Update() did not report quit")
	}
}

func TestCameraOffset(t *testing.T) {
	if got := CameraOffset(500, cameraLead); got != 400 {
		t.Errorf("CameraOffset(500) = %v, want 400", got)
	}

	s := newTestSession(t)
	s.Player.Rect.X = 495
	s.Update(Frame{Right: true})
	if s.CameraX != 400 {
		t.Errorf("CameraX = %v, want 400", s.CameraX)
	}
}
