// Package quiz holds the multiple-choice questions asked at challenge zones.
package quiz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// OptionCount is the number of answers offered for every question.
const OptionCount = 4

var ErrInvalidQuestion = errors.New("invalid question")

type Question struct {
	Prompt  string
	Options [OptionCount]string
	Correct int // 0-based index into Options
}

// IsCorrect reports whether the 0-based choice is the right answer.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.Correct
}

// Bank is the ordered, read-only list of questions for a session.
type Bank struct {
	questions []Question
}

func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty bank", ErrInvalidQuestion)
	}
	for i, q := range questions {
		if q.Prompt == "" {
			return nil, fmt.Errorf("%w: question %d has no prompt", ErrInvalidQuestion, i)
		}
		if q.Correct < 0 || q.Correct >= OptionCount {
			return nil, fmt.Errorf("%w: question %d correct index %d out of range", ErrInvalidQuestion, i, q.Correct)
		}
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Bank{questions: qs}, nil
}

func (b *Bank) Len() int { return len(b.questions) }

// At returns the question at index i. It panics on an out of range index,
// like a slice access; indices come from validated level data.
func (b *Bank) At(i int) Question { return b.questions[i] }

type questionFile struct {
	Questions []struct {
		Prompt  string   `yaml:"prompt"`
		Options []string `yaml:"options"`
		Correct int      `yaml:"correct"`
	} `yaml:"questions"`
}

// Load reads a YAML question bank from fsys.
func Load(fsys fs.FS, path string) (*Bank, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var file questionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	questions := make([]Question, 0, len(file.Questions))
	for i, raw := range file.Questions {
		if len(raw.Options) != OptionCount {
			return nil, fmt.Errorf("%w: question %d has %d options, want %d",
				ErrInvalidQuestion, i, len(raw.Options), OptionCount)
		}
		q := Question{Prompt: raw.Prompt, Correct: raw.Correct}
		copy(q.Options[:], raw.Options)
		questions = append(questions, q)
	}

	return NewBank(questions)
}
