package exam

import (
	"errors"
	"fmt"
)

// MaxOptions is the number of distinct option letters (A..Z).
const MaxOptions = 26

// Errors returned when building rows.
var (
	// ErrInvalidOptionCount is returned when the option count is outside [2, MaxOptions]
	// or a question has more alternatives than letters exist.
	ErrInvalidOptionCount = errors.New("exam: invalid option count")

	// ErrDuplicateQuestion is returned when two questions share an ID or an ID is empty.
	ErrDuplicateQuestion = errors.New("exam: duplicate or empty question id")
)

// Option is one alternative of a question.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

// Question is a multiple-choice item. Options are listed in creation order,
// which is the unshuffled display order.
type Question struct {
	ID      string   `json:"id"`
	Options []Option `json:"options"`
}

// CorrectIndex returns the index of the first correct option, or -1 if the
// question has none.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// Letter returns the option letter for a zero-based display index.
func Letter(index int) string {
	if index < 0 || index >= MaxOptions {
		return "?"
	}
	return string(rune('A' + index))
}

// validateQuestions checks ids and option counts before a row is generated.
func validateQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d", ErrDuplicateQuestion, i)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) > MaxOptions {
			return fmt.Errorf("%w: question %q has %d options", ErrInvalidOptionCount, q.ID, len(q.Options))
		}
	}
	return nil
}
