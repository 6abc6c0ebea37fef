// Package quiz implements the exam-attempt state machine and scoring.
//
// A QuizState moves through two states: in progress (initial) and
// submitted (terminal). The reducer is pure — it never mutates its input —
// so persistence and transport layers can hold references to old states
// safely.
package quiz

import (
	"time"

	"github.com/mir-sim/backend/internal/models"
)

// Action is the tagged union dispatched through Reduce.
type Action interface {
	isAction()
}

// SelectAnswer toggles the selection for a question: selecting the order
// that is already selected clears it.
type SelectAnswer struct {
	QuestionNumber int
	SelectedOrder  int
}

// Navigate moves the current-question pointer. The question number is not
// bounds-checked; supplying a valid number is the caller's contract.
type Navigate struct {
	QuestionNumber int
}

// Submit marks the attempt terminal. Irreversible for this state instance.
type Submit struct{}

// Restore replaces the whole state, e.g. when resuming a persisted draft.
// It is the only action a submitted state does not ignore.
type Restore struct {
	State models.QuizState
}

// Tick decrements the countdown timer by one second, flooring at zero.
// A no-op when no timer is armed.
type Tick struct{}

func (SelectAnswer) isAction() {}
func (Navigate) isAction()     {}
func (Submit) isAction()       {}
func (Restore) isAction()      {}
func (Tick) isAction()         {}

// NewState builds a fresh in-progress attempt: every question number maps
// to no selection and the pointer sits on the first question.
func NewState(exam *models.Exam) models.QuizState {
	answers := make(map[int]*int, len(exam.Questions))
	for _, q := range exam.Questions {
		answers[q.Number] = nil
	}
	current := 1
	if len(exam.Questions) > 0 {
		current = exam.Questions[0].Number
	}
	return models.QuizState{
		ExamYear:        exam.Year,
		CurrentQuestion: current,
		Answers:         answers,
		Mode:            models.ModeExam,
		IsSubmitted:     false,
		StartedAt:       time.Now().UTC(),
		TimerSeconds:    nil,
	}
}

// Reduce applies one action and returns the next state. Mutating actions
// on a submitted state return the input unchanged; Restore always applies.
func Reduce(state models.QuizState, action Action) models.QuizState {
	switch a := action.(type) {
	case SelectAnswer:
		if state.IsSubmitted {
			return state
		}
		next := state
		next.Answers = cloneAnswers(state.Answers)
		if cur := state.Answers[a.QuestionNumber]; cur != nil && *cur == a.SelectedOrder {
			next.Answers[a.QuestionNumber] = nil
		} else {
			order := a.SelectedOrder
			next.Answers[a.QuestionNumber] = &order
		}
		return next

	case Navigate:
		if state.IsSubmitted {
			return state
		}
		next := state
		next.CurrentQuestion = a.QuestionNumber
		return next

	case Submit:
		if state.IsSubmitted {
			return state
		}
		next := state
		next.IsSubmitted = true
		next.Mode = models.ModeReview
		return next

	case Restore:
		return a.State

	case Tick:
		if state.IsSubmitted || state.TimerSeconds == nil {
			return state
		}
		next := state
		remaining := *state.TimerSeconds - 1
		if remaining < 0 {
			remaining = 0
		}
		next.TimerSeconds = &remaining
		return next
	}
	return state
}

func cloneAnswers(answers map[int]*int) map[int]*int {
	out := make(map[int]*int, len(answers))
	for k, v := range answers {
		if v == nil {
			out[k] = nil
			continue
		}
		order := *v
		out[k] = &order
	}
	return out
}
