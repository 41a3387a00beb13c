package quizui

import (
	"github.com/abhisek/studypal/internal/grader"
	"github.com/abhisek/studypal/internal/store"
)

// questionsLoadedMsg carries the generated quiz, or the failure.
type questionsLoadedMsg struct {
	Questions []store.Question
	Err       error
}

// verdictMsg carries one graded answer, or the failure.
type verdictMsg struct {
	Result grader.Result
	Err    error
}
