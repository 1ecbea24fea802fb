package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrAttemptNotFound       = errors.New("attempt not found")
	ErrAttemptCompleted      = errors.New("attempt already submitted")
	ErrNoAnswerSelected      = errors.New("no option selected")
	ErrAnswerOutOfRange      = errors.New("selected option out of range")
	ErrQuestionOutOfRange    = errors.New("question index out of range")
	ErrUnansweredQuestion    = errors.New("all questions must be answered before submitting")
	ErrNoQuestionsForSubject = errors.New("no questions available for subject")
	ErrInvalidProgress       = errors.New("progress must be between 0 and 100")
	ErrPathNotFound          = errors.New("learning path not found")
	ErrGoalNotFound          = errors.New("goal not found")
	ErrSessionNotFound       = errors.New("study session not found")
	ErrUnsupportedAIType     = errors.New("unsupported AI request type")
	ErrInvalidAIPayload      = errors.New("invalid AI request payload")
)
