package services

import "errors"

var (
	// ErrLearnerNotFound is returned when no learner matches the given UID.
	ErrLearnerNotFound = errors.New("learner not found")
	// ErrQuestionNotFound is returned when a question ID does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSubjectNotFound is returned when a subject ID does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrStoryNotFound is returned when a story or chapter does not exist.
	ErrStoryNotFound = errors.New("story not found")
	// ErrBadgeNotFound is returned when a rule references an unseeded badge.
	ErrBadgeNotFound = errors.New("badge not found")
)
