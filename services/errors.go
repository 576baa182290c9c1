package services

import "errors"

var (
	// ErrEmptyFeedback is returned when the feedback body is blank
	ErrEmptyFeedback = errors.New("please enter some feedback before submitting")
	// ErrInvalidFeedback wraps form validation messages
	ErrInvalidFeedback = errors.New("validation failed")
	// ErrClassification is returned when the classifier fails; nothing is stored
	ErrClassification = errors.New("could not analyse feedback, please retry")
	// ErrStorage is returned when the store rejects a new record
	ErrStorage = errors.New("could not save, please retry")
	// ErrLoad is returned when the stored records cannot be read
	ErrLoad = errors.New("could not load feedback")
)
