package domain

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("invalid poll")

var (
	ErrEmptyTitle            = fmt.Errorf("%w: title is required", ErrValidation)
	ErrNotEnoughParticipants = fmt.Errorf("%w: need at least %d registered participants", ErrValidation, MinParticipants)
	ErrActivePollExists      = fmt.Errorf("%w: an active poll already exists", ErrValidation)
	ErrInvalidQuestionCount  = fmt.Errorf("%w: poll must have %d-%d questions", ErrValidation, MinQuestions, MaxQuestions)
	ErrInvalidChoiceCount    = fmt.Errorf("%w: each question must have %d-%d choices", ErrValidation, MinChoices, MaxChoices)
	ErrInvalidDeadline       = fmt.Errorf("%w: deadline must be a positive number of minutes within range", ErrValidation)
)

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrPollNotActive     = errors.New("poll is not active")
	ErrUnregisteredVoter = errors.New("user not registered")
	ErrDuplicateVote     = errors.New("already voted this question")
	ErrMalformedVote     = errors.New("invalid vote reference")
	ErrUnknownChoice     = errors.New("choice does not belong to this poll")
	ErrGenerator         = errors.New("question generator failed")
)
