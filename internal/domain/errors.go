package domain

import "errors"

var (
	// ErrOracle covers transport failures, empty responses, unparseable
	// responses and ID mismatches from the classification oracle.
	ErrOracle = errors.New("oracle classification failed")

	// ErrNoOpinions is returned when an aggregation is requested over an
	// empty opinion set.
	ErrNoOpinions = errors.New("opinion set is empty")

	// ErrDuplicateOpinion is returned when a batch carries the same
	// opinion ID twice. IDs must be unique within a batch.
	ErrDuplicateOpinion = errors.New("duplicate opinion id in batch")

	ErrUserNotFound         = errors.New("user not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTokenNotFound        = errors.New("auth token not found")
	ErrInvalidCredentials   = errors.New("incorrect login details")
	ErrEmailOrUsernameTaken = errors.New("email or username already in use")
)
