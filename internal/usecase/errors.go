package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrComputationInFlight rejects a score computation while another
	// run for the same matchweek is still in progress.
	ErrComputationInFlight = errors.New("score computation already in progress")
	// ErrNoMatches and ErrNoSquads report a matchweek that is not ready
	// to be scored; nothing is written when either fires.
	ErrNoMatches = errors.New("matchweek has no matches")
	ErrNoSquads  = errors.New("matchweek has no squads")
)
