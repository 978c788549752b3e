package apperror

import "errors"

var (
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrNoActiveGames = errors.New("no active games")
)
