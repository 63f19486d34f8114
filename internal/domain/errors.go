package domain

import "errors"

// ErrProblemTooLarge is returned by the exact solver when either dimension
// of the problem (vehicle count or order count) exceeds the 7x7 size
// guard it can exhaustively search. It is a sentinel so callers can test
// for it with errors.Is instead of a type switch.
var ErrProblemTooLarge = errors.New("vrppd: problem exceeds exact solver size guard (max 7 vehicles, 7 orders)")
