package brackets

import "errors"

var (
	ErrInsufficientTeams = errors.New("at least 2 teams are required to generate a schedule")
	ErrInvalidTeamCount  = errors.New("knockout format requires a power-of-two team count (2, 4, 8, 16, 32, ...)")
	ErrDuplicateTeam     = errors.New("team list contains duplicates")
	ErrUnsupportedFormat = errors.New("unsupported tournament format")

	ErrDrawNotAllowed = errors.New("knockout matches cannot end in a draw")
	ErrNegativeScore  = errors.New("scores must not be negative")
	ErrMatchNotReady  = errors.New("match does not have both teams assigned yet")
)

// ErrSlotsOccupied means both slots of the downstream match hold other teams:
// a duplicate progression or a construction defect.
var ErrSlotsOccupied = errors.New("both slots of the next match are already occupied")
