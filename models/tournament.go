package models

import "time"

type TournamentFormat string

const (
	FormatKnockout TournamentFormat = "knockout"
	FormatLeague   TournamentFormat = "league"
)

// Tournament представляет турнир.
type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	SportID   int              `json:"sport_id" db:"sport_id"`
	Format    TournamentFormat `json:"format" db:"format"`
	StartDate time.Time        `json:"start_date" db:"start_date"`
	// Legs: 1 - однокруговой турнир, 2 - двухкруговой. Only used by the league format.
	Legs      int       `json:"legs" db:"legs"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LegCount returns the number of legs for a league, defaulting to one.
func (t *Tournament) LegCount() int {
	if t.Legs == 2 {
		return 2
	}
	return 1
}
