package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	// MatchStatusFinished is written by older clients; treated the same as completed.
	MatchStatusFinished MatchStatus = "finished"
)

// IsTerminal reports whether the match has a final result.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusFinished
}

// Slot определяет, какую позицию следующего матча занимает победитель.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

// FinalSentinel is the NextNodeID of the final: no successor.
const FinalSentinel = "FINAL"

// BracketLink is present only on knockout matches.
type BracketLink struct {
	NodeID     string `json:"node_id" db:"node_id"`
	NextNodeID string `json:"next_node_id" db:"next_node_id"`
	NextSlot   Slot   `json:"next_slot" db:"next_slot"`
}

// IsFinal reports whether this node is the root of the bracket.
func (b *BracketLink) IsFinal() bool {
	return b != nil && b.NextNodeID == FinalSentinel
}

// Match - центральная сущность расписания. Bracket == nil означает матч лиги.
type Match struct {
	ID           int          `json:"id" db:"id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	TeamAID      *int         `json:"team_a_id" db:"team_a_id"`
	TeamBID      *int         `json:"team_b_id" db:"team_b_id"`
	ScoreA       *int         `json:"score_a" db:"score_a"`
	ScoreB       *int         `json:"score_b" db:"score_b"`
	Status       MatchStatus  `json:"status" db:"status"`
	WinnerID     *int         `json:"winner_id,omitempty" db:"winner_id"`
	Round        int          `json:"round" db:"round"`
	OrderInRound int          `json:"order_in_round" db:"order_in_round"`
	RoundLabel   string       `json:"round_label" db:"round_label"`
	Bracket      *BracketLink `json:"bracket,omitempty" db:"-"`
	Venue        string       `json:"venue" db:"venue"`
	MatchDate    time.Time    `json:"match_date" db:"match_date"`
	TimeLabel    string       `json:"time_label" db:"time_label"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

func (m *Match) IsKnockout() bool {
	return m.Bracket != nil
}

// HasSuccessor reports whether the winner of m advances into another match.
func (m *Match) HasSuccessor() bool {
	return m.Bracket != nil && m.Bracket.NextNodeID != "" && m.Bracket.NextNodeID != FinalSentinel
}

// Scores returns both scores, absent values read as zero.
func (m *Match) Scores() (int, int) {
	var a, b int
	if m.ScoreA != nil {
		a = *m.ScoreA
	}
	if m.ScoreB != nil {
		b = *m.ScoreB
	}
	return a, b
}
