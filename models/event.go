package models

import "time"

const EventTypeGoal = "goal"

// MatchEvent is a live-scoring event. Only goals are read by the engine.
type MatchEvent struct {
	ID         int       `json:"id" db:"id"`
	MatchID    int       `json:"match_id" db:"match_id"`
	Type       string    `json:"type" db:"type"`
	PlayerName *string   `json:"player_name,omitempty" db:"player_name"`
	TeamID     *int      `json:"team_id,omitempty" db:"team_id"`
	TeamName   *string   `json:"team_name,omitempty" db:"-"`
	Minute     *int      `json:"minute,omitempty" db:"minute"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
