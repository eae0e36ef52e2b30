package models

type FormResult string

const (
	FormWin  FormResult = "w"
	FormDraw FormResult = "d"
	FormLoss FormResult = "l"
)

// Standing is derived from completed matches on every request and never stored.
type Standing struct {
	Rank           int          `json:"rank"`
	TeamID         int          `json:"team_id"`
	TeamName       string       `json:"team_name"`
	Played         int          `json:"played"`
	Won            int          `json:"won"`
	Drawn          int          `json:"drawn"`
	Lost           int          `json:"lost"`
	GoalsFor       int          `json:"goals_for"`
	GoalsAgainst   int          `json:"goals_against"`
	GoalDifference int          `json:"goal_difference"`
	Points         int          `json:"points"`
	Form           []FormResult `json:"form"`
}

type ScorerEntry struct {
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	Goals      int    `json:"goals"`
}
