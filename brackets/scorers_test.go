package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func goal(player, team string) *models.MatchEvent {
	ev := &models.MatchEvent{Type: models.EventTypeGoal}
	if player != "" {
		ev.PlayerName = strPtr(player)
	}
	if team != "" {
		ev.TeamName = strPtr(team)
	}
	return ev
}

func TestTopScorers(t *testing.T) {
	events := []*models.MatchEvent{
		goal("Alice", "TeamA"),
		goal("Alice", "TeamA"),
		goal("Bob", "TeamB"),
	}

	got := TopScorers(events, 0)

	assert.Equal(t, []models.ScorerEntry{
		{PlayerName: "Alice", TeamName: "TeamA", Goals: 2},
		{PlayerName: "Bob", TeamName: "TeamB", Goals: 1},
	}, got)
}

func TestTopScorers_Defaults(t *testing.T) {
	events := []*models.MatchEvent{
		goal("", "TeamA"),
		goal("Carl", ""),
		goal("Carl", "TeamC"),
		{Type: "yellow_card", PlayerName: strPtr("Carl")},
		nil,
	}

	got := TopScorers(events, 0)

	assert.Equal(t, []models.ScorerEntry{
		{PlayerName: "Carl", TeamName: FreeAgentTeam, Goals: 2},
		{PlayerName: UnknownPlayer, TeamName: "TeamA", Goals: 1},
	}, got)
}

func TestTopScorers_TiesKeepFirstSeenOrderAndLimit(t *testing.T) {
	events := []*models.MatchEvent{
		goal("Dana", "X"),
		goal("Eve", "Y"),
		goal("Finn", "Z"),
		goal("Finn", "Z"),
	}

	all := TopScorers(events, 0)
	assert.Equal(t, []string{"Finn", "Dana", "Eve"}, []string{all[0].PlayerName, all[1].PlayerName, all[2].PlayerName})

	limited := TopScorers(events, 2)
	assert.Len(t, limited, 2)
	assert.Equal(t, "Finn", limited[0].PlayerName)
	assert.Equal(t, "Dana", limited[1].PlayerName)

	assert.Empty(t, TopScorers(nil, 5))
}
