package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

const (
	UnknownPlayer = "Unknown"
	FreeAgentTeam = "Free Agent"
)

// TopScorers counts goal events per player name. Ties keep first-seen order.
// A limit <= 0 returns every scorer.
func TopScorers(events []*models.MatchEvent, limit int) []models.ScorerEntry {
	index := make(map[string]int)
	entries := make([]models.ScorerEntry, 0)

	for _, ev := range events {
		if ev == nil || ev.Type != models.EventTypeGoal {
			continue
		}
		name := UnknownPlayer
		if ev.PlayerName != nil && *ev.PlayerName != "" {
			name = *ev.PlayerName
		}
		if i, ok := index[name]; ok {
			entries[i].Goals++
			continue
		}
		team := FreeAgentTeam
		if ev.TeamName != nil && *ev.TeamName != "" {
			team = *ev.TeamName
		}
		index[name] = len(entries)
		entries = append(entries, models.ScorerEntry{PlayerName: name, TeamName: team, Goals: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Goals > entries[j].Goals
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
