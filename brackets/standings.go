package brackets

import (
	"sort"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
	PointsForLoss = 0

	// FormLength bounds the recent results kept per team.
	FormLength = 5
)

// ComputeStandings folds the terminal matches into a ranked table. Rows are
// ordered by points, goal difference, goals for and finally team ID. Form is
// the last FormLength results, oldest first.
func ComputeStandings(teams []*models.Team, matches []*models.Match) []models.Standing {
	rows := make(map[int]*models.Standing, len(teams))
	order := make([]*models.Standing, 0, len(teams))
	for _, t := range teams {
		if t == nil {
			continue
		}
		if _, exists := rows[t.ID]; exists {
			continue
		}
		row := &models.Standing{TeamID: t.ID, TeamName: t.Name, Form: []models.FormResult{}}
		rows[t.ID] = row
		order = append(order, row)
	}

	for _, m := range chronological(matches) {
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		scoreA, scoreB := m.Scores()
		if rowA, ok := rows[*m.TeamAID]; ok {
			applyResult(rowA, scoreA, scoreB)
		}
		if rowB, ok := rows[*m.TeamBID]; ok {
			applyResult(rowB, scoreB, scoreA)
		}
	}

	for _, row := range order {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		if len(row.Form) > FormLength {
			row.Form = append([]models.FormResult(nil), row.Form[len(row.Form)-FormLength:]...)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})

	standings := make([]models.Standing, len(order))
	for i, row := range order {
		row.Rank = i + 1
		standings[i] = *row
	}
	return standings
}

func applyResult(row *models.Standing, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Won++
		row.Points += PointsForWin
		row.Form = append(row.Form, models.FormWin)
	case scored == conceded:
		row.Drawn++
		row.Points += PointsForDraw
		row.Form = append(row.Form, models.FormDraw)
	default:
		row.Lost++
		row.Points += PointsForLoss
		row.Form = append(row.Form, models.FormLoss)
	}
}

// chronological keeps terminal matches only, ordered by when they were played.
func chronological(matches []*models.Match) []*models.Match {
	done := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m != nil && m.Status.IsTerminal() {
			done = append(done, m)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		ti, tj := playedAt(done[i]), playedAt(done[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return done[i].ID < done[j].ID
	})
	return done
}

func playedAt(m *models.Match) time.Time {
	if m.CompletedAt != nil {
		return *m.CompletedAt
	}
	return m.MatchDate
}
