package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/lib/pq"
)

type MatchEventRepository interface {
	ListGoalsByMatchIDs(ctx context.Context, matchIDs []int) ([]*models.MatchEvent, error)
}

type postgresMatchEventRepository struct {
	db *sql.DB
}

func NewPostgresMatchEventRepository(db *sql.DB) MatchEventRepository {
	return &postgresMatchEventRepository{db: db}
}

// ListGoalsByMatchIDs returns goal events of the given matches with the
// scoring team's name resolved, oldest first.
func (r *postgresMatchEventRepository) ListGoalsByMatchIDs(ctx context.Context, matchIDs []int) ([]*models.MatchEvent, error) {
	if len(matchIDs) == 0 {
		return []*models.MatchEvent{}, nil
	}

	ids := make([]int64, len(matchIDs))
	for i, id := range matchIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT e.id, e.match_id, e.type, e.player_name, e.team_id, t.name, e.minute, e.created_at
		FROM match_events e
		LEFT JOIN teams t ON t.id = e.team_id
		WHERE e.type = $1 AND e.match_id = ANY($2)
		ORDER BY e.created_at ASC, e.id ASC`

	rows, err := r.db.QueryContext(ctx, query, models.EventTypeGoal, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		var (
			ev       models.MatchEvent
			teamName sql.NullString
		)
		if scanErr := rows.Scan(&ev.ID, &ev.MatchID, &ev.Type, &ev.PlayerName, &ev.TeamID, &teamName, &ev.Minute, &ev.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		if teamName.Valid {
			name := teamName.String
			ev.TeamName = &name
		}
		events = append(events, &ev)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
