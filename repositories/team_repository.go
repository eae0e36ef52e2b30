package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/tournament-engine/models"
)

// TeamRepository reads the roster owned by the team-management collaborator.
type TeamRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

// ListByTournament returns registered teams in registration order.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.sport_id, t.created_at
		FROM tournament_teams tt
		JOIN teams t ON t.id = tt.team_id
		WHERE tt.tournament_id = $1
		ORDER BY tt.registered_at ASC, t.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.Name, &t.SportID, &t.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}
