package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/tournament-engine/models"
)

type VenueRepository interface {
	List(ctx context.Context) ([]models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM venues ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		var v models.Venue
		if scanErr := rows.Scan(&v.ID, &v.Name); scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
