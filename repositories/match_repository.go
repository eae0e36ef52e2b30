package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrBracketNodeNotFound    = errors.New("bracket node not found")
	ErrMatchAlreadyTerminal   = errors.New("match already has a final result")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrDuplicateBracketNode   = errors.New("bracket node already exists for this tournament")
)

// scheduleLockNamespace separates schedule advisory locks from other users of pg_advisory_xact_lock.
const scheduleLockNamespace = 7301

const matchColumns = `
	id, tournament_id, team_a_id, team_b_id, score_a, score_b, status, winner_id,
	round, order_in_round, round_label, node_id, next_node_id, next_slot,
	venue, match_date, time_label, completed_at, created_at`

type MatchRepository interface {
	LockTournamentSchedule(ctx context.Context, exec SQLExecutor, tournamentID int) error
	BulkCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, statuses []models.MatchStatus) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error
	UpdateLiveScore(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int) error
	FillNextSlot(ctx context.Context, exec SQLExecutor, tournamentID int, nodeID string, teamID int) (models.Slot, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

// LockTournamentSchedule serializes schedule generation per tournament until the transaction ends.
func (r *postgresMatchRepository) LockTournamentSchedule(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	if exec == nil {
		return errors.New("advisory lock requires a transaction")
	}
	_, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, scheduleLockNamespace, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to lock schedule of tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) BulkCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := executorOr(exec, r.db)

	stmt, err := executor.PrepareContext(ctx, `
		INSERT INTO matches
			(tournament_id, team_a_id, team_b_id, score_a, score_b, status, winner_id,
			 round, order_in_round, round_label, node_id, next_node_id, next_slot,
			 venue, match_date, time_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at`)
	if err != nil {
		return fmt.Errorf("BulkCreate failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		var nodeID, nextNodeID, nextSlot sql.NullString
		if m.Bracket != nil {
			nodeID = sql.NullString{String: m.Bracket.NodeID, Valid: true}
			nextNodeID = sql.NullString{String: m.Bracket.NextNodeID, Valid: true}
			nextSlot = sql.NullString{String: string(m.Bracket.NextSlot), Valid: m.Bracket.NextSlot != ""}
		}
		err = stmt.QueryRowContext(ctx,
			m.TournamentID, m.TeamAID, m.TeamBID, m.ScoreA, m.ScoreB, m.Status, m.WinnerID,
			m.Round, m.OrderInRound, m.RoundLabel, nodeID, nextNodeID, nextSlot,
			m.Venue, m.MatchDate, m.TimeLabel,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("BulkCreate failed for round %d match %d: %w", m.Round, m.OrderInRound, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error) {
	executor := executorOr(exec, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := executorOr(exec, r.db)
	row := executor.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := executorOr(exec, r.db)
	row := executor.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
	return scanMatch(row)
}

// ListByTournament returns the tournament's matches; an empty statuses slice means all of them.
func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, statuses []models.MatchStatus) ([]*models.Match, error) {
	executor := executorOr(exec, r.db)

	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(values))
	}
	query += ` ORDER BY round ASC, order_in_round ASC, id ASC`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error {
	executor := executorOr(exec, r.db)
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, status = $3, winner_id = $4, completed_at = $5
		WHERE id = $6`
	result, err := executor.ExecContext(ctx, query, scoreA, scoreB, status, winnerID, completedAt, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateLiveScore(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int) error {
	executor := executorOr(exec, r.db)
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, status = $3
		WHERE id = $4 AND status NOT IN ($5, $6)`
	result, err := executor.ExecContext(ctx, query, scoreA, scoreB, models.MatchStatusLive, id,
		models.MatchStatusCompleted, models.MatchStatusFinished)
	if err != nil {
		return r.handleMatchError(err)
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err == nil {
		return nil
	}
	if _, getErr := r.GetByID(ctx, executor, id); getErr != nil {
		return getErr
	}
	return ErrMatchAlreadyTerminal
}

// FillNextSlot puts teamID into the first empty slot (A, then B) of the
// tournament's match at nodeID with a single conditional UPDATE, so two
// winners advancing at the same moment cannot overwrite each other. It
// returns "" without error when teamID already sits in the node.
func (r *postgresMatchRepository) FillNextSlot(ctx context.Context, exec SQLExecutor, tournamentID int, nodeID string, teamID int) (models.Slot, error) {
	executor := executorOr(exec, r.db)

	// В SET справа всегда старые значения строки.
	query := `
		UPDATE matches
		SET team_a_id = CASE WHEN team_a_id IS NULL THEN $3 ELSE team_a_id END,
		    team_b_id = CASE WHEN team_a_id IS NOT NULL AND team_b_id IS NULL THEN $3 ELSE team_b_id END
		WHERE tournament_id = $1 AND node_id = $2
		  AND (team_a_id IS NULL OR team_b_id IS NULL)
		  AND team_a_id IS DISTINCT FROM $3
		  AND team_b_id IS DISTINCT FROM $3
		RETURNING team_a_id`

	var newTeamA sql.NullInt64
	err := executor.QueryRowContext(ctx, query, tournamentID, nodeID, teamID).Scan(&newTeamA)
	if err == nil {
		if newTeamA.Valid && int(newTeamA.Int64) == teamID {
			return models.SlotA, nil
		}
		return models.SlotB, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", r.handleMatchError(err)
	}

	// Ничего не обновлено: либо узла нет, либо победитель уже стоит, либо оба слота заняты.
	var teamA, teamB sql.NullInt64
	err = executor.QueryRowContext(ctx,
		`SELECT team_a_id, team_b_id FROM matches WHERE tournament_id = $1 AND node_id = $2`,
		tournamentID, nodeID,
	).Scan(&teamA, &teamB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s in tournament %d", ErrBracketNodeNotFound, nodeID, tournamentID)
		}
		return "", err
	}
	if (teamA.Valid && int(teamA.Int64) == teamID) || (teamB.Valid && int(teamB.Int64) == teamID) {
		return "", nil
	}
	return "", fmt.Errorf("%w: node %s holds teams %d and %d", brackets.ErrSlotsOccupied, nodeID, teamA.Int64, teamB.Int64)
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m                            models.Match
		nodeID, nextNodeID, nextSlot sql.NullString
		completedAt                  sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.TeamAID, &m.TeamBID, &m.ScoreA, &m.ScoreB, &m.Status, &m.WinnerID,
		&m.Round, &m.OrderInRound, &m.RoundLabel, &nodeID, &nextNodeID, &nextSlot,
		&m.Venue, &m.MatchDate, &m.TimeLabel, &completedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if nodeID.Valid {
		m.Bracket = &models.BracketLink{
			NodeID:     nodeID.String,
			NextNodeID: nextNodeID.String,
			NextSlot:   models.Slot(nextSlot.String),
		}
	}
	if completedAt.Valid {
		t := completedAt.Time
		m.CompletedAt = &t
	}
	return &m, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "matches_tournament_node_key" {
				return ErrDuplicateBracketNode
			}
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_team_a_id_fkey", "matches_team_b_id_fkey", "matches_winner_id_fkey":
				return ErrMatchTeamInvalid
			}
		}
	}
	return err
}
