package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"golang.org/x/sync/errgroup"
)

var terminalStatuses = []models.MatchStatus{models.MatchStatusCompleted, models.MatchStatusFinished}

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error)
	// GetTopScorers ranks goal scorers; limit <= 0 returns everyone.
	GetTopScorers(ctx context.Context, tournamentID int, limit int) ([]models.ScorerEntry, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	eventRepo      repositories.MatchEventRepository
	logger         *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.MatchEventRepository,
	logger *slog.Logger,
) StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
		logger:         logger,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	var (
		teams   []*models.Team
		matches []*models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load teams of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID, terminalStatuses)
		if err != nil {
			return fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	standings := brackets.ComputeStandings(teams, matches)
	s.logger.DebugContext(ctx, "standings computed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("teams", len(standings)),
		slog.Int("matches", len(matches)))
	return standings, nil
}

func (s *standingsService) GetTopScorers(ctx context.Context, tournamentID int, limit int) ([]models.ScorerEntry, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
	}
	if len(matches) == 0 {
		return []models.ScorerEntry{}, nil
	}

	matchIDs := make([]int, len(matches))
	for i, m := range matches {
		matchIDs[i] = m.ID
	}
	events, err := s.eventRepo.ListGoalsByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals of tournament %d: %w", tournamentID, err)
	}
	return brackets.TopScorers(events, limit), nil
}
