package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/storage"
	"github.com/jonboulle/clockwork"
)

type GenerateScheduleInput struct {
	TournamentID int        `json:"-"`
	TeamIDs      []int      `json:"team_ids"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	Venues       []string   `json:"venues,omitempty"`
}

type BracketService interface {
	// GenerateSchedule replaces the tournament's match set with a freshly generated one.
	GenerateSchedule(ctx context.Context, input GenerateScheduleInput) ([]*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error)
}

type bracketService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	venueRepo      repositories.VenueRepository
	matchRepo      repositories.MatchRepository
	archive        storage.ScheduleArchive
	notifier       Notifier
	clock          clockwork.Clock
	logger         *slog.Logger
}

// NewBracketService wires schedule generation. archive and notifier may be nil.
func NewBracketService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	matchRepo repositories.MatchRepository,
	archive storage.ScheduleArchive,
	notifier Notifier,
	clock clockwork.Clock,
	logger *slog.Logger,
) BracketService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		venueRepo:      venueRepo,
		matchRepo:      matchRepo,
		archive:        archive,
		notifier:       notifier,
		clock:          clock,
		logger:         logger,
	}
}

func (s *bracketService) GenerateSchedule(ctx context.Context, input GenerateScheduleInput) ([]*models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", input.TournamentID, err)
	}

	teamIDs, err := s.resolveTeams(ctx, tournament.ID, input.TeamIDs)
	if err != nil {
		return nil, err
	}

	startDate := tournament.StartDate
	if input.StartDate != nil && !input.StartDate.IsZero() {
		startDate = *input.StartDate
	}
	if startDate.IsZero() {
		startDate = s.clock.Now()
	}

	generator, err := brackets.NewGenerator(tournament.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", err, tournament.Format)
	}

	s.logger.InfoContext(ctx, "generating schedule",
		slog.Int("tournament_id", tournament.ID),
		slog.String("generator", generator.GetName()),
		slog.Int("teams", len(teamIDs)))

	seed := uint64(s.clock.Now().UnixNano())
	generated, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		Tournament: tournament,
		TeamIDs:    teamIDs,
		StartDate:  startDate,
		Venues:     s.resolveVenues(ctx, input.Venues),
		Rand:       rand.New(rand.NewPCG(seed, uint64(tournament.ID))),
		Logger:     s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for tournament %d: %w", tournament.ID, err)
	}

	matches := make([]*models.Match, len(generated))
	for i, bm := range generated {
		matches[i] = bm.ToMatch(tournament.ID)
	}

	var archived *storage.UploadResult
	txErr := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.LockTournamentSchedule(ctx, exec, tournament.ID); err != nil {
			return err
		}

		previous, err := s.matchRepo.ListByTournament(ctx, exec, tournament.ID, nil)
		if err != nil {
			return fmt.Errorf("failed to list previous schedule: %w", err)
		}
		if len(previous) > 0 {
			archived = s.archivePrevious(ctx, tournament.ID, previous)
		}

		deleted, err := s.matchRepo.DeleteByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to clear previous schedule: %w", err)
		}
		if deleted > 0 {
			s.logger.InfoContext(ctx, "previous schedule cleared", slog.Int("tournament_id", tournament.ID), slog.Int64("matches", deleted))
		}

		if err := s.matchRepo.BulkCreate(ctx, exec, matches); err != nil {
			return fmt.Errorf("failed to save schedule: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if archived != nil {
			if err := s.archive.Discard(ctx, archived.Key); err != nil {
				s.logger.WarnContext(ctx, "failed to discard schedule snapshot", slog.String("key", archived.Key), slog.Any("error", err))
			}
		}
		return nil, txErr
	}

	s.logger.InfoContext(ctx, "schedule saved", slog.Int("tournament_id", tournament.ID), slog.Int("matches", len(matches)))
	notifyTournament(s.notifier, tournament.ID, brackets.MessageBracketUpdated, matches)

	return matches, nil
}

func (s *bracketService) ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

// resolveTeams defaults to the registered roster and rejects teams outside it.
func (s *bracketService) resolveTeams(ctx context.Context, tournamentID int, requested []int) ([]int, error) {
	roster, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for tournament %d: %w", tournamentID, err)
	}

	if len(requested) == 0 {
		ids := make([]int, len(roster))
		for i, t := range roster {
			ids[i] = t.ID
		}
		return ids, nil
	}

	registered := make(map[int]struct{}, len(roster))
	for _, t := range roster {
		registered[t.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := registered[id]; !ok {
			return nil, fmt.Errorf("%w: team %d, tournament %d", ErrTeamNotInTournament, id, tournamentID)
		}
	}
	return requested, nil
}

func (s *bracketService) resolveVenues(ctx context.Context, names []string) []models.Venue {
	venues := make([]models.Venue, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			venues = append(venues, models.Venue{Name: trimmed})
		}
	}
	if len(venues) > 0 || s.venueRepo == nil {
		return venues
	}

	configured, err := s.venueRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load venues, falling back to TBD", slog.Any("error", err))
		return nil
	}
	return configured
}

// archivePrevious is best effort: a failed upload never blocks regeneration.
func (s *bracketService) archivePrevious(ctx context.Context, tournamentID int, previous []*models.Match) *storage.UploadResult {
	if s.archive == nil {
		return nil
	}
	result, err := s.archive.Archive(ctx, tournamentID, previous, s.clock.Now())
	if err != nil {
		s.logger.WarnContext(ctx, "failed to archive previous schedule", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil
	}
	s.logger.InfoContext(ctx, "previous schedule archived",
		slog.Int("tournament_id", tournamentID),
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return result
}
