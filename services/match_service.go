package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/jonboulle/clockwork"
)

type ScoreInput struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

type AdvancedSlot struct {
	NodeID string      `json:"node_id"`
	Slot   models.Slot `json:"slot"`
}

type CompleteMatchResult struct {
	MatchID          int                `json:"match_id"`
	Status           models.MatchStatus `json:"status"`
	WinnerID         *int               `json:"winner_id"`
	AdvancedTo       *AdvancedSlot      `json:"advanced_to,omitempty"`
	AdvanceConflict  bool               `json:"advance_conflict,omitempty"`
	AlreadyCompleted bool               `json:"already_completed,omitempty"`
}

type MatchService interface {
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	// CompleteMatch records the final score and advances the winner of a knockout match.
	CompleteMatch(ctx context.Context, matchID int, input ScoreInput) (*CompleteMatchResult, error)
	UpdateLiveScore(ctx context.Context, matchID int, input ScoreInput) (*models.Match, error)
}

type matchService struct {
	tx        repositories.Transactor
	matchRepo repositories.MatchRepository
	notifier  Notifier
	clock     clockwork.Clock
	logger    *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	clock clockwork.Clock,
	logger *slog.Logger,
) MatchService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		tx:        tx,
		matchRepo: matchRepo,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return s.matchRepo.GetByID(ctx, nil, matchID)
}

func (s *matchService) CompleteMatch(ctx context.Context, matchID int, input ScoreInput) (*CompleteMatchResult, error) {
	scoreA, scoreB, err := validateScores(input)
	if err != nil {
		return nil, err
	}

	var (
		result *CompleteMatchResult
		match  *models.Match
	)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByIDForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}

		winnerID, err := brackets.ResolveWinner(m, scoreA, scoreB)
		if err != nil {
			return err
		}

		res := &CompleteMatchResult{MatchID: m.ID, WinnerID: winnerID}

		if m.Status.IsTerminal() {
			// Повторный вызов: допустим только с тем же победителем.
			if !brackets.SameWinner(m.WinnerID, winnerID) {
				return fmt.Errorf("%w: match %d", ErrWinnerConflict, m.ID)
			}
			res.Status = m.Status
			res.WinnerID = m.WinnerID
			res.AlreadyCompleted = true
		} else {
			completedAt := s.clock.Now()
			if err := s.matchRepo.UpdateResult(ctx, exec, m.ID, scoreA, scoreB, models.MatchStatusCompleted, winnerID, &completedAt); err != nil {
				return fmt.Errorf("failed to save result of match %d: %w", m.ID, err)
			}
			m.ScoreA, m.ScoreB = &scoreA, &scoreB
			m.Status = models.MatchStatusCompleted
			m.WinnerID = winnerID
			m.CompletedAt = &completedAt
			res.Status = models.MatchStatusCompleted
		}

		if m.HasSuccessor() && res.WinnerID != nil {
			if err := s.advanceWinner(ctx, exec, m, *res.WinnerID, res); err != nil {
				return err
			}
		}

		result = res
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyCompleted {
		s.logger.InfoContext(ctx, "match completed",
			slog.Int("match_id", match.ID),
			slog.Int("tournament_id", match.TournamentID),
			slog.Any("winner_id", result.WinnerID))
	}
	notifyTournament(s.notifier, match.TournamentID, brackets.MessageMatchUpdated, result)
	return result, nil
}

// advanceWinner fills the downstream slot. Both slots taken by other teams is
// reported on the result, not returned: the completed score must still stick.
func (s *matchService) advanceWinner(ctx context.Context, exec repositories.SQLExecutor, m *models.Match, winnerID int, res *CompleteMatchResult) error {
	next := m.Bracket.NextNodeID
	slot, err := s.matchRepo.FillNextSlot(ctx, exec, m.TournamentID, next, winnerID)
	switch {
	case err == nil:
		if slot != "" {
			res.AdvancedTo = &AdvancedSlot{NodeID: next, Slot: slot}
		}
		return nil
	case errors.Is(err, brackets.ErrSlotsOccupied):
		s.logger.WarnContext(ctx, "winner could not advance, next match is full",
			slog.Int("match_id", m.ID),
			slog.String("next_node_id", next),
			slog.Int("winner_id", winnerID),
			slog.Any("error", err))
		res.AdvanceConflict = true
		return nil
	default:
		return fmt.Errorf("failed to advance winner of match %d to %s: %w", m.ID, next, err)
	}
}

func (s *matchService) UpdateLiveScore(ctx context.Context, matchID int, input ScoreInput) (*models.Match, error) {
	scoreA, scoreB, err := validateScores(input)
	if err != nil {
		return nil, err
	}

	var updated *models.Match
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByIDForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			return fmt.Errorf("%w: match %d", ErrMatchNotReady, m.ID)
		}
		if err := s.matchRepo.UpdateLiveScore(ctx, exec, m.ID, scoreA, scoreB); err != nil {
			return err
		}
		m.ScoreA, m.ScoreB = &scoreA, &scoreB
		m.Status = models.MatchStatusLive
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyTournament(s.notifier, updated.TournamentID, brackets.MessageMatchUpdated, updated)
	return updated, nil
}

func validateScores(input ScoreInput) (int, int, error) {
	if input.ScoreA == nil || input.ScoreB == nil {
		return 0, 0, fmt.Errorf("%w: score_a and score_b are required", ErrValidationFailed)
	}
	if *input.ScoreA < 0 || *input.ScoreB < 0 {
		return 0, 0, ErrNegativeScore
	}
	return *input.ScoreA, *input.ScoreB, nil
}
