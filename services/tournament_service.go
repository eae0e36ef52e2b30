package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
)

type TournamentDetails struct {
	*models.Tournament
	Teams []*models.Team `json:"teams"`
}

type TournamentService struct {
	repo     repositories.TournamentRepository
	teamRepo repositories.TeamRepository
}

func NewTournamentService(repo repositories.TournamentRepository, teamRepo repositories.TeamRepository) *TournamentService {
	return &TournamentService{repo: repo, teamRepo: teamRepo}
}

// GetTournament returns the tournament with its registered teams in registration order.
func (s *TournamentService) GetTournament(ctx context.Context, id int) (*TournamentDetails, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams of tournament %d: %w", id, err)
	}
	if teams == nil {
		teams = []*models.Team{}
	}
	return &TournamentDetails{Tournament: tournament, Teams: teams}, nil
}
