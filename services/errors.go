package services

import (
	"errors"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/repositories"
)

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Ошибки валидации: отклоняются до любой записи.
	ErrInsufficientTeams   = brackets.ErrInsufficientTeams
	ErrInvalidTeamCount    = brackets.ErrInvalidTeamCount
	ErrDuplicateTeam       = brackets.ErrDuplicateTeam
	ErrUnsupportedFormat   = brackets.ErrUnsupportedFormat
	ErrNegativeScore       = brackets.ErrNegativeScore
	ErrTeamNotInTournament = errors.New("team is not registered for this tournament")

	// Конфликты состояния: решаются организатором вручную.
	ErrDrawNotAllowed        = brackets.ErrDrawNotAllowed
	ErrMatchNotReady         = brackets.ErrMatchNotReady
	ErrWinnerConflict        = errors.New("match is already completed with a different winner")
	ErrMatchAlreadyCompleted = repositories.ErrMatchAlreadyTerminal

	// Не найдено.
	ErrTournamentNotFound  = repositories.ErrTournamentNotFound
	ErrMatchNotFound       = repositories.ErrMatchNotFound
	ErrBracketNodeNotFound = repositories.ErrBracketNodeNotFound
)
