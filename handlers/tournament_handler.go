package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-engine/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
	bracketService    services.BracketService
	standingsService  services.StandingsService
}

func NewTournamentHandler(
	ts *services.TournamentService,
	bs services.BracketService,
	ss services.StandingsService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		bracketService:    bs,
		standingsService:  ss,
	}
}

// GetByIDHandler godoc
// @Summary Получить турнир по ID
// @Tags tournaments
// @Description Возвращает турнир вместе с зарегистрированными командами.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Турнир найден"
// @Failure 400 {object} map[string]string "Некорректный ID"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /api/v1/tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	details, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": details}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateScheduleHandler godoc
// @Summary Сгенерировать расписание
// @Tags schedule
// @Description Строит сетку или круговой турнир по формату турнира и заменяет прежний набор матчей.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body services.GenerateScheduleInput false "Команды, дата старта и площадки"
// @Success 201 {object} map[string]interface{} "Матчи созданы"
// @Failure 400 {object} map[string]string "Ошибка запроса"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 422 {object} map[string]string "Неподходящее число команд"
// @Security BearerAuth
// @Router /api/v1/tournaments/{tournamentID}/schedule [post]
func (h *TournamentHandler) GenerateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateScheduleInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}
	input.TournamentID = tournamentID

	matches, err := h.bracketService.GenerateSchedule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatchesHandler godoc
// @Summary Список матчей турнира
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Матчи"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /api/v1/tournaments/{tournamentID}/matches [get]
func (h *TournamentHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.ListMatches(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler godoc
// @Summary Турнирная таблица
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Таблица"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /api/v1/tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopScorersHandler godoc
// @Summary Лучшие бомбардиры
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param limit query int false "Сколько игроков вернуть"
// @Success 200 {object} map[string]interface{} "Бомбардиры"
// @Failure 400 {object} map[string]string "Некорректный limit"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /api/v1/tournaments/{tournamentID}/scorers [get]
func (h *TournamentHandler) TopScorersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scorers, err := h.standingsService.GetTopScorers(r.Context(), tournamentID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit format: %q", raw)
	}
	if limit < 0 {
		return 0, errors.New("limit must not be negative")
	}
	return limit, nil
}
