package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-engine/middleware"
	"github.com/Dosada05/tournament-engine/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// GetByIDHandler godoc
// @Summary Получить матч по ID
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{} "Матч найден"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /api/v1/matches/{matchID} [get]
func (h *MatchHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CompleteHandler godoc
// @Summary Завершить матч
// @Tags matches
// @Description Фиксирует итоговый счёт и продвигает победителя по сетке. Повторный вызов с тем же победителем ничего не меняет.
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body services.ScoreInput true "Итоговый счёт"
// @Success 200 {object} map[string]interface{} "Результат"
// @Failure 400 {object} map[string]string "Некорректный счёт"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Ничья в плей-офф или другой победитель"
// @Security BearerAuth
// @Router /api/v1/matches/{matchID}/complete [post]
func (h *MatchHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.CompleteMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		slog.InfoContext(r.Context(), "match result submitted", slog.Int("match_id", matchID), slog.Int("user_id", userID))
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScoreHandler godoc
// @Summary Обновить счёт идущего матча
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body services.ScoreInput true "Текущий счёт"
// @Success 200 {object} map[string]interface{} "Матч обновлён"
// @Failure 400 {object} map[string]string "Некорректный счёт"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Матч уже завершён"
// @Security BearerAuth
// @Router /api/v1/matches/{matchID}/score [patch]
func (h *MatchHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateLiveScore(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
