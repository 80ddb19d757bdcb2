package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trivia-app/internal/trivia"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trivia.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
	case errors.Is(err, trivia.ErrInvalidPlayer):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player is required"})
	case errors.Is(err, trivia.ErrChoiceOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "choice must be between 0 and 3, or null"})
	case errors.Is(err, trivia.ErrStaleQuestion):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "answer is for a question that is no longer shown"})
	case errors.Is(err, trivia.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func toGameResponse(view trivia.GameView) gameResponse {
	response := gameResponse{
		GameID:  view.GameID,
		Player:  view.Player,
		State:   view.State.String(),
		Correct: view.Correct,
		Total:   view.Total,
	}
	if view.Question != nil {
		response.Question = &questionResponse{
			Number:  view.Question.Number,
			Total:   view.Question.Total,
			Title:   view.Question.Title,
			Text:    view.Question.Text,
			Answers: append([]string(nil), view.Question.Answers[:]...),
		}
	}
	return response
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
