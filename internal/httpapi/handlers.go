package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trivia-app/internal/trivia"
)

const defaultRecentLimit = 10

func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	var request startGameRequest
	if r.ContentLength != 0 {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
	}

	view, err := a.service.StartGame(r.Context(), request.Player)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGameResponse(view))
}

func (a *API) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	view, err := a.service.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(view))
}

func (a *API) HandleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	defer r.Body.Close()

	var request answerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	choice := trivia.NoChoice
	if request.Choice != nil {
		if *request.Choice < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "choice must be between 0 and 3, or null"})
			return
		}
		choice = trivia.Choice(*request.Choice)
	}

	gameID := chi.URLParam(r, "gameID")
	var (
		answer trivia.AnswerResult
		err    error
	)
	if request.Question != nil {
		answer, err = a.service.SubmitAnswerAt(r.Context(), gameID, *request.Question, choice)
	} else {
		answer, err = a.service.SubmitAnswer(r.Context(), gameID, choice)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := answerResponse{
		Outcome: answer.Outcome.Kind.String(),
		Correct: answer.Outcome.Correct,
		Total:   answer.Outcome.Total,
		Game:    toGameResponse(answer.Game),
	}
	if result, ok := answer.Outcome.Result(); ok {
		response.Result = &result
	}

	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	gameID := chi.URLParam(r, "gameID")
	result, err := a.service.GetResult(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{
		GameID:       gameID,
		NumCorrect:   result.NumCorrect,
		NumQuestions: result.NumQuestions,
		Summary:      result.Summary(),
		ShareText:    result.ShareText(),
		ShareType:    trivia.ShareMIMEType,
	})
}

func (a *API) HandleEndGame(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	if err := a.service.EndGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleRecentGames(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultRecentLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	games, err := a.service.RecentGames(r.Context(), limit)
	if err != nil {
		a.logger.Error("failed to list recent games", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list recent games"})
		return
	}

	writeJSON(w, http.StatusOK, recentGamesResponse{Games: games})
}

func (a *API) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trivia service unavailable"})
		return
	}

	stats, err := a.service.PlayerStats(r.Context(), strings.TrimSpace(chi.URLParam(r, "player")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := playerStatsResponse{
		Player: stats.Player,
		Played: stats.Played,
		Won:    stats.Won,
		Lost:   stats.Lost,
	}
	if !stats.LastPlayedAt.IsZero() {
		lastPlayed := stats.LastPlayedAt
		response.LastPlayedAt = &lastPlayed
	}

	writeJSON(w, http.StatusOK, response)
}
