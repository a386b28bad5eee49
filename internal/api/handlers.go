package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/gameserver"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

type accountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type battleRequest struct {
	OpponentID string `json:"opponent_id"`
}

type battlesResponse struct {
	Battles []storage.BattleRecord `json:"battles"`
}

type opponentsResponse struct {
	Opponents []battle.Opponent `json:"opponents"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps a service error to a response. Unexpected errors are logged and
// reported as 500 without detail.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gameserver.ErrUnknownOpponent):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameserver.ErrNoActivePet), errors.Is(err, gameserver.ErrNoBattleAvailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// readJSON decodes a bounded request body into v.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	acct, err := h.accounts.Create(r.Context(), req.Username, req.Password)
	if errors.Is(err, storage.ErrAccountExists) {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("account created",
		zap.String("player_id", acct.ID),
		zap.String("username", acct.Username),
	)
	writeJSON(w, http.StatusCreated, accountResponse{ID: acct.ID, Username: acct.Username})
}

func (h *handler) listOpponents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, opponentsResponse{Opponents: h.svc.Roster().All()})
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.State(r.Context(), playerID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (h *handler) postAction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	action, err := decodeAction(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Dispatch(r.Context(), playerID(r), action)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) postBattle(w http.ResponseWriter, r *http.Request) {
	var req battleRequest
	if !readJSON(w, r, &req) {
		return
	}
	out, err := h.svc.Battle(r.Context(), playerID(r), req.OpponentID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) listBattles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	recs, err := h.svc.Battles(r.Context(), playerID(r), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, battlesResponse{Battles: recs})
}
