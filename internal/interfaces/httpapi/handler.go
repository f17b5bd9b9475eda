package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
	"github.com/rizkyfalih/crown-league/internal/usecase"
)

type Handler struct {
	league    *usecase.League
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(league *usecase.League, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		league:    league,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	if err := h.league.StartDraft(ctx); err != nil {
		h.logger.Warn("start draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	board, err := h.league.GetDraftBoard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftBoardToDTO(ctx, board))
}

func (h *Handler) HumanPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HumanPick")
	defer span.End()

	var req humanPickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.league.HumanPick(ctx, req.CardID); err != nil {
		h.logger.Warn("human pick failed", "card_id", req.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeDraftBoard(ctx, w)
}

func (h *Handler) AIAutoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AIAutoPick")
	defer span.End()

	var req aiAutoPickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.league.AIAutoPick(ctx, req.TeamID); err != nil {
		h.logger.Warn("ai auto pick failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeDraftBoard(ctx, w)
}

func (h *Handler) SimNextPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimNextPick")
	defer span.End()

	if err := h.league.SimNextPick(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeDraftBoard(ctx, w)
}

func (h *Handler) SimToEndOfDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimToEndOfDraft")
	defer span.End()

	if err := h.league.SimToEndOfDraft(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	grades, err := h.league.GetLastDraftGrades(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gradesToDTO(ctx, grades))
}

func (h *Handler) RunFullSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFullSeason")
	defer span.End()

	history, err := h.league.RunFullSeason(ctx)
	if err != nil {
		h.logger.Error("run full season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(ctx, history))
}

func (h *Handler) ResetRNG(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetRNG")
	defer span.End()

	var req rngResetRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.league.ResetRNG(req.Seed)
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"seed": req.Seed})
}

func (h *Handler) writeDraftBoard(ctx context.Context, w http.ResponseWriter) {
	board, err := h.league.GetDraftBoard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftBoardToDTO(ctx, board))
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type humanPickRequest struct {
	CardID string `json:"cardId" validate:"required"`
}

type aiAutoPickRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

type rngResetRequest struct {
	Seed int64 `json:"seed" validate:"required"`
}
