package httpapi

import (
	"net/http"
)

func (h *Handler) RollRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RollRoster")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req rollRosterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.Roll(ctx, principal, req.Phase, req.Slot)
	if err != nil {
		h.logger.WarnContext(ctx, "roll roster failed", "user_id", principal.ID, "phase", req.Phase, "slot", req.Slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item, true))
}

func (h *Handler) GetMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRoster")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	phaseName := r.URL.Query().Get("phase")
	item, exists, err := h.rosterService.Current(ctx, principal, phaseName)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "user_id", principal.ID, "phase", phaseName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item, exists))
}
