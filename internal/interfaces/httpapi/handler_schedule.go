package httpapi

import (
	"net/http"
)

func (h *Handler) ListPhases(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPhases")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.phaseService.ListPhases(ctx))
}

func (h *Handler) GetCurrentSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSchedule")
	defer span.End()

	status, err := h.phaseService.Current(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get current schedule failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(status))
}

func (h *Handler) GetWeekPhases(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekPhases")
	defer span.End()

	weekID := r.PathValue("weekID")
	item, exists, err := h.phaseService.GetWeekPhases(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week phases failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekPhasesDTO{
		WeekID:    item.WeekID,
		Phase1:    item.Phase1,
		Phase2:    item.Phase2,
		Assigned:  exists,
		UpdatedAt: optionalTime(item.UpdatedAt),
	})
}

func (h *Handler) SetWeekPhases(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetWeekPhases")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setWeekPhasesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	weekID := r.PathValue("weekID")
	item, err := h.phaseService.SetWeekPhases(ctx, principal, weekID, req.Phase1, req.Phase2)
	if err != nil {
		h.logger.WarnContext(ctx, "set week phases failed", "user_id", principal.ID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekPhasesDTO{
		WeekID:    item.WeekID,
		Phase1:    item.Phase1,
		Phase2:    item.Phase2,
		Assigned:  true,
		UpdatedAt: optionalTime(item.UpdatedAt),
	})
}
