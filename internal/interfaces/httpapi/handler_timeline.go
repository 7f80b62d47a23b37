package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/usecase"
)

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTimeline")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(session.Timeline()))
}

func (h *Handler) JumpTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JumpTimeline")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req jumpRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := session.JumpTo(ctx, *req.Minute)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(state))
}

func (h *Handler) TogglePlayback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TogglePlayback")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := session.TogglePlay(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(state))
}

func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSnapshots")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	markers := session.Timeline().Markers
	out := make([]snapshotDTO, 0, len(markers))
	for _, minute := range markers {
		snapshot, ok := session.SnapshotAt(minute)
		if !ok {
			continue
		}
		out = append(out, snapshotToDTO(snapshot))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetSnapshot returns the snapshot in effect at the given minute, which is
// the latest one committed at or before it.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rawMinute := strings.TrimSpace(r.PathValue("minute"))
	minute, err := strconv.Atoi(rawMinute)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid minute %q", usecase.ErrInvalidInput, rawMinute))
		return
	}
	if minute < formation.FirstMinute || minute > formation.FinalMinute {
		writeError(ctx, w, fmt.Errorf("%w: minute must be between %d and %d", usecase.ErrInvalidInput, formation.FirstMinute, formation.FinalMinute))
		return
	}

	snapshot, ok := session.SnapshotAt(minute)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no snapshot at or before minute %d", usecase.ErrNotFound, minute))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) CommitSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitSnapshot")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := session.Commit(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "commit snapshot failed", "session_id", session.ID(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, commitToDTO(res))
}
