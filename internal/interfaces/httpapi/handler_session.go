package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/tactical-board/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenSession")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req openSessionRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.sessions.Open(ctx, usecase.OpenSessionInput{
		MatchID:   matchID,
		Width:     req.Width,
		ZoneCount: req.ZoneCount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "open session failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	board, err := session.Board(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Location", "/v1/sessions/"+session.ID())
	writeSuccess(ctx, w, http.StatusCreated, boardToDTO(board))
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessions")
	defer span.End()

	sessions := h.sessions.List()
	out := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := session.Board(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	if err := h.sessions.Close(ctx, sessionID); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ResizeSurface(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResizeSurface")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req resizeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	dims, err := session.Resize(ctx, req.Width)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDimensions(dims))
}

func (h *Handler) GetPitch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPitch")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dims, commands, err := session.Pitch(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pitchToDTO(dims, commands))
}

// RenderSVG draws the pitch, the markers and, when a category is given,
// the matching event vectors as one SVG document.
func (h *Handler) RenderSVG(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenderSVG")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var overlay *usecase.AnalyticsInput
	if strings.TrimSpace(r.URL.Query().Get("category")) != "" {
		in, err := h.analyticsInput(ctx, r)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		overlay = &in
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := session.RenderSVG(ctx, buf, overlay); err != nil {
		h.logger.WarnContext(ctx, "render svg failed", "session_id", session.ID(), "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
