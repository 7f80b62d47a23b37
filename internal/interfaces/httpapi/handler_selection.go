package httpapi

import (
	"net/http"

	"gonum.org/v1/gonum/spatial/r2"
)

func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayer")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := session.Select(ctx, req.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectResultToDTO(res))
}

// SelectAt resolves a tap at surface pixel coordinates. A miss leaves the
// selection unchanged and reports hit=false.
func (h *Handler) SelectAt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectAt")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req hitRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, hit, err := session.SelectAt(ctx, r2.Vec{X: *req.X, Y: *req.Y})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := selectResultToDTO(res)
	out.Hit = &hit
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CancelSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSelection")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sel, err := session.CancelSelection(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel))
}
