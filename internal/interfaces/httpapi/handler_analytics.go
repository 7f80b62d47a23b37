package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/tactical-board/internal/usecase"
)

type summaryQueryRequest struct {
	Side      string `validate:"omitempty,oneof=home away"`
	ZoneCount int    `validate:"omitempty,oneof=2 3"`
}

func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDistribution")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	in, err := h.analyticsInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dist, err := session.Distribution(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dist)
}

func (h *Handler) GetVectors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVectors")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	in, err := h.analyticsInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	set, err := session.Vectors(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, vectorSetToDTO(set))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	zoneCount, err := parseZoneCount(query.Get("zones"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := summaryQueryRequest{
		Side:      strings.ToLower(strings.TrimSpace(query.Get("side"))),
		ZoneCount: zoneCount,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := session.Summary(ctx, req.ZoneCount, req.Side)
	if err != nil {
		h.logger.WarnContext(ctx, "build summary failed", "session_id", session.ID(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(items))
}

func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPalette")
	defer span.End()

	session, err := h.session(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paletteToDTO(session.Palette()))
}

// analyticsInput reads category, subcategory, side and zones from the query
// string. Subcategories may be repeated or comma separated.
func (h *Handler) analyticsInput(ctx context.Context, r *http.Request) (usecase.AnalyticsInput, error) {
	query := r.URL.Query()

	zoneCount, err := parseZoneCount(query.Get("zones"))
	if err != nil {
		return usecase.AnalyticsInput{}, err
	}

	subcategories := make([]string, 0)
	for _, raw := range query["subcategory"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				subcategories = append(subcategories, part)
			}
		}
	}

	req := analyticsQueryRequest{
		Category:      strings.TrimSpace(query.Get("category")),
		Subcategories: subcategories,
		Side:          strings.ToLower(strings.TrimSpace(query.Get("side"))),
		ZoneCount:     zoneCount,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.AnalyticsInput{}, err
	}

	return usecase.AnalyticsInput{
		Category:      req.Category,
		Subcategories: req.Subcategories,
		Side:          req.Side,
		ZoneCount:     req.ZoneCount,
	}, nil
}

func parseZoneCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid zones %q", usecase.ErrInvalidInput, raw)
	}
	return n, nil
}
