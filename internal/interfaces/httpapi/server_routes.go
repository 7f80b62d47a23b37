package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tactical-board/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Metrics, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches/{matchID}/sessions", handler.OpenSession)
	mux.HandleFunc("GET /v1/sessions", handler.ListSessions)
	mux.HandleFunc("GET /v1/sessions/{sessionID}", handler.GetBoard)
	mux.HandleFunc("DELETE /v1/sessions/{sessionID}", handler.CloseSession)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/surface", handler.ResizeSurface)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/pitch", handler.GetPitch)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/pitch.svg", handler.RenderSVG)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/sessions/{sessionID}/selection", handler.SelectPlayer)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/selection/hit", handler.SelectAt)
	mux.HandleFunc("DELETE /v1/sessions/{sessionID}/selection", handler.CancelSelection)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/timeline", handler.GetTimeline)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/timeline/jump", handler.JumpTimeline)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/timeline/toggle", handler.TogglePlayback)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/snapshots", handler.ListSnapshots)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/snapshots", handler.CommitSnapshot)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/snapshots/{minute}", handler.GetSnapshot)
}

func registerAnalyticsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sessions/{sessionID}/analytics/distribution", handler.GetDistribution)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/analytics/vectors", handler.GetVectors)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/analytics/summary", handler.GetSummary)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/analytics/palette", handler.GetPalette)
}
