package httpapi

import (
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/marker"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/selection"
	"github.com/riskibarqy/tactical-board/internal/domain/timeline"
	"github.com/riskibarqy/tactical-board/internal/usecase"
	"gonum.org/v1/gonum/spatial/r2"
)

type openSessionRequest struct {
	Width     float64 `json:"width" validate:"omitempty,gt=0"`
	ZoneCount int     `json:"zone_count" validate:"omitempty,oneof=2 3"`
}

type resizeRequest struct {
	Width float64 `json:"width" validate:"required,gt=0"`
}

type selectRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type hitRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type jumpRequest struct {
	Minute *int `json:"minute" validate:"required"`
}

type analyticsQueryRequest struct {
	Category      string   `validate:"required"`
	Subcategories []string `validate:"dive,required"`
	Side          string   `validate:"omitempty,oneof=home away"`
	ZoneCount     int      `validate:"omitempty,oneof=2 3"`
}

type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dimensionsDTO struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sessionDTO struct {
	SessionID  string        `json:"sessionId"`
	MatchID    string        `json:"matchId"`
	ZoneCount  int           `json:"zoneCount"`
	Dimensions dimensionsDTO `json:"dimensions"`
	LastSeenAt string        `json:"lastSeenAt"`
}

type refDTO struct {
	PlayerID string `json:"playerId"`
	Side     string `json:"side"`
	Pool     string `json:"pool"`
}

type selectionDTO struct {
	Mode       string  `json:"mode"`
	Selected   *refDTO `json:"selected,omitempty"`
	SwapTarget *refDTO `json:"swapTarget,omitempty"`
}

type labelDTO struct {
	Number    string `json:"number"`
	Name      string `json:"name"`
	Captain   bool   `json:"captain"`
	StatsLine string `json:"statsLine"`
}

type markerDTO struct {
	PlayerID   string   `json:"playerId"`
	Position   string   `json:"position"`
	Side       string   `json:"side"`
	Pool       string   `json:"pool"`
	At         pointDTO `json:"at"`
	BenchIndex int      `json:"benchIndex"`
	Radius     float64  `json:"radius"`
	State      string   `json:"state"`
	Label      labelDTO `json:"label"`
}

type timelineDTO struct {
	CurrentMinute int   `json:"currentMinute"`
	IsPlaying     bool  `json:"isPlaying"`
	ActiveMinute  *int  `json:"activeMinute,omitempty"`
	Markers       []int `json:"markers"`
}

type boardDTO struct {
	SessionID    string        `json:"sessionId"`
	MatchID      string        `json:"matchId"`
	Dimensions   dimensionsDTO `json:"dimensions"`
	Timeline     timelineDTO   `json:"timeline"`
	Selection    selectionDTO  `json:"selection"`
	PitchMarkers []markerDTO   `json:"pitchMarkers"`
	HomeBench    []markerDTO   `json:"homeBench"`
	AwayBench    []markerDTO   `json:"awayBench"`
	Dirty        bool          `json:"dirty"`
}

type selectResultDTO struct {
	Hit       *bool        `json:"hit,omitempty"`
	Selection selectionDTO `json:"selection"`
	Swapped   bool         `json:"swapped"`
	SwapError string       `json:"swapError,omitempty"`
}

type slotDTO struct {
	PlayerID    string    `json:"playerId"`
	Name        string    `json:"name"`
	SquadNumber int       `json:"squadNumber"`
	Side        string    `json:"side"`
	Pool        string    `json:"pool"`
	At          *pointDTO `json:"at,omitempty"`
	BenchIndex  int       `json:"benchIndex"`
}

type snapshotDTO struct {
	Minute    int       `json:"minute"`
	CreatedAt string    `json:"createdAt"`
	Slots     []slotDTO `json:"slots"`
}

type commitDTO struct {
	Snapshot  snapshotDTO `json:"snapshot"`
	Timeline  timelineDTO `json:"timeline"`
	Published bool        `json:"published"`
}

type commandDTO struct {
	Kind        string   `json:"kind"`
	Element     string   `json:"element"`
	Origin      pointDTO `json:"origin"`
	Target      pointDTO `json:"target"`
	Size        pointDTO `json:"size"`
	Radius      float64  `json:"radius,omitempty"`
	StartAngle  float64  `json:"startAngle,omitempty"`
	EndAngle    float64  `json:"endAngle,omitempty"`
	Filled      bool     `json:"filled,omitempty"`
	Color       string   `json:"color"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
}

type pitchDTO struct {
	Dimensions dimensionsDTO `json:"dimensions"`
	Commands   []commandDTO  `json:"commands"`
}

type vectorDTO struct {
	EventID     string   `json:"eventId"`
	Start       pointDTO `json:"start"`
	End         pointDTO `json:"end"`
	Color       string   `json:"color"`
	Subcategory string   `json:"subcategory"`
	ActionType  string   `json:"actionType"`
}

type vectorSetDTO struct {
	Category   string        `json:"category"`
	Dimensions dimensionsDTO `json:"dimensions"`
	Vectors    []vectorDTO   `json:"vectors"`
	Skipped    int           `json:"skipped"`
}

type categorySummaryDTO struct {
	Category      string                 `json:"category"`
	Subcategories []string               `json:"subcategories"`
	Distribution  analytics.Distribution `json:"distribution"`
}

type legendEntryDTO struct {
	ActionType string `json:"actionType"`
	Color      string `json:"color"`
	Label      string `json:"label"`
}

type paletteDTO struct {
	Legend   []legendEntryDTO `json:"legend"`
	Fallback analytics.Style  `json:"fallback"`
}

func toPoint(v r2.Vec) pointDTO {
	return pointDTO{X: v.X, Y: v.Y}
}

func toDimensions(d pitch.Dimensions) dimensionsDTO {
	return dimensionsDTO{Width: d.Width, Height: d.Height}
}

func sessionToDTO(s *usecase.Session) sessionDTO {
	return sessionDTO{
		SessionID:  s.ID(),
		MatchID:    s.MatchID(),
		ZoneCount:  s.ZoneCount(),
		Dimensions: toDimensions(s.Dimensions()),
		LastSeenAt: s.LastSeen().UTC().Format(time.RFC3339),
	}
}

func refToDTO(ref *formation.Ref) *refDTO {
	if ref == nil {
		return nil
	}
	return &refDTO{PlayerID: ref.PlayerID, Side: string(ref.Side), Pool: string(ref.Pool)}
}

func selectionToDTO(sel selection.Selection) selectionDTO {
	return selectionDTO{
		Mode:       string(sel.State()),
		Selected:   refToDTO(sel.Selected),
		SwapTarget: refToDTO(sel.SwapTarget),
	}
}

func markersToDTO(markers []marker.Marker) []markerDTO {
	out := make([]markerDTO, 0, len(markers))
	for _, m := range markers {
		out = append(out, markerDTO{
			PlayerID:   m.Player.ID,
			Position:   string(m.Player.Position),
			Side:       string(m.Side),
			Pool:       string(m.Pool),
			At:         toPoint(m.Position),
			BenchIndex: m.BenchIndex,
			Radius:     m.Radius,
			State:      string(m.State),
			Label: labelDTO{
				Number:    m.Label.Number,
				Name:      m.Label.Name,
				Captain:   m.Label.Captain,
				StatsLine: m.Label.StatsLine,
			},
		})
	}
	return out
}

func timelineToDTO(state timeline.State) timelineDTO {
	out := timelineDTO{
		CurrentMinute: state.CurrentMinute,
		IsPlaying:     state.IsPlaying,
		Markers:       append([]int{}, state.Markers...),
	}
	if state.HasSnapshot {
		active := state.ActiveMinute
		out.ActiveMinute = &active
	}
	return out
}

func boardToDTO(b usecase.Board) boardDTO {
	return boardDTO{
		SessionID:    b.SessionID,
		MatchID:      b.MatchID,
		Dimensions:   toDimensions(b.Dimensions),
		Timeline:     timelineToDTO(b.Timeline),
		Selection:    selectionToDTO(b.Selection),
		PitchMarkers: markersToDTO(b.PitchMarkers),
		HomeBench:    markersToDTO(b.HomeBench),
		AwayBench:    markersToDTO(b.AwayBench),
		Dirty:        b.Dirty,
	}
}

func selectResultToDTO(res usecase.SelectResult) selectResultDTO {
	out := selectResultDTO{
		Selection: selectionToDTO(res.Selection),
		Swapped:   res.Swapped,
	}
	if res.SwapError != nil {
		out.SwapError = res.SwapError.Error()
	}
	return out
}

func snapshotToDTO(s formation.Snapshot) snapshotDTO {
	out := snapshotDTO{
		Minute: s.Minute,
		Slots:  make([]slotDTO, 0, len(s.Slots)),
	}
	if !s.CreatedAt.IsZero() {
		out.CreatedAt = s.CreatedAt.UTC().Format(time.RFC3339)
	}
	for _, slot := range s.Slots {
		item := slotDTO{
			PlayerID:    slot.Player.ID,
			Name:        slot.Player.Name,
			SquadNumber: slot.Player.SquadNumber,
			Side:        string(slot.Side),
			Pool:        string(slot.Pool),
			BenchIndex:  slot.BenchIndex,
		}
		if slot.Pool == formation.PoolPitch {
			at := toPoint(slot.Position)
			item.At = &at
		}
		out.Slots = append(out.Slots, item)
	}
	return out
}

func commitToDTO(res usecase.CommitResult) commitDTO {
	return commitDTO{
		Snapshot:  snapshotToDTO(res.Snapshot),
		Timeline:  timelineToDTO(res.Timeline),
		Published: res.Published,
	}
}

func pitchToDTO(dims pitch.Dimensions, commands []pitch.Command) pitchDTO {
	out := pitchDTO{Dimensions: toDimensions(dims), Commands: make([]commandDTO, 0, len(commands))}
	for _, c := range commands {
		out.Commands = append(out.Commands, commandDTO{
			Kind:        string(c.Kind),
			Element:     string(c.Element),
			Origin:      toPoint(c.Origin),
			Target:      toPoint(c.Target),
			Size:        toPoint(c.Size),
			Radius:      c.Radius,
			StartAngle:  c.StartAngle,
			EndAngle:    c.EndAngle,
			Filled:      c.Filled,
			Color:       c.Color,
			StrokeWidth: c.StrokeWidth,
		})
	}
	return out
}

func vectorSetToDTO(v analytics.VectorSet) vectorSetDTO {
	out := vectorSetDTO{
		Category:   string(v.Category),
		Dimensions: toDimensions(v.Dimensions),
		Vectors:    make([]vectorDTO, 0, len(v.Vectors)),
		Skipped:    v.Skipped,
	}
	for _, vec := range v.Vectors {
		out.Vectors = append(out.Vectors, vectorDTO{
			EventID:     vec.EventID,
			Start:       toPoint(vec.Start),
			End:         toPoint(vec.End),
			Color:       vec.Color,
			Subcategory: vec.Subcategory,
			ActionType:  vec.ActionType,
		})
	}
	return out
}

func summaryToDTO(items []usecase.CategorySummary) []categorySummaryDTO {
	out := make([]categorySummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, categorySummaryDTO{
			Category:      string(item.Category),
			Subcategories: append([]string{}, item.Subcategories...),
			Distribution:  item.Distribution,
		})
	}
	return out
}

func paletteToDTO(p *analytics.Palette) paletteDTO {
	legend := p.Legend()
	out := paletteDTO{Legend: make([]legendEntryDTO, 0, len(legend)), Fallback: p.Fallback()}
	for _, actionType := range legend {
		style := p.Lookup(actionType)
		out.Legend = append(out.Legend, legendEntryDTO{ActionType: actionType, Color: style.Color, Label: style.Label})
	}
	return out
}
