package canvas

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type recorder struct {
	calls []string
}

func (r *recorder) Clear(r2.Vec, string) { r.calls = append(r.calls, "clear") }
func (r *recorder) Rect(r2.Vec, r2.Vec, Style) { r.calls = append(r.calls, "rect") }
func (r *recorder) Line(r2.Vec, r2.Vec, Style) { r.calls = append(r.calls, "line") }
func (r *recorder) Circle(r2.Vec, float64, Style) { r.calls = append(r.calls, "circle") }
func (r *recorder) Arc(r2.Vec, float64, float64, float64, Style) { r.calls = append(r.calls, "arc") }
func (r *recorder) Text(r2.Vec, string, Style) { r.calls = append(r.calls, "text") }

func TestReplay_FollowsCommandOrder(t *testing.T) {
	cmds := pitch.Render(pitch.DimensionsForWidth(467), pitch.DefaultColors())
	rec := &recorder{}
	Replay(rec, cmds)

	require.Len(t, rec.calls, len(cmds))
	assert.Equal(t, "clear", rec.calls[0])
	for i, cmd := range cmds {
		assert.Equal(t, string(cmd.Kind), rec.calls[i])
	}
}

func TestSVG_RendersPitchDocument(t *testing.T) {
	dims := pitch.DimensionsForWidth(467)
	svg := NewSVG(dims.Width, dims.Height)
	defer svg.Release()

	Replay(svg, pitch.Render(dims, pitch.DefaultColors()))
	svg.Text(r2.Vec{X: 10, Y: 10}, "Smith & <Co>", Style{Fill: "#000000", FontSize: 8})

	var out bytes.Buffer
	_, err := svg.WriteTo(&out)
	require.NoError(t, err)

	doc := out.String()
	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 467.00 290.00">`))
	assert.True(t, strings.HasSuffix(doc, "</svg>"))
	assert.Contains(t, doc, `fill="#2e7d32"`)
	assert.Contains(t, doc, "Smith &amp; &lt;Co&gt;")
	assert.Equal(t, 6, strings.Count(doc, "<path"))
}

func TestSVG_ClearDropsEarlierOutput(t *testing.T) {
	svg := NewSVG(100, 50)
	defer svg.Release()

	svg.Line(r2.Vec{}, r2.Vec{X: 10, Y: 10}, Style{Stroke: "#ffffff"})
	svg.Clear(r2.Vec{X: 200, Y: 100}, "#000000")

	var out bytes.Buffer
	_, err := svg.WriteTo(&out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "<line")
	assert.Contains(t, out.String(), `viewBox="0 0 200.00 100.00"`)
}

func TestSVG_ArcUsesLargeArcFlag(t *testing.T) {
	svg := NewSVG(100, 100)
	defer svg.Release()

	svg.Arc(r2.Vec{X: 50, Y: 50}, 10, 0, 1.5*math.Pi, Style{Stroke: "#ffffff"})

	var out bytes.Buffer
	_, err := svg.WriteTo(&out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "A 10.00 10.00 0 1 1")
}

func TestArrow_DrawsShaftAndHead(t *testing.T) {
	rec := &recorder{}
	Arrow(rec, r2.Vec{}, r2.Vec{X: 10}, 3, Style{})
	assert.Equal(t, []string{"line", "line", "line"}, rec.calls)

	rec = &recorder{}
	Arrow(rec, r2.Vec{X: 1}, r2.Vec{X: 1}, 3, Style{})
	assert.Equal(t, []string{"line"}, rec.calls)
}
