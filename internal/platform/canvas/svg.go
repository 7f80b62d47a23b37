package canvas

import (
	"html"
	"io"
	"math"
	"strconv"

	"github.com/valyala/bytebufferpool"
	"gonum.org/v1/gonum/spatial/r2"
)

// SVG renders drawing calls into an SVG document held in a pooled buffer.
// Call Release once the document has been written.
type SVG struct {
	width  float64
	height float64
	buf    *bytebufferpool.ByteBuffer
}

func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height, buf: bytebufferpool.Get()}
}

// Clear drops everything drawn so far and paints the background.
func (s *SVG) Clear(size r2.Vec, color string) {
	s.buf.Reset()
	s.width, s.height = size.X, size.Y
	s.Rect(r2.Vec{}, size, Style{Fill: color})
}

func (s *SVG) Rect(origin, size r2.Vec, style Style) {
	s.open("rect")
	s.attr("x", origin.X)
	s.attr("y", origin.Y)
	s.attr("width", size.X)
	s.attr("height", size.Y)
	s.style(style)
	s.close()
}

func (s *SVG) Line(from, to r2.Vec, style Style) {
	s.open("line")
	s.attr("x1", from.X)
	s.attr("y1", from.Y)
	s.attr("x2", to.X)
	s.attr("y2", to.Y)
	s.style(style)
	s.close()
}

func (s *SVG) Circle(center r2.Vec, radius float64, style Style) {
	s.open("circle")
	s.attr("cx", center.X)
	s.attr("cy", center.Y)
	s.attr("r", radius)
	s.style(style)
	s.close()
}

// Arc draws the arc from startAngle to endAngle (radians, y axis pointing
// down) as a path.
func (s *SVG) Arc(center r2.Vec, radius, startAngle, endAngle float64, style Style) {
	start := r2.Vec{X: center.X + radius*math.Cos(startAngle), Y: center.Y + radius*math.Sin(startAngle)}
	end := r2.Vec{X: center.X + radius*math.Cos(endAngle), Y: center.Y + radius*math.Sin(endAngle)}
	largeArc := "0"
	if math.Abs(endAngle-startAngle) > math.Pi {
		largeArc = "1"
	}

	s.open("path")
	s.buf.WriteString(` d="M `)
	s.num(start.X)
	s.buf.WriteByte(' ')
	s.num(start.Y)
	s.buf.WriteString(" A ")
	s.num(radius)
	s.buf.WriteByte(' ')
	s.num(radius)
	s.buf.WriteString(" 0 " + largeArc + " 1 ")
	s.num(end.X)
	s.buf.WriteByte(' ')
	s.num(end.Y)
	s.buf.WriteByte('"')
	if style.Fill == "" {
		style.Fill = "none"
	}
	s.style(style)
	s.close()
}

func (s *SVG) Text(at r2.Vec, text string, style Style) {
	s.open("text")
	s.attr("x", at.X)
	s.attr("y", at.Y)
	if style.FontSize > 0 {
		s.attr("font-size", style.FontSize)
	}
	if style.Anchor != "" {
		s.str("text-anchor", style.Anchor)
	}
	if style.Fill != "" {
		s.str("fill", style.Fill)
	}
	s.buf.WriteString(">")
	s.buf.WriteString(html.EscapeString(text))
	s.buf.WriteString("</text>")
}

// WriteTo writes the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	out.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	out.B = strconv.AppendFloat(out.B, s.width, 'f', 2, 64)
	out.WriteString(" ")
	out.B = strconv.AppendFloat(out.B, s.height, 'f', 2, 64)
	out.WriteString(`">`)
	out.Write(s.buf.B)
	out.WriteString("</svg>")

	n, err := w.Write(out.B)
	return int64(n), err
}

func (s *SVG) Release() {
	if s.buf != nil {
		bytebufferpool.Put(s.buf)
		s.buf = nil
	}
}

func (s *SVG) open(tag string) {
	s.buf.WriteByte('<')
	s.buf.WriteString(tag)
}

func (s *SVG) close() {
	s.buf.WriteString("/>")
}

func (s *SVG) attr(name string, v float64) {
	s.buf.WriteByte(' ')
	s.buf.WriteString(name)
	s.buf.WriteString(`="`)
	s.num(v)
	s.buf.WriteByte('"')
}

func (s *SVG) str(name, v string) {
	s.buf.WriteByte(' ')
	s.buf.WriteString(name)
	s.buf.WriteString(`="`)
	s.buf.WriteString(html.EscapeString(v))
	s.buf.WriteByte('"')
}

func (s *SVG) num(v float64) {
	s.buf.B = strconv.AppendFloat(s.buf.B, v, 'f', 2, 64)
}

func (s *SVG) style(style Style) {
	fill := style.Fill
	if fill == "" {
		fill = "none"
	}
	s.str("fill", fill)
	if style.Stroke != "" {
		s.str("stroke", style.Stroke)
		if style.StrokeWidth > 0 {
			s.attr("stroke-width", style.StrokeWidth)
		}
	}
	if style.Opacity > 0 && style.Opacity < 1 {
		s.attr("opacity", style.Opacity)
	}
}
