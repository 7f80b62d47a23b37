package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Style is how one action type is drawn and labeled.
type Style struct {
	Color string `json:"color" validate:"required,hexcolor"`
	Label string `json:"label" validate:"required"`
}

var FallbackStyle = Style{Color: "#9e9e9e", Label: "Other"}

// Palette is the canonical action type lookup. Unknown action types resolve
// to the fallback style.
type Palette struct {
	styles   map[string]Style
	fallback Style
}

var paletteValidator = validator.New()

func NewPalette(ctx context.Context, styles map[string]Style, fallback Style) (*Palette, error) {
	if err := paletteValidator.StructCtx(ctx, fallback); err != nil {
		return nil, fmt.Errorf("validate fallback style: %w", err)
	}

	out := make(map[string]Style, len(styles))
	for action, style := range styles {
		if action == "" {
			return nil, fmt.Errorf("validate palette: empty action type")
		}
		if err := paletteValidator.StructCtx(ctx, style); err != nil {
			return nil, fmt.Errorf("validate style %q: %w", action, err)
		}
		out[action] = style
	}
	return &Palette{styles: out, fallback: fallback}, nil
}

func DefaultPalette() *Palette {
	p, err := NewPalette(context.Background(), defaultStyles, FallbackStyle)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultStyles = map[string]Style{
	"short_pass":        {Color: "#42a5f5", Label: "Short pass"},
	"long_pass":         {Color: "#1565c0", Label: "Long pass"},
	"cross":             {Color: "#ab47bc", Label: "Cross"},
	"through_ball":      {Color: "#26c6da", Label: "Through ball"},
	"key_pass":          {Color: "#ffca28", Label: "Key pass"},
	"shot_on_target":    {Color: "#66bb6a", Label: "Shot on target"},
	"shot_off_target":   {Color: "#ef5350", Label: "Shot off target"},
	"goal":              {Color: "#ffd600", Label: "Goal"},
	"blocked_shot":      {Color: "#8d6e63", Label: "Blocked shot"},
	"carry":             {Color: "#ff7043", Label: "Carry"},
	"progressive_carry": {Color: "#d84315", Label: "Progressive carry"},
	"dribble":           {Color: "#ec407a", Label: "Dribble"},
	"aerial_duel":       {Color: "#7e57c2", Label: "Aerial duel"},
	"ground_duel":       {Color: "#5c6bc0", Label: "Ground duel"},
	"tackle":            {Color: "#78909c", Label: "Tackle"},
}

func (p *Palette) Lookup(actionType string) Style {
	if s, ok := p.styles[actionType]; ok {
		return s
	}
	return p.fallback
}

func (p *Palette) Fallback() Style {
	return p.fallback
}

// Legend returns the known action types in sorted order.
func (p *Palette) Legend() []string {
	out := make([]string, 0, len(p.styles))
	for k := range p.styles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
