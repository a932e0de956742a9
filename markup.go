package console

import "strings"

type ColorMode int

const (
	ModePlain ColorMode = iota
	ModeAltBand
	ModeNestedHighlight
	ModeError
)

func (m ColorMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeAltBand:
		return "alt-band"
	case ModeNestedHighlight:
		return "highlight"
	case ModeError:
		return "error"
	}
	return "unknown"
}

const (
	bandDelimiter      = "*"
	highlightDelimiter = "@"
)

type Segment struct {
	Text string
	Mode ColorMode
}

// Render splits markup into colored segments. "*" toggles the alternate
// band; inside every band segment "@" toggles the nested highlight, which
// starts off again after each "*". errorMode colors plain text as errors.
func Render(markup string, errorMode bool) []Segment {
	var segments []Segment
	band := false
	for _, part := range strings.Split(markup, bandDelimiter) {
		highlight := false
		for _, text := range strings.Split(part, highlightDelimiter) {
			mode := ModePlain
			switch {
			case highlight:
				mode = ModeNestedHighlight
			case band:
				mode = ModeAltBand
			case errorMode:
				mode = ModeError
			}
			if text != "" {
				segments = append(segments, Segment{Text: text, Mode: mode})
			}
			highlight = !highlight
		}
		band = !band
	}
	return segments
}

// Plain strips the markup delimiters.
func Plain(markup string) string {
	var b strings.Builder
	for _, s := range Render(markup, false) {
		b.WriteString(s.Text)
	}
	return b.String()
}
