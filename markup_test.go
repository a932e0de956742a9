package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		markup    string
		errorMode bool
		want      []Segment
	}{
		{
			name:   "band and highlight",
			markup: "Hello *world @x@ y* end",
			want: []Segment{
				{Text: "Hello ", Mode: ModePlain},
				{Text: "world ", Mode: ModeAltBand},
				{Text: "x", Mode: ModeNestedHighlight},
				{Text: " y", Mode: ModeAltBand},
				{Text: " end", Mode: ModePlain},
			},
		},
		{
			name:      "error mode colors plain text only",
			markup:    "bad *cmd* here",
			errorMode: true,
			want: []Segment{
				{Text: "bad ", Mode: ModeError},
				{Text: "cmd", Mode: ModeAltBand},
				{Text: " here", Mode: ModeError},
			},
		},
		{
			name:   "highlight in plain text",
			markup: "a@b@c",
			want: []Segment{
				{Text: "a", Mode: ModePlain},
				{Text: "b", Mode: ModeNestedHighlight},
				{Text: "c", Mode: ModePlain},
			},
		},
		{
			name:   "highlight resets after a band delimiter",
			markup: "@a*b",
			want: []Segment{
				{Text: "a", Mode: ModeNestedHighlight},
				{Text: "b", Mode: ModeAltBand},
			},
		},
		{
			name:   "empty",
			markup: "",
			want:   nil,
		},
		{
			name:   "only delimiters",
			markup: "**@@",
			want:   nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.markup, tt.errorMode))
		})
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world x y end", Plain("Hello *world @x@ y* end"))
	assert.Equal(t, "", Plain("*@"))
}

func TestColorModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alt-band", ModeAltBand.String())
	assert.Equal(t, "unknown", ColorMode(42).String())
}
