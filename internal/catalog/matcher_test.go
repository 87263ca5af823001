package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchClose(t *testing.T) {
	tests := []struct {
		name  string
		buf   string
		tag   string
		start int
		want  int
	}{
		{
			name:  "flat",
			buf:   `<div>abc</div>`,
			tag:   "div",
			start: 5,
			want:  8,
		},
		{
			name:  "nested same tag",
			buf:   `<div><div>x</div><div class="y">z</div></div>tail`,
			tag:   "div",
			start: 5,
			want:  39,
		},
		{
			name:  "other tags ignored",
			buf:   `<a class="c"><img src="x"><span>s</span></a>`,
			tag:   "a",
			start: 13,
			want:  40,
		},
		{
			name:  "prefix tag names are not counted",
			buf:   `<a><abbr>x</abbr></a>`,
			tag:   "a",
			start: 3,
			want:  17,
		},
		{
			name:  "unmatched",
			buf:   `<div><div>x</div>`,
			tag:   "div",
			start: 5,
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchClose(tt.buf, tt.start, tt.tag))
		})
	}
}

func TestElementEnd(t *testing.T) {
	buf := `xx<div class="release"><div class="release-info">a</div></div>yy`

	span, ok := elementEnd(buf, 2, "div")
	require.True(t, ok)
	assert.Equal(t, `<div class="release"><div class="release-info">a</div></div>`, buf[span.Start:span.End])

	_, ok = elementEnd(`<div class="x"`, 0, "div")
	assert.False(t, ok)
}
