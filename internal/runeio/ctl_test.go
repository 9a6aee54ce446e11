package runeio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	for _, tc := range []struct {
		r    rune
		want string
	}{
		{0x1b, "<ESC> (^[)"},
		{0x00, "<NUL> (^@)"},
		{0x7f, "<DEL> (^?)"},
		{0x9b, "<CSI> (^[[)"},
		{' ', "<SP>"},
		{'x', "U+0078"},
		{'⟶', "U+27F6"},
	} {
		assert.Equal(t, tc.want, Describe(tc.r), "Describe(%U)", tc.r)
	}
}

func TestWriteANSIString(t *testing.T) {
	var sb strings.Builder
	n, err := WriteANSIString(&sb, "⟨[a]⟩\u0085x")
	assert.NoError(t, err)
	assert.Equal(t, "⟨[a]⟩\r\nx", sb.String())
	assert.Equal(t, sb.Len(), n)
}
