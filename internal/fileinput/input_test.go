package fileinput

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func named(name, content string) io.Reader {
	return namedReader{strings.NewReader(content), name}
}

func TestInput_ReadLine(t *testing.T) {
	in := Input{Queue: []io.Reader{
		named("a.ucc", "[x] [y]\nswap\n"),
		named("empty.ucc", ""),
		named("b.ucc", "{fn foo =\n  drop}\nlast"),
	}}

	type line struct {
		loc  string
		text string
	}
	var lines []line
	for {
		loc, text, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line{loc.String(), text})
	}

	assert.Equal(t, []line{
		{"a.ucc:1", "[x] [y]"},
		{"a.ucc:2", "swap"},
		{"b.ucc:1", "{fn foo ="},
		{"b.ucc:2", "  drop}"},
		{"b.ucc:3", "last"},
	}, lines)

	_, _, err := in.ReadLine()
	assert.Equal(t, io.EOF, err, "expected EOF to stick")
}

func TestInput_ReadRune(t *testing.T) {
	in := Input{Queue: []io.Reader{
		strings.NewReader("ab\nc"),
		named("two", "d"),
	}}

	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sb.WriteRune(r)
	}
	assert.Equal(t, "ab\ncd", sb.String())
	assert.Equal(t, "two:1", in.Last.Location.String())
	assert.Equal(t, "d", in.Last.Buffer.String())
}
