package ucc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary(t *testing.T) {
	d := NewDictionary()
	assert.False(t, d.Define("foo", mustParse(t, "a b")))
	assert.True(t, d.Define("foo", mustParse(t, "c")), "expected redefinition")
	assert.False(t, d.Define("bar", nil))

	body, defined := d.Lookup("foo")
	require.True(t, defined)
	assert.Equal(t, "c", body.String())
	_, defined = d.Lookup("baz")
	assert.False(t, defined)

	assert.Equal(t, []string{"bar", "foo"}, d.Names())
	assert.Equal(t, 2, d.Len())
}

func TestDictionary_layers(t *testing.T) {
	base := NewDictionary()
	base.Define("a", mustParse(t, "x"))

	child := base.Child()
	assert.True(t, child.Define("a", mustParse(t, "y")), "expected a parent definition to count")
	assert.False(t, child.Define("b", mustParse(t, "z")))

	body, _ := child.Lookup("a")
	assert.Equal(t, "y", body.String(), "expected the child to shadow its parent")
	body, _ = base.Lookup("a")
	assert.Equal(t, "x", body.String(), "expected the parent unchanged before commit")
	_, defined := base.Lookup("b")
	assert.False(t, defined)
	assert.Equal(t, []string{"a", "b"}, child.Names())

	child.Commit()
	body, _ = base.Lookup("a")
	assert.Equal(t, "y", body.String())
	body, _ = base.Lookup("b")
	assert.Equal(t, "z", body.String())
	assert.Equal(t, []string{"a", "b"}, base.Names())

	// commit leaves the layer empty, still over its parent
	assert.Equal(t, []string{"a", "b"}, child.Names())
	child.Commit()
	assert.Equal(t, 2, base.Len())
}

func TestDictionary_Compress(t *testing.T) {
	d := NewDictionary()
	for _, def := range Prelude() {
		d.Define(def.Name, def.Body)
	}

	stack := Stack{
		Quote(mustParse(t, "[clone] n0 [compose] n0 apply")),
		Quote(mustParse(t, "n1")),
		Quote{},
		Quote(mustParse(t, "unknown words")),
		Quote(mustParse(t, "swap drop")),
	}
	assert.True(t, d.Compress(stack))
	assert.Equal(t, "⟨[n1] [n1] [] [unknown words] [false]⟩", stack.String())
	assert.False(t, d.Compress(stack), "expected compression to be idempotent")
}

func TestDictionary_NameOf(t *testing.T) {
	d := NewDictionary()
	d.Define("first", mustParse(t, "a"))
	d.Define("second", mustParse(t, "a"))

	name, found := d.NameOf(mustParse(t, "a"))
	require.True(t, found)
	assert.Equal(t, "second", name, "expected the latest definition to win")

	d.Define("second", mustParse(t, "b"))
	name, found = d.NameOf(mustParse(t, "a"))
	require.True(t, found)
	assert.Equal(t, "first", name, "expected a stale body to be skipped")

	child := d.Child()
	child.Define("third", mustParse(t, "a"))
	name, _ = child.NameOf(mustParse(t, "a"))
	assert.Equal(t, "third", name, "expected the child layer to win")

	child.Define("first", mustParse(t, "c"))
	child.Define("third", mustParse(t, "c"))
	_, found = child.NameOf(mustParse(t, "a"))
	assert.False(t, found, "expected every name for the body to be stale")
}

func TestDictionary_redefineReindexes(t *testing.T) {
	d := NewDictionary()
	for i := 0; i < 100; i++ {
		d.Define("x", mustParse(t, "a"))
		d.Define("x", mustParse(t, "b"))
	}
	d.Define("y", mustParse(t, "b"))
	assert.Equal(t, map[string][]string{"b": {"x", "y"}}, d.bodies)

	d.Define("x", mustParse(t, "b"))
	assert.Equal(t, []string{"y", "x"}, d.bodies["b"], "expected a rebinding to move to the end")
	name, _ := d.NameOf(mustParse(t, "b"))
	assert.Equal(t, "x", name)

	d.Define("x", mustParse(t, "c"))
	d.Define("y", mustParse(t, "c"))
	assert.Equal(t, map[string][]string{"c": {"x", "y"}}, d.bodies)
	_, found := d.NameOf(mustParse(t, "b"))
	assert.False(t, found)
}

func TestStack_Clone(t *testing.T) {
	assert.Nil(t, Stack(nil).Clone())

	orig := Stack{Quote{Word("a")}, Quote{Word("b")}}
	dup := orig.Clone()
	dup[0] = Quote{Word("x")}
	dup = append(dup, Quote{})
	assert.Equal(t, "⟨[a] [b]⟩", orig.String())
	assert.Equal(t, "⟨[x] [b] []⟩", dup.String())
	assert.False(t, orig.Equal(dup))
	assert.True(t, orig.Equal(orig.Clone()))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Word("a"), Word("a")))
	assert.False(t, Equal(Word("a"), Word("b")))
	assert.False(t, Equal(Word("a"), Quote{Word("a")}))
	assert.True(t, Equal(Quote{Word("a"), Quote{}}, Quote{Word("a"), Quote{}}))
	assert.False(t, Equal(Quote{Quote{}}, Quote{Quote{Word("a")}}))
	assert.True(t, Equal(Quote(nil), Quote{}), "expected nil and empty quotations to be the same")
}

func TestConfiguration_String(t *testing.T) {
	cfg := NewConfiguration(Stack{Quote{Word("a")}}, mustParse(t, "b [c] d"))
	assert.Equal(t, "⟨[a]⟩ b [c] d", cfg.String())
	assert.False(t, cfg.Halted())
	assert.Equal(t, 1, cfg.Depth())

	empty := NewConfiguration(nil, nil)
	assert.Equal(t, "⟨⟩ ", empty.String())
	assert.True(t, empty.Halted())
}
