package ucc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_reduce(t *testing.T) {
	var testCases reduceTestCases

	// intrinsics, one step each
	testCases = append(testCases,
		reduceTest("push").withProg("[a b] x").step().
			expectStack("[a b]").expectRemainder("x"),
		reduceTest("push empty").withProg("[]").step().
			expectStack("[]").expectRemainder(""),
		reduceTest("swap").withStack("[a]", "[b]").withProg("swap").step().
			expectStack("[b]", "[a]"),
		reduceTest("clone").withStack("[x]", "[a b]").withProg("clone").step().
			expectStack("[x]", "[a b]", "[a b]"),
		reduceTest("drop").withStack("[a]", "[b]").withProg("drop").step().
			expectStack("[a]"),
		reduceTest("quote").withStack("[a b]").withProg("quote").step().
			expectStack("[[a b]]"),
		reduceTest("quote empty").withStack("[]").withProg("quote").step().
			expectStack("[[]]"),
		reduceTest("compose").withStack("[a]", "[b c]").withProg("compose").step().
			expectStack("[a b c]"),
		reduceTest("compose empty").withStack("[]", "[]").withProg("compose").step().
			expectStack("[]"),
		reduceTest("apply").withStack("[x]", "[a [b]]").withProg("apply c").step().
			expectStack("[x]").expectRemainder("a [b] c"),
		reduceTest("apply empty").withStack("[]").withProg("apply c").step().
			expectStack().expectRemainder("c"),
		reduceTest("print").withStack("[a]", "[b [c]]").withProg("print").step().
			expectStack("[a]").expectOutput("[b [c]]\n"),
	)

	// definitions expand in place
	testCases = append(testCases,
		reduceTest("defined").withDefs("{fn dup2 = clone clone}").
			withStack("[a]").withProg("dup2 x").step().
			expectStack("[a]").expectRemainder("clone clone x"),
		reduceTest("defined empty").withDefs("{fn nop = }").
			withProg("nop x").step().
			expectRemainder("x"),
		reduceTest("defined run").withDefs("{fn dup2 = clone clone}").
			withStack("[a]").withProg("dup2 drop").toEnd().
			expectStack("[a]", "[a]"),
		reduceTest("true").withDefs(preludeSources[:]...).
			withStack("[a]", "[b]", "[true]").withProg("apply").toEnd().
			expectStack("[a]"),
		reduceTest("false").withDefs(preludeSources[:]...).
			withStack("[a]", "[b]", "[false]").withProg("apply").toEnd().
			expectStack("[b]"),
		reduceTest("rotate3").withDefs(preludeSources[:]...).
			withStack("[a]", "[b]", "[c]").withProg("rotate3").toEnd().
			expectStack("[b]", "[c]", "[a]"),
		reduceTest("n2 applies twice").withDefs(preludeSources[:]...).
			withStack("[x]", "[[y] compose]", "[n2]").withProg("apply").toEnd().
			expectStack("[x y y]"),
	)

	// stuck
	testCases = append(testCases,
		reduceTest("halted").withStack("[a]").step().
			expectError(ErrTerminated).expectStack("[a]"),
		reduceTest("unknown word").withStack("[a]").withProg("foo bar").step().
			expectError(&ReduceError{Kind: UnknownWord, Word: "foo"}).
			expectStack("[a]").expectRemainder("foo bar"),
		reduceTest("swap underflow").withStack("[a]").withProg("swap").step().
			expectError(&ReduceError{Kind: StackUnderflow, Word: "swap", Have: 1, Need: 2}).
			expectStack("[a]").expectRemainder("swap"),
		reduceTest("apply underflow").withProg("apply").step().
			expectError(&ReduceError{Kind: StackUnderflow, Word: "apply", Have: 0, Need: 1}).
			expectStack().expectRemainder("apply"),
		reduceTest("undefined without dictionary").withProg("true").step().
			expectError(&ReduceError{Kind: UnknownWord, Word: "true"}),
	)

	testCases.run(t)
}

func TestReduce_tailCalls(t *testing.T) {
	var defs Dictionary
	defs.Define("loop", mustParse(t, "[x] drop loop"))
	rd := Reducer{Defs: &defs}
	cfg := NewConfiguration(nil, mustParse(t, "loop"))
	for i := 0; i < 10000; i++ {
		require.NoError(t, rd.Step(&cfg, nil))
		require.True(t, cfg.Depth() <= 1, "expected bounded continuation depth, got %v at step %v", cfg.Depth(), i)
	}
}

func TestReduce_sharedTerms(t *testing.T) {
	// reduction must never mutate a quotation that is still reachable
	var defs Dictionary
	body := mustParse(t, "[a] [b] compose clone")
	defs.Define("f", body)
	rd := Reducer{Defs: &defs}

	for i := 0; i < 2; i++ {
		cfg := NewConfiguration(nil, mustParse(t, "f f [c] compose"))
		runToEnd(t, &rd, &cfg, nil)
		assert.Equal(t, "⟨[a b] [a b] [a b] [a b c]⟩ ", cfg.String())
	}
	assert.Equal(t, "[a] [b] compose clone", body.String())
}

func TestReduce_applyInlines(t *testing.T) {
	defs := NewDictionary()
	for _, def := range Prelude() {
		defs.Define(def.Name, def.Body)
	}
	rd := Reducer{Defs: defs}

	for _, body := range []string{
		"",
		"swap clone",
		"[c] compose quote",
		"rotate3 [z] swap",
		"[n1] [n1] add",
	} {
		t.Run(body, func(t *testing.T) {
			stack := func() Stack { return Stack{Quote{Word("x")}, Quote{Word("y")}, Quote{Word("w")}} }

			quoted := NewConfiguration(stack(), mustParse(t, "["+body+"] apply"))
			require.NoError(t, runToEnd(t, &rd, &quoted, nil))

			inline := NewConfiguration(stack(), mustParse(t, body))
			require.NoError(t, runToEnd(t, &rd, &inline, nil))

			assert.True(t, quoted.Equal(inline), "expected %v to equal %v", quoted, inline)
		})
	}
}

func TestConfiguration_Clone(t *testing.T) {
	var rd Reducer
	cfg := NewConfiguration(nil, mustParse(t, "[a] [b] swap"))
	before := cfg.Clone()
	require.NoError(t, rd.Step(&cfg, nil))
	assert.True(t, before.Equal(NewConfiguration(nil, mustParse(t, "[a] [b] swap"))),
		"expected the snapshot to be unaffected by stepping")
}

func TestIntrinsics(t *testing.T) {
	assert.Equal(t, []string{"swap", "clone", "drop", "quote", "compose", "apply", "print"}, Intrinsics())
	for _, name := range Intrinsics() {
		assert.True(t, isIntrinsic(name), "expected %q to be intrinsic", name)
	}
	assert.False(t, isIntrinsic("dup"))
}

//// test builder

type reduceTestCases []reduceTestCase

func (rts reduceTestCases) run(t *testing.T) {
	for _, rt := range rts {
		if !t.Run(rt.name, rt.run) {
			return
		}
	}
}

func reduceTest(name string) (rt reduceTestCase) {
	rt.name = name
	rt.steps = 1
	return rt
}

type reduceTestCase struct {
	name    string
	defs    []string
	stack   []string
	prog    string
	steps   int // negative to run until stuck
	wantErr error
	expect  []func(t *testing.T, cfg Configuration, out string)
}

func (rt reduceTestCase) withDefs(defs ...string) reduceTestCase {
	rt.defs = append(rt.defs, defs...)
	return rt
}

func (rt reduceTestCase) withStack(values ...string) reduceTestCase {
	rt.stack = append(rt.stack, values...)
	return rt
}

func (rt reduceTestCase) withProg(prog string) reduceTestCase {
	rt.prog = prog
	return rt
}

func (rt reduceTestCase) step() reduceTestCase {
	rt.steps = 1
	return rt
}

func (rt reduceTestCase) toEnd() reduceTestCase {
	rt.steps = -1
	return rt
}

func (rt reduceTestCase) expectError(err error) reduceTestCase {
	rt.wantErr = err
	return rt
}

func (rt reduceTestCase) expectStack(values ...string) reduceTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, cfg Configuration, _ string) {
		want := "⟨" + strings.Join(values, " ") + "⟩"
		assert.Equal(t, want, cfg.Stack.String(), "expected stack values")
	})
	return rt
}

func (rt reduceTestCase) expectRemainder(prog string) reduceTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, cfg Configuration, _ string) {
		assert.Equal(t, prog, cfg.Remainder().String(), "expected program remainder")
	})
	return rt
}

func (rt reduceTestCase) expectOutput(output string) reduceTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, _ Configuration, out string) {
		assert.Equal(t, output, out, "expected output")
	})
	return rt
}

func (rt reduceTestCase) run(t *testing.T) {
	defs := NewDictionary()
	for _, src := range rt.defs {
		ds, err := ParseDefinitions(src)
		require.NoError(t, err, "invalid test definition %q", src)
		for _, def := range ds {
			defs.Define(def.Name, def.Body)
		}
	}

	var stack Stack
	for _, src := range rt.stack {
		prog := mustParse(t, src)
		require.Len(t, prog, 1, "test value must be a single quotation")
		v, ok := prog[0].(Quote)
		require.True(t, ok, "test value must be a single quotation")
		stack = append(stack, v)
	}

	var out strings.Builder
	rd := Reducer{Defs: defs}
	rd.logfn = t.Logf
	cfg := NewConfiguration(stack, mustParse(t, rt.prog))

	var err error
	if rt.steps < 0 {
		err = runToEnd(t, &rd, &cfg, &out)
	} else {
		for i := 0; i < rt.steps && err == nil; i++ {
			err = rd.Step(&cfg, &out)
		}
	}

	if rt.wantErr != nil {
		assert.Equal(t, rt.wantErr, err, "expected reduction error")
	} else {
		assert.NoError(t, err, "unexpected reduction error")
	}
	for _, expect := range rt.expect {
		expect(t, cfg, out.String())
	}
	if t.Failed() {
		t.Logf("final: %v", cfg)
	}
}

// runToEnd steps cfg until it terminates, returning nil, or gets stuck,
// returning the error.
func runToEnd(t *testing.T, rd *Reducer, cfg *Configuration, out Sink) error {
	const limit = 100000
	for i := 0; i < limit; i++ {
		if err := rd.Step(cfg, out); errors.Is(err, ErrTerminated) {
			return nil
		} else if err != nil {
			return err
		}
	}
	t.Fatalf("no result after %v steps: %v", limit, cfg)
	return nil
}

func mustParse(t *testing.T, src string) Program {
	prog, err := Parse(src)
	require.NoError(t, err, "invalid test program %q", src)
	return prog
}
