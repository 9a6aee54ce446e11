package ucc

import "fmt"

// preludeSources are installed into every new session, in order: booleans,
// stack shuffling in terms of quotation, n-ary composition, and Church-style
// numerals with arithmetic.
var preludeSources = [...]string{
	"{fn true = drop}",
	"{fn false = swap drop}",
	"{fn and = clone apply}",
	"{fn quote2 = quote swap quote swap compose}",
	"{fn quote3 = quote2 swap quote swap compose}",
	"{fn rotate3 = quote2 swap quote compose apply}",
	"{fn rotate4 = quote3 swap quote compose apply}",
	"{fn compose2 = compose}",
	"{fn compose3 = compose compose2}",
	"{fn compose4 = compose compose3}",
	"{fn compose5 = compose compose4}",
	"{fn n0 = drop}",
	"{fn n1 = [clone] n0 [compose] n0 apply}",
	"{fn n2 = [clone] n1 [compose] n1 apply}",
	"{fn n3 = [clone] n2 [compose] n2 apply}",
	"{fn n4 = [clone] n3 [compose] n3 apply}",
	"{fn succ = [[clone]] swap clone [[compose]] swap [apply] compose5}",
	"{fn add = [succ] swap apply}",
	"{fn mul = [n0] rotate3 quote [add] compose rotate3 apply}",
}

// prelude is parsed once; the programs it holds are shared by all sessions,
// which is safe since terms are never mutated.
var prelude = func() []Definition {
	var all []Definition
	for _, src := range preludeSources {
		defs, err := ParseDefinitions(src)
		if err != nil {
			panic(fmt.Sprintf("invalid prelude definition %q: %v", src, err))
		}
		all = append(all, defs...)
	}
	return all
}()

// Prelude returns the definitions every session starts with.
func Prelude() []Definition {
	return append([]Definition(nil), prelude...)
}

// ParseDefinitions parses text consisting only of definitions, such as
// "{fn dup2 = clone clone} {fn nip = swap drop}".
func ParseDefinitions(text string) ([]Definition, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	items, err := parseItems(toks)
	if err != nil {
		return nil, err
	}
	defs := make([]Definition, 0, len(items))
	for _, it := range items {
		if it.def == nil {
			return nil, fmt.Errorf("expected only definitions, got expression %v", it.expr)
		}
		defs = append(defs, *it.def)
	}
	return defs, nil
}
