package ucc

import "sort"

// Definitions resolves words to their bodies; it is all a Reducer needs to
// know about names.
type Definitions interface {
	Lookup(name string) (Program, bool)
}

// Dictionary holds named definitions.
//
// A dictionary may be layered over a parent with Child: lookups fall through
// to the parent, while definitions stay in the child until Commit. Sessions
// use a child layer for each evaluation so that an abandoned evaluation
// leaves no definitions behind.
type Dictionary struct {
	parent *Dictionary

	defs  map[string]Program
	order []string // names in the order first defined in this layer

	// bodies indexes names by body key, in definition order, for Compress.
	bodies map[string][]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary { return &Dictionary{} }

// Child returns a new empty layer over d.
func (d *Dictionary) Child() *Dictionary { return &Dictionary{parent: d} }

// Lookup returns the body bound to name in d or any of its parents.
func (d *Dictionary) Lookup(name string) (Program, bool) {
	for ; d != nil; d = d.parent {
		if body, defined := d.defs[name]; defined {
			return body, true
		}
	}
	return nil, false
}

// Define binds name to body in this layer, returning whether name was
// already defined (here or in a parent).
func (d *Dictionary) Define(name string, body Program) (redefined bool) {
	_, redefined = d.Lookup(name)
	if d.defs == nil {
		d.defs = make(map[string]Program)
		d.bodies = make(map[string][]string)
	}
	if prior, here := d.defs[name]; !here {
		d.order = append(d.order, name)
	} else {
		d.unindex(prior.key(), name)
	}
	d.defs[name] = body
	key := body.key()
	d.bodies[key] = append(d.bodies[key], name)
	return redefined
}

// unindex removes name from the names indexed under key.
func (d *Dictionary) unindex(key, name string) {
	names := d.bodies[key]
	for i, n := range names {
		if n == name {
			names = append(names[:i:i], names[i+1:]...)
			break
		}
	}
	if len(names) == 0 {
		delete(d.bodies, key)
	} else {
		d.bodies[key] = names
	}
}

// Commit moves this layer's definitions into its parent, in the order they
// were made, leaving the layer empty.
func (d *Dictionary) Commit() {
	if d.parent == nil {
		return
	}
	for _, name := range d.order {
		d.parent.Define(name, d.defs[name])
	}
	d.defs, d.order, d.bodies = nil, nil, nil
}

// Len returns the number of distinct names visible through d.
func (d *Dictionary) Len() int { return len(d.Names()) }

// Names returns every name visible through d, sorted.
func (d *Dictionary) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for l := d; l != nil; l = l.parent {
		for name := range l.defs {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// NameOf returns the most recently defined name whose current body equals
// body.
func (d *Dictionary) NameOf(body Program) (string, bool) {
	key := body.key()
	for l := d; l != nil; l = l.parent {
		names := l.bodies[key]
		for i := len(names) - 1; i >= 0; i-- {
			name := names[i]
			// a stale entry, left by a later redefinition, must not match
			if cur, _ := d.Lookup(name); cur.key() == key {
				return name, true
			}
		}
	}
	return "", false
}

// Compress replaces each stack value whose body is exactly the body of some
// definition by the quotation of that definition's name, returning true if
// any value changed. A value that is already a single defined name is left
// alone.
func (d *Dictionary) Compress(stack Stack) (compressed bool) {
	for i, v := range stack {
		if len(v) == 0 {
			continue
		}
		if w, isWord := v[0].(Word); isWord && len(v) == 1 {
			if _, defined := d.Lookup(string(w)); defined {
				continue
			}
		}
		if name, found := d.NameOf(Program(v)); found {
			stack[i] = Quote{Word(name)}
			compressed = true
		}
	}
	return compressed
}
