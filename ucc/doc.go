/*
Package ucc implements the Untyped Concatenative Calculus: a tiny language
whose only values are quotations, and whose programs are sequences of words
and quotations that rewrite a stack of values one step at a time.

# Syntax

Source text is whitespace separated. The runes [ ] ( ) { } are delimiters,
each a token by itself; every other run of graphic runes is a word.

	[a b c]            a quotation, pushed as a value when reduced
	(a b c)            a group, spliced in place; the same as a b c
	{fn name = a b c}  a definition, only at the top level of session input

The words fn and = are reserved within definitions only.

# Reduction

A configuration pairs a stack with the remainder of a program. Each step
rewrites the first term of the remainder:

	⟨s⟩ [a] p               ⟶ ⟨s [a]⟩ p
	⟨s [a] [b]⟩ swap p      ⟶ ⟨s [b] [a]⟩ p
	⟨s [a]⟩ clone p         ⟶ ⟨s [a] [a]⟩ p
	⟨s [a]⟩ drop p          ⟶ ⟨s⟩ p
	⟨s [a]⟩ quote p         ⟶ ⟨s [[a]]⟩ p
	⟨s [a] [b]⟩ compose p   ⟶ ⟨s [a b]⟩ p
	⟨s [a]⟩ apply p         ⟶ ⟨s⟩ a p
	⟨s [a]⟩ print p         ⟶ ⟨s⟩ p, writing [a]
	⟨s⟩ name p              ⟶ ⟨s⟩ body p, for a defined name

Reduction stops with an empty remainder, or on a word that is neither an
intrinsic nor defined, or on an intrinsic given too few values.

# Sessions

A Session evaluates input cooperatively: Start parses input and Step
performs one reduction, writing a transcript to a Sink. Values left on the
stack, and definitions made, carry over to later input.

After every step, any stack value whose contents are exactly the body of a
definition is shown by that definition's name instead; so the prelude's
numerals print as [n2] rather than as their expansion.
*/
package ucc
