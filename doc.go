/*
Command goucc is an interpreter for the Untyped Concatenative Calculus.

The calculus has no numbers, strings, or variables: a program is a sequence of
words and quotations, and the only values are quotations, kept on a stack.
Seven intrinsic words shuffle and combine quotations; everything else, from
booleans to numerals and arithmetic, is defined in terms of them. See package
ucc for the language itself.

Usage:

	goucc [flags] [file ...]

With no file arguments, goucc starts an interactive session. Lines that leave
a "[", "(", or "{" open are continued at a "... " prompt. An interrupt (^C)
abandons the evaluation in progress, leaving the stack and definitions as they
were before it started.

File arguments are loaded in order into a single session, each line evaluated
as it is read, and each evaluation's transcript written to standard output.
Errors are also logged to standard error, after which goucc exits non-zero.
With -i, an interactive session follows the files.

With -batch, each file instead runs in a session of its own, all at once,
every output line labeled by file name.

Flags:

	-trace       log every reduction step, and session bookkeeping, to stderr
	-timeout d   interrupt any evaluation that runs longer than d
	-max-steps n interrupt any evaluation that takes more than n steps
	-no-prelude  start without the standard definitions
	-tee file    also write output to file
	-dump        dump the session state when an evaluation is interrupted
	-history f   interactive history file, ~/.ucc_history by default

Interactive commands all start with ":"; type ":help" for a list.

A short session:

	>>> [n1] [n2] add
	⟨⟩ [n1] [n2] add
	⇓ ⟨[n3]⟩
	>>> {fn twice = clone compose}
	Defined `twice`.
	>>> :trace [a] twice
	⟨[n3]⟩ [a] twice
	⟶ ⟨[n3] [a]⟩ twice
	⟶ ⟨[n3] [a]⟩ clone compose
	⟶ ⟨[n3] [a] [a]⟩ compose
	⟶ ⟨[n3] [a a]⟩
*/
package main
