package ucc

// Option configures a Session.
type Option interface{ apply(sess *Session) }

var defaults = []Option{
	withPrelude(true),
}

func (sess *Session) apply(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(sess)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(sess)
		}
	}
}

// WithLogf installs a printf-style function that receives a trace of session
// lifecycle events and every reduction step.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithoutPrelude starts the session (and every :reset) with no definitions.
func WithoutPrelude() Option { return withPrelude(false) }

// WithDefinitions adds definitions after the prelude, in order; they are
// restored by :reset along with the prelude.
func WithDefinitions(defs ...Definition) Option { return withDefinitions(defs) }

type withLogfn func(mess string, args ...interface{})
type withPrelude bool
type withDefinitions []Definition

func (logfn withLogfn) apply(sess *Session) {
	sess.logfn = logfn
	sess.reducer.logfn = logfn
}

func (prelude withPrelude) apply(sess *Session) {
	sess.prelude = bool(prelude)
}

func (defs withDefinitions) apply(sess *Session) {
	sess.extra = append(sess.extra, defs...)
}
