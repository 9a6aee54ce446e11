package ucc

import (
	"fmt"
	"strings"
)

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

// logf logs a message under a short mark, padding marks to a common width by
// repeating their first rune so that log lines stay aligned.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
