package panicerr

// Recover runs f in a new goroutine wrapped in a defer logic to recover any
// abnormal exits or panics as non-nil error returns.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}

// Catch runs f on the calling goroutine, returning any panic as a non-nil
// error. Unlike Recover, it does not intercept runtime.Goexit.
func Catch(name string, f func() error) (err error) {
	defer func() {
		if pe, ok := asPanicError(name, recover()); ok {
			err = pe
		}
	}()
	return f()
}
