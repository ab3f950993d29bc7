package commands

// ExitError carries a specific process exit code up to main. Commands use
// it to distinguish partial failures (interrupted runs, unpublished DNS
// records) from plain errors.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}
func (e *ExitError) Unwrap() error {
	return e.Err
}

func ExitWithCode(code int, err error) *ExitError {
	if err == nil {
		return nil
	}
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

// UsageError marks errors caused by bad invocation rather than a failed run
type UsageError struct{ error }

func (e *UsageError) Unwrap() error {
	return e.error
}
