package failure

import "errors"

type Severity int

// Severity decides pipeline control flow: a fatal error stops the run, a
// recoverable one is counted and the run goes on.
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	if s == SeverityRecoverable {
		return "recoverable"
	}
	return "fatal"
}

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsFatal reports whether err, or any error it wraps, is a fatal
// ClassifiedError. Unclassified errors are fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Severity() == SeverityFatal
	}
	return true
}
