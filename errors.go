package winlog

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrUnsupported is returned by every OS operation on hosts without a Windows event log.
var ErrUnsupported = errors.New("the Windows event log is not available on this platform")

// UsageError is a problem with the arguments, detected before anything is written.
type UsageError struct {
	Token  string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Token == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Reason, e.Token)
}

// OSError is a failed call into the event log API. Code is the Win32 error code.
type OSError struct {
	Op   string
	Code uint32
	Err  error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%s: error code %d", e.Op, e.Code)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// newOSError wraps err from the API call op, taking its Win32 error code when it carries one.
func newOSError(op string, err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	code := uint32(1)
	if errors.As(err, &errno) && errno != 0 {
		code = uint32(errno)
	}
	return &OSError{Op: op, Code: code, Err: err}
}

// ExitCode maps an error returned by this package to a process exit status:
// 0 for nil, the Win32 error code for an OSError and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var osErr *OSError
	if errors.As(err, &osErr) && osErr.Code != 0 {
		return int(osErr.Code)
	}
	return 1
}
