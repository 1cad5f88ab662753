package winlog

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Event is one write as handed to the OS layer.
type Event struct {
	Severity Severity
	Category uint16
	Code     uint32
	// User is the resolved SID of the reporting principal, nil when none was requested.
	User    fmt.Stringer
	Strings []string
}

// Source is an open handle on an event log source.
type Source interface {
	Report(ev Event) error
	Close() error
}

// OS is the event log facility of the host. Errors from it should be *OSError.
type OS interface {
	// ResolveUser converts a textual SID to the native form.
	ResolveUser(sid string) (fmt.Stringer, error)
	OpenSource(server, source string) (Source, error)
	// ReportSecurity registers a security event provider for source, writes ev and unregisters it.
	ReportSecurity(source string, ev Event) error
}

// Reporter writes an EventRequest to the event log.
type Reporter struct {
	sys OS
	log zerolog.Logger
}

// NewReporter returns a Reporter writing through sys. Failures that do not stop a report, such as
// releasing the event source, are logged to log.
func NewReporter(sys OS, log zerolog.Logger) *Reporter {
	return &Reporter{sys: sys, log: log}
}

// Report performs req.RepeatCount writes, one after another. The first failure stops the loop.
func (r *Reporter) Report(req EventRequest) error {
	ev := Event{
		Severity: req.Severity,
		Category: req.Category,
		Code:     req.EventCode(),
		Strings:  req.Description,
	}

	// The SID is resolved before the source is registered so a bad -u never opens a handle.
	if req.UserID != "" {
		user, err := r.sys.ResolveUser(req.UserID)
		if errors.Is(err, ErrUnsupported) {
			return err
		}
		if err != nil {
			r.log.Debug().Err(err).Str("user", req.UserID).Msg("SID conversion failed")
			return &UsageError{Token: req.UserID, Reason: "Invalid user ID"}
		}
		ev.User = user
	}

	src, err := r.sys.OpenSource(req.Server, req.Source)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			r.log.Warn().Err(cerr).Str("source", req.Source).Msg("Failed to release event source")
		}
	}()

	logger := r.log.With().
		Str("source", req.Source).
		Uint32("code", ev.Code).
		Str("type", req.Severity.String()).
		Bool("security", req.Security).
		Logger()

	for i := 0; i < req.RepeatCount; i++ {
		if req.Security {
			err = r.sys.ReportSecurity(req.Source, ev)
		} else {
			err = src.Report(ev)
		}
		if err != nil {
			logger.Debug().Err(err).Int("iteration", i+1).Msg("Report failed")
			return err
		}
		logger.Debug().Int("iteration", i+1).Msg("Event reported")
	}
	return nil
}
