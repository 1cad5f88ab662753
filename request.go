// Package winlog injects entries into the Windows Event Log and the Security Log.
package winlog

import (
	"fmt"
	"strings"
)

// MaxDescriptionFields is the largest number of insertion strings a single event may carry.
const MaxDescriptionFields = 50

const (
	DefaultSource   = "Windows Error Reporting"
	DefaultEventID  = 1001
	DefaultLogLevel = "warn"
)

// Severity is the event level of an injected event.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityAuditFail
	SeverityAuditSuccess
)

var severityNames = map[Severity]string{
	SeveritySuccess:      "SUCCESS",
	SeverityError:        "ERROR",
	SeverityWarning:      "WARNING",
	SeverityInfo:         "INFO",
	SeverityAuditFail:    "AUDIT_FAIL",
	SeverityAuditSuccess: "AUDIT_SUCCESS",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity maps one of SUCCESS, AUDIT_FAIL, AUDIT_SUCCESS, ERROR, INFO or WARNING
// (any case) to its Severity.
func ParseSeverity(name string) (Severity, error) {
	upper := strings.ToUpper(name)
	for sev, n := range severityNames {
		if n == upper {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("invalid event type %s", name)
}

/* Event types understood by ReportEvent */
const (
	eventlogSuccess      = 0x0000
	eventlogError        = 0x0001
	eventlogWarning      = 0x0002
	eventlogInformation  = 0x0004
	eventlogAuditSuccess = 0x0008
	eventlogAuditFailure = 0x0010
)

// EventType returns the ReportEvent event type for the severity.
func (s Severity) EventType() uint16 {
	switch s {
	case SeverityError:
		return eventlogError
	case SeverityWarning:
		return eventlogWarning
	case SeverityInfo:
		return eventlogInformation
	case SeverityAuditSuccess:
		return eventlogAuditSuccess
	case SeverityAuditFail:
		return eventlogAuditFailure
	}
	return eventlogSuccess
}

/* Audit flags understood by AuthzReportSecurityEvent */
const (
	apfAuditFailure = 0x0
	apfAuditSuccess = 0x1
)

// AuditFlags returns the security log flag for the severity. Only AUDIT_FAIL reports
// a failure audit.
func (s Severity) AuditFlags() uint32 {
	if s == SeverityAuditFail {
		return apfAuditFailure
	}
	return apfAuditSuccess
}

// EventRequest describes the event to inject. It is built once and not modified while reporting.
type EventRequest struct {
	RepeatCount int
	Source      string
	Severity    Severity
	Category    uint16
	EventID     uint16
	Qualifier   uint16
	// UserID is a textual SID; empty means no user is attached.
	UserID      string
	Description []string
	Security    bool
	// Server is the UNC name of the target host; empty means the local host.
	Server string
}

// DefaultRequest returns the request used when no flag overrides a field.
func DefaultRequest() EventRequest {
	return EventRequest{
		RepeatCount: 1,
		Source:      DefaultSource,
		Severity:    SeverityWarning,
		EventID:     DefaultEventID,
	}
}

// EventCode combines the qualifier and the event id into the full 32 bit event code.
func (r EventRequest) EventCode() uint32 {
	return uint32(r.Qualifier)<<16 | uint32(r.EventID)
}

// Validate checks the constraints the parser cannot see, e.g. values read from a profile.
func (r EventRequest) Validate() error {
	if r.RepeatCount < 1 {
		return fmt.Errorf("repeat count must be at least 1, got %d", r.RepeatCount)
	}
	if r.Source == "" {
		return fmt.Errorf("event source is required")
	}
	if _, ok := severityNames[r.Severity]; !ok {
		return fmt.Errorf("invalid event type %v", r.Severity)
	}
	if len(r.Description) > MaxDescriptionFields {
		return fmt.Errorf("too many description fields: %d (limit %d)", len(r.Description), MaxDescriptionFields)
	}
	return nil
}

// Options is a resolved invocation: the request plus settings that only affect this run.
type Options struct {
	Request  EventRequest
	LogLevel string
	Verify   bool
}

// Resolve applies the override layers in order on top of the defaults and validates the result.
func Resolve(layers ...Overrides) (Options, error) {
	opts := Options{
		Request:  DefaultRequest(),
		LogLevel: DefaultLogLevel,
	}
	for _, layer := range layers {
		layer.apply(&opts)
	}
	if err := opts.Request.Validate(); err != nil {
		return Options{}, &UsageError{Reason: err.Error()}
	}
	if _, err := ParseLogLevel(opts.LogLevel); err != nil {
		return Options{}, &UsageError{Reason: err.Error()}
	}
	return opts, nil
}
