//go:build windows
// +build windows

package winlog

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"
)

type systemOS struct {
	log zerolog.Logger
}

// NewSystemOS returns the event log facility of the local Windows host. Cleanup failures are
// logged to log.
func NewSystemOS(log zerolog.Logger) OS {
	return systemOS{log: log}
}

func (systemOS) ResolveUser(sid string) (fmt.Stringer, error) {
	s, err := windows.StringToSid(sid)
	if err != nil {
		return nil, newOSError("ConvertStringSidToSid", err)
	}
	return s, nil
}

func (systemOS) OpenSource(server, source string) (Source, error) {
	var wideServer *uint16
	if server != "" {
		p, err := windows.UTF16PtrFromString(server)
		if err != nil {
			return nil, err
		}
		wideServer = p
	}
	wideSource, err := windows.UTF16PtrFromString(source)
	if err != nil {
		return nil, err
	}
	handle, err := windows.RegisterEventSource(wideServer, wideSource)
	if err != nil {
		return nil, newOSError("registering event source", err)
	}
	if handle == 0 {
		return nil, &OSError{Op: "registering event source", Code: uint32(windows.ERROR_INVALID_HANDLE)}
	}
	return &eventSource{handle: handle}, nil
}

func (s systemOS) ReportSecurity(source string, ev Event) error {
	provider, err := authzRegisterSource(source)
	if err != nil {
		return newOSError("registering security event source", err)
	}
	defer func() {
		if uerr := authzUnregisterSource(provider); uerr != nil {
			s.log.Warn().Err(uerr).Str("source", source).Msg("Failed to unregister security event source")
		}
	}()

	if err := authzReportEvent(ev.Severity.AuditFlags(), provider, ev.Code, sidOf(ev.User), ev.Strings); err != nil {
		return newOSError("reporting security event", err)
	}
	return nil
}

type eventSource struct {
	handle windows.Handle
}

func (s *eventSource) Report(ev Event) error {
	var strs **uint16
	wide := make([]*uint16, len(ev.Strings))
	for i, v := range ev.Strings {
		p, err := windows.UTF16PtrFromString(v)
		if err != nil {
			return err
		}
		wide[i] = p
	}
	if len(wide) > 0 {
		strs = &wide[0]
	}

	err := windows.ReportEvent(s.handle, ev.Severity.EventType(), ev.Category, ev.Code,
		uintptr(unsafe.Pointer(sidOf(ev.User))), uint16(len(wide)), 0, strs, nil)
	if err != nil {
		return newOSError("reporting event", err)
	}
	return nil
}

func (s *eventSource) Close() error {
	if s.handle == 0 {
		return nil
	}
	err := windows.DeregisterEventSource(s.handle)
	s.handle = 0
	return err
}

func sidOf(user fmt.Stringer) *windows.SID {
	if sid, ok := user.(*windows.SID); ok {
		return sid
	}
	return nil
}
