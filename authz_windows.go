//go:build windows
// +build windows

package winlog

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

/* Interop code for authz.dll */

var (
	authzDll = windows.NewLazySystemDLL("authz.dll")

	authzRegisterSecurityEventSource   = authzDll.NewProc("AuthzRegisterSecurityEventSource")
	authzUnregisterSecurityEventSource = authzDll.NewProc("AuthzUnregisterSecurityEventSource")
	authzReportSecurityEventFromParams = authzDll.NewProc("AuthzReportSecurityEventFromParams")
)

// AUDIT_PARAM_TYPE values
const (
	aptNone = iota + 1
	aptString
)

type auditParam struct {
	Type   uint32
	Length uint32
	Flags  uint32
	Data0  uintptr
	Data1  uintptr
}

type auditParams struct {
	Length     uint32
	Flags      uint32
	Count      uint16
	Parameters *auditParam
}

// callProc finds and calls proc. A missing export or a panic inside the call is returned as an error.
func callProc(proc *windows.LazyProc, args ...uintptr) (r1 uintptr, callErr error) {
	if err := proc.Find(); err != nil {
		return 0, fmt.Errorf("missing %v from authz.dll: %w", proc.Name, err)
	}
	defer func() {
		if r := recover(); r != nil {
			callErr = fmt.Errorf("panic in %v: %v", proc.Name, r)
		}
	}()
	r1, _, err := proc.Call(args...)
	if r1 == 0 {
		return r1, err
	}
	return r1, nil
}

type securityProvider uintptr

func authzRegisterSource(sourceName string) (securityProvider, error) {
	wideName, err := windows.UTF16PtrFromString(sourceName)
	if err != nil {
		return 0, err
	}
	var provider securityProvider
	_, err = callProc(authzRegisterSecurityEventSource,
		0,
		uintptr(unsafe.Pointer(wideName)),
		uintptr(unsafe.Pointer(&provider)))
	if err != nil {
		return 0, err
	}
	return provider, nil
}

func authzUnregisterSource(provider securityProvider) error {
	if provider == 0 {
		return fmt.Errorf("invalid provider handle: 0")
	}
	_, err := callProc(authzUnregisterSecurityEventSource, 0, uintptr(unsafe.Pointer(&provider)))
	return err
}

// authzReportEvent writes one audit with each string passed as an APT_String parameter.
func authzReportEvent(flags uint32, provider securityProvider, auditID uint32, user *windows.SID, values []string) error {
	if provider == 0 {
		return fmt.Errorf("invalid provider handle: 0")
	}

	wide := make([]*uint16, len(values))
	params := make([]auditParam, len(values))
	for i, v := range values {
		p, err := windows.UTF16PtrFromString(v)
		if err != nil {
			return err
		}
		wide[i] = p
		params[i] = auditParam{Type: aptString, Data0: uintptr(unsafe.Pointer(p))}
	}

	ap := auditParams{
		Length: uint32(unsafe.Sizeof(auditParams{})),
		Count:  uint16(len(params)),
	}
	if len(params) > 0 {
		ap.Parameters = &params[0]
	}

	_, err := callProc(authzReportSecurityEventFromParams,
		uintptr(flags),
		uintptr(provider),
		uintptr(auditID),
		uintptr(unsafe.Pointer(user)),
		uintptr(unsafe.Pointer(&ap)))
	runtime.KeepAlive(wide)
	runtime.KeepAlive(params)
	return err
}
