//go:build windows
// +build windows

package winlog

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// WMIVerifier counts injected events through the Win32_NTLogEvent WMI class.
type WMIVerifier struct{}

// NewWMIVerifier creates a verifier querying root\cimv2 on the target server.
func NewWMIVerifier() Verifier {
	return WMIVerifier{}
}

func (WMIVerifier) CountSince(req EventRequest, since time.Time) (int, error) {
	// COM state is per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Initialize COM
	err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize COM: %v", err)
	}
	defer ole.CoUninitialize()

	// Connect to WMI
	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return 0, fmt.Errorf("failed to create WMI locator: %v", err)
	}
	defer unknown.Release()

	wmi, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return 0, fmt.Errorf("failed to query WMI interface: %v", err)
	}
	defer wmi.Release()

	serviceRaw, err := oleutil.CallMethod(wmi, "ConnectServer", wmiHost(req.Server), `root\cimv2`)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to WMI server: %v", err)
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", verifyQuery(req, since))
	if err != nil {
		return 0, fmt.Errorf("failed to execute WMI query: %v", err)
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return 0, fmt.Errorf("failed to get result count: %v", err)
	}
	return int(countVar.Val), nil
}
