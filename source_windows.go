//go:build windows
// +build windows

package winlog

import (
	"golang.org/x/sys/windows/svc/eventlog"
)

// InstallSource registers source under the Application log with EventCreate.exe as its
// message file, so events with arbitrary ids render their insertion strings.
func InstallSource(source string) error {
	err := eventlog.InstallAsEventCreate(source, eventlog.Error|eventlog.Warning|eventlog.Info)
	return newOSError("installing event source", err)
}

// RemoveSource deletes the registry entries of source.
func RemoveSource(source string) error {
	return newOSError("removing event source", eventlog.Remove(source))
}
