//go:build !windows
// +build !windows

package winlog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type unsupportedOS struct{}

// NewSystemOS returns an OS whose every operation fails with ErrUnsupported.
func NewSystemOS(zerolog.Logger) OS {
	return unsupportedOS{}
}

func (unsupportedOS) ResolveUser(string) (fmt.Stringer, error) {
	return nil, ErrUnsupported
}

func (unsupportedOS) OpenSource(string, string) (Source, error) {
	return nil, ErrUnsupported
}

func (unsupportedOS) ReportSecurity(string, Event) error {
	return ErrUnsupported
}

type unsupportedVerifier struct{}

// NewWMIVerifier returns a Verifier that always fails with ErrUnsupported.
func NewWMIVerifier() Verifier {
	return unsupportedVerifier{}
}

func (unsupportedVerifier) CountSince(EventRequest, time.Time) (int, error) {
	return 0, ErrUnsupported
}

// InstallSource fails with ErrUnsupported; event sources live in the Windows registry.
func InstallSource(string) error {
	return ErrUnsupported
}

// RemoveSource fails with ErrUnsupported.
func RemoveSource(string) error {
	return ErrUnsupported
}
