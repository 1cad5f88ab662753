//go:build windows
// +build windows

package main

import (
	"fmt"
	"os"
	"time"

	winlog "github.com/werbes/goevinject"
)

// Reports three informational events from an EventCreate backed source and counts them back.
func main() {
	const source = "goevinject-example"

	if err := winlog.InstallSource(source); err != nil {
		fmt.Printf("Couldn't install source (already installed?): %v\n", err)
	}

	req := winlog.DefaultRequest()
	req.Source = source
	req.Severity = winlog.SeverityInfo
	req.EventID = 100
	req.RepeatCount = 3
	req.Description = []string{"injected by the example program"}

	start := time.Now().Truncate(time.Second)
	logger := winlog.NewLogger(os.Stderr, "debug")
	if err := winlog.NewReporter(winlog.NewSystemOS(logger), logger).Report(req); err != nil {
		fmt.Printf("Couldn't report events: %v\n", err)
		os.Exit(winlog.ExitCode(err))
	}

	n, err := winlog.NewWMIVerifier().CountSince(req, start)
	if err != nil {
		fmt.Printf("Couldn't verify events: %v\n", err)
		return
	}
	fmt.Printf("Found %d of %d events in the Application log\n", n, req.RepeatCount)
}
