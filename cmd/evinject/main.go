package main

import (
	"fmt"
	"os"
	"time"

	winlog "github.com/werbes/goevinject"
)

func main() {
	in := &injector{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		newOS:    winlog.NewSystemOS,
		verifier: winlog.NewWMIVerifier(),
		now:      time.Now,
	}
	app := newApp(in)
	// Exit codes of the commands are handled inside Run; anything left is a CLI problem.
	if err := app.Run(withDefaultCommand(app, os.Args)); err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(1)
	}
}
