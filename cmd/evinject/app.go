package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	winlog "github.com/werbes/goevinject"
)

var version = "dev"

// injector runs one invocation against an event log facility.
type injector struct {
	stdout   io.Writer
	stderr   io.Writer
	newOS    func(zerolog.Logger) winlog.OS
	verifier winlog.Verifier
	now      func() time.Time
}

func newApp(in *injector) *cli.App {
	app := cli.NewApp()
	app.Name = "evinject"
	app.HelpName = "evinject"
	app.Usage = "injects entries into the Windows Event Log"
	app.Version = version
	app.HideHelp = true
	app.HideVersion = true
	app.Writer = in.stdout
	app.Commands = []cli.Command{
		{
			Name:            "inject",
			Usage:           "report an event (default command)",
			SkipFlagParsing: true,
			HideHelp:        true,
			Action: func(c *cli.Context) error {
				return exitWith(in.run(c.App.Name, c.Args()))
			},
		},
		{
			Name:      "install",
			Usage:     "register an event source backed by EventCreate.exe messages",
			ArgsUsage: "SOURCE",
			HideHelp:  true,
			Action: func(c *cli.Context) error {
				return exitWith(in.manageSource(c.Args().First(), "installed", winlog.InstallSource))
			},
		},
		{
			Name:      "remove",
			Usage:     "remove a registered event source",
			ArgsUsage: "SOURCE",
			HideHelp:  true,
			Action: func(c *cli.Context) error {
				return exitWith(in.manageSource(c.Args().First(), "removed", winlog.RemoveSource))
			},
		},
		{
			Name:     "version",
			Usage:    "print the version",
			HideHelp: true,
			Action: func(c *cli.Context) error {
				fmt.Fprintf(in.stdout, "%s %s (%s_%s)\n", c.App.Name, c.App.Version, runtime.GOOS, runtime.GOARCH)
				return nil
			},
		},
	}
	return app
}

// withDefaultCommand routes everything that does not start with a command name to inject.
func withDefaultCommand(app *cli.App, args []string) []string {
	if len(args) == 0 {
		return []string{app.Name, "inject"}
	}
	if len(args) > 1 && app.Command(args[1]) != nil {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], "inject")
	return append(out, args[1:]...)
}

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return cli.NewExitError("", code)
}

func (in *injector) run(prog string, args []string) int {
	res, err := winlog.Parse(args)
	if err != nil {
		in.printError(err)
		return winlog.ExitCode(err)
	}
	if res.Help {
		printUsage(in.stdout, prog)
		return 0
	}

	var layers []winlog.Overrides
	if res.Profile != "" {
		profile, err := winlog.LoadProfile(res.Profile)
		if err != nil {
			fmt.Fprintf(in.stdout, "Invalid profile %s: %v\n", res.Profile, err)
			return 1
		}
		layers = append(layers, profile)
	}
	layers = append(layers, res.Overrides)

	opts, err := winlog.Resolve(layers...)
	if err != nil {
		in.printError(err)
		return winlog.ExitCode(err)
	}

	logger := winlog.NewLogger(in.stderr, opts.LogLevel).With().Str("run", uuid.NewString()).Logger()
	req := opts.Request
	logger.Info().
		Str("source", req.Source).
		Str("server", req.Server).
		Uint32("code", req.EventCode()).
		Int("count", req.RepeatCount).
		Msg("Reporting events")

	// Event log timestamps have a resolution of one second.
	start := in.now().Truncate(time.Second)
	if err := winlog.NewReporter(in.newOS(logger), logger).Report(req); err != nil {
		in.printError(err)
		return winlog.ExitCode(err)
	}

	if opts.Verify {
		in.verify(logger, req, start)
	}
	return 0
}

// verify only reports; a failed or short count never changes the exit code.
func (in *injector) verify(logger zerolog.Logger, req winlog.EventRequest, start time.Time) {
	n, err := in.verifier.CountSince(req, start)
	if err != nil {
		logger.Error().Err(err).Msg("Verification failed")
		return
	}
	if n < req.RepeatCount {
		logger.Warn().Int("expected", req.RepeatCount).Int("found", n).Msg("Fewer events found than reported")
	} else {
		logger.Info().Int("found", n).Msg("Events verified")
	}
	fmt.Fprintf(in.stdout, "Verified %d of %d events.\n", n, req.RepeatCount)
}

func (in *injector) manageSource(source, done string, op func(string) error) int {
	if source == "" {
		fmt.Fprintln(in.stdout, "Missing event source name.")
		return 1
	}
	if err := op(source); err != nil {
		in.printError(err)
		return winlog.ExitCode(err)
	}
	fmt.Fprintf(in.stdout, "Event source %q %s.\n", source, done)
	return 0
}

func (in *injector) printError(err error) {
	var usageErr *winlog.UsageError
	var osErr *winlog.OSError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintln(in.stdout, usageErr.Error())
		fmt.Fprintln(in.stdout, "Use -h for help.")
	case errors.As(err, &osErr):
		fmt.Fprintf(in.stdout, "Error while %s.\nError code: %d\n", osErr.Op, osErr.Code)
		fmt.Fprintln(in.stdout, "For more information regarding error codes refer to Microsoft system error codes.")
	default:
		fmt.Fprintf(in.stdout, "Error: %v\n", err)
	}
}
