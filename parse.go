package winlog

import (
	"strconv"
)

// ParseResult is the outcome of a successful Parse. When Help is set, nothing else is meaningful.
type ParseResult struct {
	Help      bool
	Overrides Overrides
	// Profile is the path given with -f, applied below the command line overrides.
	Profile string
}

func isFlag(token string) bool {
	return token != "" && (token[0] == '-' || token[0] == '/')
}

func isHelp(token string) bool {
	return len(token) >= 2 && isFlag(token) && token[1] == 'h'
}

// Parse scans the arguments (without the program name). A token starting with '-' or '/' is a
// flag selected by its second character; value flags take the next token verbatim. -h anywhere,
// even where a value is expected, wins over every other flag and over malformed input. A value
// flag with nothing after it is read as a request for help, unless an earlier token already failed.
func Parse(args []string) (ParseResult, error) {
	for _, token := range args {
		if isHelp(token) {
			return ParseResult{Help: true}, nil
		}
	}

	var (
		res      ParseResult
		firstErr error
	)
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

scan:
	for i := 0; i < len(args); i++ {
		token := args[i]
		if !isFlag(token) {
			continue
		}
		if len(token) < 2 {
			fail(&UsageError{Token: token, Reason: "Unknown argument"})
			continue
		}

		opt := token[1]
		switch opt {
		case 'S':
			res.Overrides.Security = boolPtr(true)
			continue
		case 'w':
			res.Overrides.Verify = boolPtr(true)
			continue
		case 'd':
			if i+1 >= len(args) {
				res.Help = true
				break scan
			}
			fields := []string{}
			for i+1 < len(args) && !isFlag(args[i+1]) {
				i++
				fields = append(fields, args[i])
			}
			if len(fields) > MaxDescriptionFields {
				fail(&UsageError{
					Token:  strconv.Itoa(len(fields)),
					Reason: "Too many description fields (limit " + strconv.Itoa(MaxDescriptionFields) + "):",
				})
				continue
			}
			res.Overrides.Description = fields
			continue
		case 'c', 's', 't', 'C', 'i', 'u', 'q', 'v', 'f', 'l':
		default:
			fail(&UsageError{Token: token, Reason: "Unknown argument"})
			continue
		}

		if i+1 >= len(args) {
			res.Help = true
			break
		}
		i++
		if err := setValue(&res, opt, args[i]); err != nil {
			fail(err)
		}
	}

	if firstErr != nil {
		return ParseResult{}, firstErr
	}
	if res.Help {
		return ParseResult{Help: true}, nil
	}
	return res, nil
}

func setValue(res *ParseResult, opt byte, value string) error {
	o := &res.Overrides
	switch opt {
	case 'c':
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil || n < 1 {
			return &UsageError{Token: value, Reason: "Invalid argument"}
		}
		count := int(n)
		o.RepeatCount = &count
	case 'C', 'i', 'q':
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return &UsageError{Token: value, Reason: "Invalid argument"}
		}
		v := uint16(n)
		switch opt {
		case 'C':
			o.Category = &v
		case 'i':
			o.EventID = &v
		default:
			o.Qualifier = &v
		}
	case 't':
		sev, err := ParseSeverity(value)
		if err != nil {
			return &UsageError{Token: value, Reason: "Invalid event type"}
		}
		o.Severity = &sev
	case 's':
		o.Source = &value
	case 'u':
		o.UserID = &value
	case 'v':
		o.Server = &value
	case 'l':
		if _, err := ParseLogLevel(value); err != nil {
			return &UsageError{Token: value, Reason: "Invalid log level"}
		}
		o.LogLevel = &value
	case 'f':
		res.Profile = value
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
