package winlog

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"
)

func mustResolve(t *testing.T, args ...string) EventRequest {
	t.Helper()
	res, err := Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	if res.Help {
		t.Fatalf("Parse(%q) asked for help", args)
	}
	opts, err := Resolve(res.Overrides)
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", args, err)
	}
	return opts.Request
}

func expectUsageError(t *testing.T, args []string) *UsageError {
	t.Helper()
	_, err := Parse(args)
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("Parse(%q) error = %v, want *UsageError", args, err)
	}
	if ExitCode(err) != 1 {
		t.Fatalf("ExitCode = %d, want 1", ExitCode(err))
	}
	return usageErr
}

func TestParseDefaults(t *testing.T) {
	req := mustResolve(t)
	want := EventRequest{
		RepeatCount: 1,
		Source:      "Windows Error Reporting",
		Severity:    SeverityWarning,
		EventID:     1001,
	}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("got %+v, want %+v", req, want)
	}
}

func TestParseAllFlags(t *testing.T) {
	req := mustResolve(t,
		"-c", "3", "/s", "MyApp", "-t", "error", "-C", "7", "-i", "42",
		"-u", "S-1-5-18", "-q", "2", "/v", `\\host`, "-S", "-d", "one", "two")
	want := EventRequest{
		RepeatCount: 3,
		Source:      "MyApp",
		Severity:    SeverityError,
		Category:    7,
		EventID:     42,
		Qualifier:   2,
		UserID:      "S-1-5-18",
		Description: []string{"one", "two"},
		Security:    true,
		Server:      `\\host`,
	}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("got %+v, want %+v", req, want)
	}
}

func TestParseRepeatCount(t *testing.T) {
	for _, n := range []int{1, 2, 10, 65535, 1000000} {
		req := mustResolve(t, "-c", strconv.Itoa(n))
		if req.RepeatCount != n {
			t.Errorf("-c %d: RepeatCount = %d", n, req.RepeatCount)
		}
	}
}

func TestParseInvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non numeric count", []string{"-c", "abc"}},
		{"trailing garbage", []string{"-c", "12abc"}},
		{"hex id", []string{"-i", "0x10"}},
		{"float category", []string{"-C", "1.5"}},
		{"zero count", []string{"-c", "0"}},
		{"negative id", []string{"-i", "-5"}},
		{"id over 16 bits", []string{"-i", "65536"}},
		{"qualifier over 16 bits", []string{"-q", "70000"}},
		{"empty", []string{"-c", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usageErr := expectUsageError(t, tt.args)
			if usageErr.Token != tt.args[1] {
				t.Errorf("Token = %q, want %q", usageErr.Token, tt.args[1])
			}
		})
	}
}

func TestParseSeverityNames(t *testing.T) {
	tests := map[string]Severity{
		"SUCCESS":       SeveritySuccess,
		"success":       SeveritySuccess,
		"AUDIT_FAIL":    SeverityAuditFail,
		"audit_Fail":    SeverityAuditFail,
		"AUDIT_SUCCESS": SeverityAuditSuccess,
		"Error":         SeverityError,
		"info":          SeverityInfo,
		"WARNING":       SeverityWarning,
	}
	for name, want := range tests {
		req := mustResolve(t, "-t", name)
		if req.Severity != want {
			t.Errorf("-t %s: got %v, want %v", name, req.Severity, want)
		}
	}

	for _, bad := range []string{"CRITICAL", "WARN", "", "AUDIT"} {
		usageErr := expectUsageError(t, []string{"-t", bad})
		if usageErr.Reason != "Invalid event type" {
			t.Errorf("-t %q: reason %q", bad, usageErr.Reason)
		}
	}
}

func TestParseDescriptionStopsAtFlag(t *testing.T) {
	req := mustResolve(t, "-d", "a", "b", "c", "-s", "X")
	if !reflect.DeepEqual(req.Description, []string{"a", "b", "c"}) {
		t.Errorf("Description = %q", req.Description)
	}
	if req.Source != "X" {
		t.Errorf("Source = %q, want X", req.Source)
	}
}

func TestParseDescriptionLimit(t *testing.T) {
	fields := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("f%d", i)
		}
		return out
	}

	req := mustResolve(t, append([]string{"-d"}, fields(MaxDescriptionFields)...)...)
	if len(req.Description) != MaxDescriptionFields {
		t.Fatalf("got %d fields, want %d", len(req.Description), MaxDescriptionFields)
	}

	args := append([]string{"-d"}, fields(60)...)
	args = append(args, "-s", "X")
	usageErr := expectUsageError(t, args)
	if usageErr.Token != "60" {
		t.Errorf("Token = %q, want 60", usageErr.Token)
	}
}

func TestParseDescriptionReplacedByLaterFlag(t *testing.T) {
	req := mustResolve(t, "-d", "a", "b", "-c", "2", "-d", "z")
	if !reflect.DeepEqual(req.Description, []string{"z"}) {
		t.Errorf("Description = %q, want [z]", req.Description)
	}

	req = mustResolve(t, "-d", "a", "-d", "-S")
	if len(req.Description) != 0 {
		t.Errorf("Description = %q, want empty", req.Description)
	}
}

func TestParseTrailingDescriptionFlagAsksForHelp(t *testing.T) {
	for _, args := range [][]string{{"-d"}, {"-c", "2", "-d"}, {"-d", "a", "-d"}, {"/d"}} {
		res, err := Parse(args)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", args, err)
			continue
		}
		if !res.Help {
			t.Errorf("Parse(%q) did not ask for help", args)
		}
	}
}

func TestParseLastOccurrenceWins(t *testing.T) {
	req := mustResolve(t, "-s", "first", "-i", "1", "-s", "second", "-i", "2")
	if req.Source != "second" || req.EventID != 2 {
		t.Errorf("got source %q id %d", req.Source, req.EventID)
	}
}

func TestParseEventCode(t *testing.T) {
	req := mustResolve(t, "-q", "1", "-i", "5")
	if got := req.EventCode(); got != 65541 {
		t.Errorf("EventCode = %d, want 65541", got)
	}
}

func TestParseHelpShortCircuits(t *testing.T) {
	tests := [][]string{
		{"-h"},
		{"/h"},
		{"-c", "3", "-h"},
		{"-x", "-h"},
		{"-c", "abc", "-h"},
		{"-h", "-t", "bogus"},
		{"-d", "a", "b", "-h", "c"},
		{"-s", "-h"},
		{"-u", "/h"},
		{"-s", "-help", "-c", "2"},
	}
	for _, args := range tests {
		res, err := Parse(args)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", args, err)
			continue
		}
		if !res.Help {
			t.Errorf("Parse(%q) did not ask for help", args)
		}
	}
}

func TestParseUnknownFlag(t *testing.T) {
	for _, tok := range []string{"-x", "/z", "-", "/"} {
		usageErr := expectUsageError(t, []string{tok})
		if usageErr.Reason != "Unknown argument" || usageErr.Token != tok {
			t.Errorf("%q: got %+v", tok, usageErr)
		}
	}
}

func TestParseMissingValue(t *testing.T) {
	for _, flag := range []string{"-c", "-s", "-t", "-C", "-i", "-u", "-q", "-v", "-f", "-l", "-d"} {
		res, err := Parse([]string{"-S", flag})
		if err != nil {
			t.Errorf("%s: %v", flag, err)
			continue
		}
		if !res.Help {
			t.Errorf("%s: missing value should ask for help", flag)
		}
	}

	// An earlier bad value is reported before the missing one.
	usageErr := expectUsageError(t, []string{"-c", "abc", "-s"})
	if usageErr.Token != "abc" {
		t.Errorf("Token = %q, want abc", usageErr.Token)
	}
}

func TestParseSecurityWithoutSourceOrID(t *testing.T) {
	req := mustResolve(t, "-S")
	if !req.Security {
		t.Fatal("Security not set")
	}
	if req.Source != DefaultSource || req.EventID != DefaultEventID {
		t.Errorf("got source %q id %d", req.Source, req.EventID)
	}
}

func TestParseValuesAreNotFlags(t *testing.T) {
	req := mustResolve(t, "-s", "-S")
	if req.Source != "-S" || req.Security {
		t.Errorf("got source %q security %v", req.Source, req.Security)
	}
}

func TestParseIgnoresStrayTokens(t *testing.T) {
	req := mustResolve(t, "stray", "-i", "9", "another")
	if req.EventID != 9 {
		t.Errorf("EventID = %d, want 9", req.EventID)
	}
}

func TestParseInvocationFlags(t *testing.T) {
	res, err := Parse([]string{"-f", "profile.yaml", "-l", "debug", "-w"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Profile != "profile.yaml" {
		t.Errorf("Profile = %q", res.Profile)
	}
	opts, err := Resolve(res.Overrides)
	if err != nil {
		t.Fatal(err)
	}
	if opts.LogLevel != "debug" || !opts.Verify {
		t.Errorf("got %+v", opts)
	}

	expectUsageError(t, []string{"-l", "chatty"})
}
