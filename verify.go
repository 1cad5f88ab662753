package winlog

import (
	"fmt"
	"strings"
	"time"
)

// Verifier counts events that reached the log.
type Verifier interface {
	// CountSince returns how many events matching the source and event code of req were
	// generated on req.Server at or after since.
	CountSince(req EventRequest, since time.Time) (int, error)
}

// wmiTimestamp formats t as a CIM_DATETIME in UTC, e.g. 20240115103045.000000+000.
func wmiTimestamp(t time.Time) string {
	return t.UTC().Format("20060102150405") + fmt.Sprintf(".%06d+000", t.UTC().Nanosecond()/1000)
}

func wqlQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func verifyQuery(req EventRequest, since time.Time) string {
	return fmt.Sprintf("SELECT RecordNumber FROM Win32_NTLogEvent WHERE SourceName='%s' AND EventIdentifier=%d AND TimeGenerated>='%s'",
		wqlQuote(req.Source), req.EventCode(), wmiTimestamp(since))
}

// wmiHost turns a UNC server name into the host ConnectServer expects.
func wmiHost(server string) string {
	host := strings.TrimLeft(server, `\`)
	if host == "" {
		return "."
	}
	return host
}
