package main

import (
	"fmt"
	"io"
)

const usageText = `Windows Event Injector
Usage: %[1]s [-S] [-w] [-c count] [-s eventSource] [-t eventType] [-C eventCategory] [-i eventID]
       %[2]*[3]s [-d eventDescription...] [-u uid] [-q qualifier] [-v server] [-f profile] [-l level]
       %[1]s install|remove eventSource
       %[1]s version
   -c count: Number of times to repeat event.
   -s eventSource: Source, also called "Provider Name" in Windows Event Viewer.
   -t eventType: Event "level".
                 Available options - SUCCESS; AUDIT_FAIL; AUDIT_SUCCESS; ERROR; INFO; WARNING
   -C eventCategory: Also called "Task" and "Task Category" in Windows Event Viewer.
   -i eventID: Event ID.
   -d eventDescription: Data passed to the event viewer, space separated strings/values (limited to 50).
                        The number of parameters is event ID and event source dependent.
                        Example usage: '-d arg1 arg2 3333 "argument 4"'
   -u uid: User SID attached to the event. String SID format (S-N-N-...-N).
   -q qualifier: Event ID qualifier, the high 16 bits of the event code.
   -v server: UNC server name to which the event is reported.
   -S: Writes to the security log (requires the audit privilege).
   -w: Counts the written events through WMI afterwards.
   -f profile: YAML file with default values; flags on the command line take precedence.
   -l level: Diagnostic log level on stderr (debug, info, warn, error).
   -h: This message.
All arguments are optional, the default behaviour is to fire a
"Windows Error Reporting" warning event once with no description, 1001 event ID and 0x0 category.
Parameters may be prefixed by "/" or "-".
Use "install" to register a new event source backed by EventCreate.exe messages.
Hexadecimal values for event IDs/categories/types are not supported.
`

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, usageText, prog, len(prog), "")
}
