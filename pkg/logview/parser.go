package logview

import (
	"regexp"
	"strings"
	"time"
)

// lineRE is the grammar of one server XMLRPC audit line:
//
//	2016/06/21 14:01:07 +01:00 29079 172.16.41.79: rhnServer/server_certificate.valid('Server id ... not found',)
//
// The argument list is optional; its first element is captured as client_id
// only when it is purely numeric and followed by a comma.
var lineRE = regexp.MustCompile(
	`^(?P<timestamp>\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} [+-]?\d{2}:\d{2}) ` +
		`(?P<pid>\d+) (?P<client_ip>\S+): ` +
		`(?P<module>\w+)/(?P<function>[\w.-]+)` +
		`(?:\((?:(?P<client_id>\d+), ?)?(?P<args>.*?),?\))?$`)

// stampLayout is applied after the colon inside the UTC offset is removed.
const stampLayout = "2006/01/02 15:04:05 -0700"

// Parse extracts a Record from one raw log line. A line that does not match
// the grammar is not an error: the returned Record carries only Raw. A
// timestamp that matched the grammar but fails normalization likewise leaves
// Timestamp zero without discarding the other fields.
func Parse(line string) Record {
	rec := Record{Raw: line}

	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return rec
	}

	var stamp string
	for i, name := range lineRE.SubexpNames() {
		switch name {
		case "timestamp":
			stamp = m[i]
		case "pid":
			rec.PID = m[i]
		case "client_ip":
			rec.ClientIP = m[i]
		case "module":
			rec.Module = m[i]
		case "function":
			rec.Function = m[i]
		case "client_id":
			rec.ClientID = m[i]
		case "args":
			rec.Args = m[i]
		}
	}

	if t, err := normalizeStamp(stamp); err == nil {
		rec.Timestamp = t
	}

	return rec
}

// normalizeStamp converts "YYYY/MM/DD HH:MM:SS +HH:MM" to a time.Time.
// time.Parse has no layout verb for a colon-separated numeric offset, so the
// colon inside the offset is deleted first, turning "+01:00" into "+0100".
func normalizeStamp(stamp string) (time.Time, error) {
	if i := strings.LastIndex(stamp, ":"); i >= 0 {
		stamp = stamp[:i] + stamp[i+1:]
	}
	return time.Parse(stampLayout, stamp)
}
