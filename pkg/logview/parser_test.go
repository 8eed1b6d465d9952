package logview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullLine(t *testing.T) {
	line := "2016/06/21 14:01:07 +01:00 29079 172.16.41.79: rhnServer/server_certificate.valid('Server id ID-1000014665 not found in database',)"

	rec := Parse(line)

	assert.Equal(t, line, rec.Raw)
	assert.Equal(t, "29079", rec.PID)
	assert.Equal(t, "172.16.41.79", rec.ClientIP)
	assert.Equal(t, "rhnServer", rec.Module)
	assert.Equal(t, "server_certificate.valid", rec.Function)
	assert.Equal(t, "", rec.ClientID)
	assert.Equal(t, "'Server id ID-1000014665 not found in database'", rec.Args)

	require.False(t, rec.Timestamp.IsZero())
	want := time.Date(2016, 6, 21, 14, 1, 7, 0, time.FixedZone("", 3600))
	assert.True(t, rec.Timestamp.Equal(want))
	_, offset := rec.Timestamp.Zone()
	assert.Equal(t, 3600, offset)
}

func TestParseClientID(t *testing.T) {
	line := "2016/06/21 14:01:52 +01:00 29082 172.16.41.79: xmlrpc/registration.welcome_message(1000014665, 'lang: None',)"

	rec := Parse(line)

	assert.Equal(t, "1000014665", rec.ClientID)
	assert.Equal(t, "'lang: None'", rec.Args)
	assert.Equal(t, "xmlrpc", rec.Module)
	assert.Equal(t, "registration.welcome_message", rec.Function)
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		rec  Record
	}{
		{
			name: "no argument list",
			line: "2016/06/21 14:02:13 +01:00 29083 172.16.41.79: rhnServer/server_kickstart.schedule_virt_pkg_install",
			rec: Record{
				PID:      "29083",
				ClientIP: "172.16.41.79",
				Module:   "rhnServer",
				Function: "server_kickstart.schedule_virt_pkg_install",
			},
		},
		{
			name: "empty argument list",
			line: "2016/06/21 14:02:46 +01:00 29086 172.16.41.79: xmlrpc/up2date.listChannels()",
			rec: Record{
				PID:      "29086",
				ClientIP: "172.16.41.79",
				Module:   "xmlrpc",
				Function: "up2date.listChannels",
			},
		},
		{
			name: "negative offset",
			line: "2016/06/21 09:15:00 -05:00 12001 10.20.30.40: xmlrpc/queue.get(2000265141, 2, 'checkins enabled',)",
			rec: Record{
				PID:      "12001",
				ClientIP: "10.20.30.40",
				Module:   "xmlrpc",
				Function: "queue.get",
				ClientID: "2000265141",
				Args:     "2, 'checkins enabled'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			assert.Equal(t, tt.line, got.Raw)
			assert.Equal(t, tt.rec.PID, got.PID)
			assert.Equal(t, tt.rec.ClientIP, got.ClientIP)
			assert.Equal(t, tt.rec.Module, got.Module)
			assert.Equal(t, tt.rec.Function, got.Function)
			assert.Equal(t, tt.rec.ClientID, got.ClientID)
			assert.Equal(t, tt.rec.Args, got.Args)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestParseUnmatchedLine(t *testing.T) {
	for _, line := range []string{
		"",
		"Traceback (most recent call last):",
		"2016/06/21 14:01:0",
		"totally free text with no structure at all",
	} {
		rec := Parse(line)
		assert.Equal(t, line, rec.Raw)
		assert.Empty(t, rec.PID)
		assert.Empty(t, rec.ClientIP)
		assert.Empty(t, rec.Module)
		assert.Empty(t, rec.Function)
		assert.Empty(t, rec.ClientID)
		assert.Empty(t, rec.Args)
		assert.True(t, rec.Timestamp.IsZero())
		assert.False(t, rec.Complete())
	}
}

func TestParseBadCalendarKeepsFields(t *testing.T) {
	// Month 13 matches the grammar digit-wise but cannot normalize.
	line := "2016/13/21 14:01:07 +01:00 29079 172.16.41.79: rhnServer/server_certificate.valid"

	rec := Parse(line)

	assert.True(t, rec.Timestamp.IsZero())
	assert.Equal(t, "29079", rec.PID)
	assert.Equal(t, "172.16.41.79", rec.ClientIP)
	assert.Equal(t, "rhnServer", rec.Module)
	assert.True(t, rec.Complete())
}

func TestNormalizeStamp(t *testing.T) {
	tests := []struct {
		stamp string
		ok    bool
	}{
		{"2016/06/21 14:01:07 +01:00", true},
		{"2016/06/21 14:01:07 -05:30", true},
		{"2016/06/21 14:01:07 +00:00", true},
		{"2016/06/21 14:01:07 01:00", false}, // offset without sign
		{"2016/06/31 14:01:07 +01:00", false},
		{"2016/06/21 25:01:07 +01:00", false},
	}

	for _, tt := range tests {
		_, err := normalizeStamp(tt.stamp)
		if tt.ok {
			assert.NoError(t, err, tt.stamp)
		} else {
			assert.Error(t, err, tt.stamp)
		}
	}
}
