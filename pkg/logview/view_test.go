package logview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLines = []string{
	"2016/06/21 14:01:07 +01:00 29079 172.16.41.79: rhnServer/server_certificate.valid('Server id ID-1000014665 not found in database',)",
	"2016/06/21 14:01:52 +01:00 29082 172.16.41.79: xmlrpc/registration.welcome_message(1000014665, 'lang: None',)",
	"2016/06/21 14:02:46 +01:00 29086 172.16.41.79: xmlrpc/up2date.listChannels()",
}

func TestViewContains(t *testing.T) {
	v := NewView(sampleLines...)

	assert.True(t, v.Contains("server_certificate.valid"))
	assert.True(t, v.Contains("172.16.41.79"))
	assert.False(t, v.Contains("server_certificate.INVALID"))
	assert.False(t, v.Contains("registration.(welcome)")) // literal, not a regex
}

func TestViewSearch(t *testing.T) {
	v := NewView(sampleLines...)

	recs := v.Search("xmlrpc/")
	require.Len(t, recs, 2)
	assert.Equal(t, "registration.welcome_message", recs[0].Function)
	assert.Equal(t, "up2date.listChannels", recs[1].Function)

	// Empty substring matches every line, original order preserved.
	all := v.Search("")
	require.Len(t, all, len(sampleLines))
	for i, rec := range all {
		assert.Equal(t, sampleLines[i], rec.Raw)
	}

	assert.Empty(t, v.Search("no such text"))
}

func TestViewSearchRecomputes(t *testing.T) {
	v := NewView(sampleLines[0])

	first := v.Search("rhnServer")
	second := v.Search("rhnServer")
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])

	v.Append(sampleLines[1])
	assert.Len(t, v.Search(""), 2)
}

func TestViewLast(t *testing.T) {
	truncated := "2016/06/21 14:03:0"

	t.Run("both complete picks newest", func(t *testing.T) {
		v := NewView(sampleLines[0], sampleLines[1])
		rec := v.Last()
		assert.Equal(t, "registration.welcome_message", rec.Function)
	})

	t.Run("truncated tail falls back one line", func(t *testing.T) {
		v := NewView(sampleLines[0], sampleLines[1], truncated)
		rec := v.Last()
		assert.Equal(t, "registration.welcome_message", rec.Function)
		assert.True(t, rec.Complete())
	})

	t.Run("neither complete returns newest parse", func(t *testing.T) {
		v := NewView("first garbage line", truncated)
		rec := v.Last()
		assert.Equal(t, truncated, rec.Raw)
		assert.False(t, rec.Complete())
	})

	t.Run("single line view", func(t *testing.T) {
		v := NewView(sampleLines[2])
		rec := v.Last()
		assert.Equal(t, "up2date.listChannels", rec.Function)
	})

	t.Run("empty view", func(t *testing.T) {
		v := NewView()
		rec := v.Last()
		assert.Equal(t, Record{}, rec)
	})
}

func TestViewLen(t *testing.T) {
	v := NewView()
	assert.Equal(t, 0, v.Len())
	v.Append(sampleLines...)
	assert.Equal(t, len(sampleLines), v.Len())
}
