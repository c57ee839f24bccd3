package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.WithField("batch", 3).Debug("hello")
	assert.Contains(t, buf.String(), "batch=3")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("", FormatJSON, &buf)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, l.GetLevel())

	l.WithField("index", 1).Warn("texture load failed")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "warning", rec["level"])
	assert.Equal(t, float64(1), rec["index"])
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "", nil)
	assert.Error(t, err)
	_, err = New("info", "xml", nil)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}
