package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("starting build")
	l.Warn("artifact missing, rebuilding")
	l.Error(zerr.New("sign helper failed"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "starting build")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "sign helper failed")
}

func TestLogger_SetOutputRedirects(t *testing.T) {
	var first, second bytes.Buffer
	l := logger.New()

	l.SetOutput(&first)
	l.Info("one")
	l.SetOutput(&second)
	l.Info("two")

	assert.True(t, strings.Contains(first.String(), "one"))
	assert.False(t, strings.Contains(first.String(), "two"))
	assert.True(t, strings.Contains(second.String(), "two"))
}
