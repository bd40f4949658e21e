package calculation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	want := d(expected)
	assert.True(t, want.Equal(actual), "expected %s, got %s %s", want.String(), actual.String(), fmt.Sprint(msgAndArgs...))
}

// TestLogger records formatted messages by level
type TestLogger struct {
	Debug []string
	Info  []string
	Warn  []string
	Error []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.Debug = append(l.Debug, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...any) {
	l.Info = append(l.Info, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.Warn = append(l.Warn, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...any) {
	l.Error = append(l.Error, fmt.Sprintf(format, args...))
}
