package log

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestVerbosityString(t *testing.T) {
	tests := []struct {
		name           string
		v              Verbosity
		expectedString string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"None", None, "NONE"},
		{"Invalid", Verbosity(42), "INVALID"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedString, tc.v.String())
		})
	}
}

func TestNew(t *testing.T) {
	l := New(Info)
	assert.NotNil(t, l)

	lg, ok := l.(*logger)
	assert.True(t, ok)
	assert.Equal(t, Info, lg.verbosity)
	assert.NotNil(t, lg.out)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbosity      Verbosity
		log            func(Logger)
		expectedOutput string
	}{
		{
			name:           "DebugWritten",
			verbosity:      Debug,
			log:            func(l Logger) { l.Debugf("reading %s", "CHANGELOG.md") },
			expectedOutput: "gitch DEBUG reading CHANGELOG.md\n",
		},
		{
			name:           "DebugSuppressed",
			verbosity:      Info,
			log:            func(l Logger) { l.Debug("hidden") },
			expectedOutput: "",
		},
		{
			name:           "InfoWritten",
			verbosity:      Info,
			log:            func(l Logger) { l.Info("syncing") },
			expectedOutput: "gitch INFO syncing\n",
		},
		{
			name:           "WarnWritten",
			verbosity:      Info,
			log:            func(l Logger) { l.Warnf("release %q already exists", "1.0.0") },
			expectedOutput: "gitch WARNING release \"1.0.0\" already exists\n",
		},
		{
			name:           "WarnSuppressed",
			verbosity:      Error,
			log:            func(l Logger) { l.Warn("hidden") },
			expectedOutput: "",
		},
		{
			name:           "ErrorWritten",
			verbosity:      Warn,
			log:            func(l Logger) { l.Errorf("failed: %d", 1) },
			expectedOutput: "gitch ERROR failed: 1\n",
		},
		{
			name:           "NoneSuppressesError",
			verbosity:      None,
			log:            func(l Logger) { l.Error("hidden") },
			expectedOutput: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			l := NewWithWriter(tc.verbosity, buf)
			tc.log(l)

			assert.Equal(t, tc.expectedOutput, buf.String())
		})
	}
}

func TestLoggerChangeVerbosity(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWithWriter(None, buf)

	l.Info("hidden")
	l.ChangeVerbosity(Info)
	l.Info("shown")

	assert.Equal(t, "gitch INFO shown\n", buf.String())
}

func TestLoggerFatal(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWithWriter(None, buf).(*logger)

	var code int
	l.exit = func(c int) { code = c }

	l.Fatalf("no changelog entries in %s", "CHANGELOG.md")

	assert.Equal(t, 1, code)
	assert.Equal(t, "gitch FATAL no changelog entries in CHANGELOG.md\n", buf.String())
}
