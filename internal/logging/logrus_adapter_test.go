package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug level with text format", "debug", "text", logrus.DebugLevel},
		{"info level with json format", "info", "json", logrus.InfoLevel},
		{"upper-case level is accepted", "WARN", "text", logrus.WarnLevel},
		{"invalid level defaults to info", "chatty", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.DebugLevel)

	logger.Debug("scanning lines", Field{Key: FieldCount, Value: 12})
	logger.Info("header matched", Field{Key: FieldPayerTaxID, Value: "12.345.678/0001-99"})
	logger.Warn("totals mismatch")
	logger.Error("export failed")

	output := buf.String()
	assert.Contains(t, output, "scanning lines")
	assert.Contains(t, output, "count=12")
	assert.Contains(t, output, "payer_tax_id=")
	assert.Contains(t, output, "level=warning")
	assert.Contains(t, output, "level=error")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)

	logger.Info("should be hidden")
	logger.Warn("should be shown")

	assert.NotContains(t, buf.String(), "should be hidden")
	assert.Contains(t, buf.String(), "should be shown")
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)

	logger.
		WithField(FieldFile, "dirf.pdf").
		WithFields(Field{Key: FieldFormat, Value: "xlsx"}).
		WithError(errors.New("disk full")).
		Error("write failed")

	output := buf.String()
	assert.Contains(t, output, "write failed")
	assert.Contains(t, output, "dirf.pdf")
	assert.Contains(t, output, "xlsx")
	assert.Contains(t, output, "disk full")
}

func TestConvertFields(t *testing.T) {
	fields := []Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	}

	logrusFields := convertFields(fields)

	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Len(t, convertFields(nil), 0)
}

func TestMockLogger_SharesEntriesAcrossDerivedLoggers(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField(FieldCode, "1708").Info("record emitted")
	mock.WithError(errors.New("boom")).Warn("date coercion failed")

	require.Len(t, mock.GetEntries(), 2)
	assert.True(t, mock.HasEntry("INFO", "record emitted"))
	warns := mock.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.EqualError(t, warns[0].Error, "boom")
	assert.Equal(t, FieldCode, mock.GetEntries()[0].Fields[0].Key)
}
