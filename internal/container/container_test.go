package container

import (
	"testing"

	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/dirfparser"
	"fjacquet/dirf-parser/internal/export"
	"fjacquet/dirf-parser/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	invalid := config.Default()
	invalid.Export.Format = "ods"

	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:        "invalid config",
			config:      invalid,
			expectError: true,
			errorMsg:    "invalid export format",
		},
		{
			name:   "default config",
			config: config.Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetParser())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_RealExtractorFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PDF.Command = "/opt/poppler/bin/pdftotext"
	cfg.PDF.Layout = true

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	extractor, ok := c.extractor.(*dirfparser.RealPDFExtractor)
	require.True(t, ok)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", extractor.Command)
	assert.True(t, extractor.Layout)
}

func TestNewContainer_Options(t *testing.T) {
	logger := logging.NewMockLogger()
	mock := dirfparser.NewMockPDFExtractor("12.345.678/0001-90 ACME 01/03/2023 1,00 0,10\n0561 1,00 0,10\n", nil)

	c, err := NewContainer(config.Default(), WithLogger(logger), WithExtractor(mock))
	require.NoError(t, err)

	assert.Same(t, mock, c.extractor)
	assert.Equal(t, logging.Logger(logger), c.GetLogger())

	table, err := c.parser.ParseText("inline", "12.345.678/0001-90 ACME 01/03/2023 1,00 0,10\n0561 1,00 0,10\n")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestContainer_GetExporter(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Format = config.FormatCSV
	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	exp, err := c.GetExporter("")
	require.NoError(t, err)
	assert.IsType(t, &export.CSVExporter{}, exp)

	exp, err = c.GetExporter("xlsx")
	require.NoError(t, err)
	assert.IsType(t, &export.XLSXExporter{}, exp)

	_, err = c.GetExporter("ods")
	assert.Error(t, err)

	p, err := c.NewBatchProcessor("")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = c.NewBatchProcessor("ods")
	assert.Error(t, err)
}
