package convert_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/dirf-parser/cmd/convert"
	"fjacquet/dirf-parser/cmd/root"
	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/container"
	"fjacquet/dirf-parser/internal/dirfparser"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const statement = "12.345.678/0001-90 ACME LTDA 01/03/2023 12.445,67 1.244,56\n" +
	"0561 12.345,67 1.234,56\n" +
	"3208 100,00 10,00\n"

func setup(t *testing.T, text string) (input string) {
	t.Helper()
	c, err := container.NewContainer(config.Default(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithExtractor(dirfparser.NewMockPDFExtractor(text, nil)))
	require.NoError(t, err)
	root.SetContainer(c)

	input = filepath.Join(t.TempDir(), "informe.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4\n"), 0600))

	saved := root.SharedFlags
	t.Cleanup(func() {
		root.SetContainer(nil)
		root.SharedFlags = saved
		convert.Format = ""
	})
	return input
}

func TestConvertCommand_Metadata(t *testing.T) {
	assert.Equal(t, "convert", convert.Cmd.Use)
	assert.Contains(t, convert.Cmd.Short, "DIRF")
	assert.NotNil(t, convert.Cmd.RunE)
	assert.NotNil(t, convert.Cmd.Flags().Lookup("format"))
}

func TestConvertCommand_DefaultXLSX(t *testing.T) {
	input := setup(t, statement)
	root.SharedFlags.Input = input
	root.SharedFlags.Validate = true

	var out bytes.Buffer
	convert.Cmd.SetOut(&out)
	require.NoError(t, convert.Cmd.RunE(convert.Cmd, nil))

	output := filepath.Join(filepath.Dir(input), "informe.xlsx")
	assert.Contains(t, out.String(), "Wrote 2 records to "+output)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("FontesPagadoras")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestConvertCommand_CSVFormat(t *testing.T) {
	input := setup(t, statement)
	output := filepath.Join(t.TempDir(), "tables", "acme.csv")
	root.SharedFlags.Input = input
	root.SharedFlags.Output = output
	convert.Format = "csv"

	var out bytes.Buffer
	convert.Cmd.SetOut(&out)
	require.NoError(t, convert.Cmd.RunE(convert.Cmd, nil))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "12.345.678/0001-90,ACME LTDA,2023-03-01,0561,12345.67,1234.56")
}

func TestConvertCommand_NoRecords(t *testing.T) {
	input := setup(t, "Página 1\n")
	root.SharedFlags.Input = input

	err := convert.Cmd.RunE(convert.Cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrNoRecords))
}

func TestConvertCommand_UnknownFormat(t *testing.T) {
	input := setup(t, statement)
	root.SharedFlags.Input = input
	convert.Format = "ods"

	err := convert.Cmd.RunE(convert.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestConvertCommand_NoContainer(t *testing.T) {
	root.SetContainer(nil)
	err := convert.Cmd.RunE(convert.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container not initialized")
}

func TestConvertCommand_Stdin(t *testing.T) {
	setup(t, statement)
	output := filepath.Join(t.TempDir(), "stdin.csv")
	root.SharedFlags.Input = "-"
	root.SharedFlags.Output = output
	convert.Format = "csv"

	var out bytes.Buffer
	convert.Cmd.SetOut(&out)
	convert.Cmd.SetIn(strings.NewReader("%PDF-1.4\n"))
	t.Cleanup(func() { convert.Cmd.SetIn(nil) })
	require.NoError(t, convert.Cmd.RunE(convert.Cmd, nil))

	assert.Contains(t, out.String(), "Wrote 2 records to "+output)
	assert.FileExists(t, output)
}
