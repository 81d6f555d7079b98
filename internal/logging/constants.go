package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldFormat     = "format"
	FieldLine       = "line"
	FieldLineNumber = "line_number"
	FieldPayerTaxID = "payer_tax_id"
	FieldPayerName  = "payer_name"
	FieldCode       = "code"
	FieldRunID      = "run_id"
	FieldWorkers    = "workers"
)
