package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"access-review/internal/domain"
)

// PreviewRows is how many leading records are kept for upload previews.
const PreviewRows = 5

// Reader parses entitlement-export CSVs against a fixed schema.
type Reader struct {
	schema   Schema
	validate *validator.Validate
}

// NewReader builds a Reader for the given schema contract.
func NewReader(schema Schema) *Reader {
	return &Reader{
		schema:   schema,
		validate: validator.New(),
	}
}

// Read parses one CSV export. The header must match the schema exactly, every
// row must have the full column count, and required fields (user id, role,
// entitlement, unit) must be non-empty. Any failure rejects the whole upload
// with a ValidationError.
func (rd *Reader) Read(r io.Reader) ([]domain.AccessRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(rd.schema)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrValidation("empty file: expected header %s", rd.schemaList())
		}
		return nil, domain.ErrValidation("unreadable CSV header: %v", err)
	}
	// Strip a UTF-8 BOM some export tools prepend.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if !rd.schema.Matches(header) {
		return nil, domain.ErrValidation("CSV must have columns %s in this exact order, got %s",
			rd.schemaList(), strings.Join(header, ", "))
	}

	var records []domain.AccessRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.ErrValidation("line %d: %v", line, err)
		}
		for _, field := range row {
			if !utf8.ValidString(field) {
				return nil, domain.ErrValidation("line %d: file is not UTF-8 encoded", line)
			}
		}

		rec := rd.schema.record(row)
		if err := rd.validate.Struct(rec); err != nil {
			return nil, domain.ErrValidation("line %d: %s", line, describeFieldErrors(err))
		}
		records = append(records, rec)
	}
	return records, nil
}

// Preview returns up to PreviewRows leading records.
func Preview(records []domain.AccessRecord) []domain.AccessRecord {
	if len(records) <= PreviewRows {
		return records
	}
	return records[:PreviewRows]
}

func (rd *Reader) schemaList() string {
	return strings.Join(rd.schema, ", ")
}

func describeFieldErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
