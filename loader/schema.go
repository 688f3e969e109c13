package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSchema = errors.New("unknown column schema")
	ErrMalformedRow  = errors.New("malformed row")
)

// Schema is the column layout of a result file, identified by its field count.
type Schema int

const (
	// size,time,memory
	SchemaSequential Schema = 3
	// size,time,memory,processes
	SchemaParallel Schema = 4
)

func (schema Schema) Fields() int {
	return int(schema)
}

func (schema Schema) Columns() []string {
	columns := []string{"size", "time", "memory"}
	if schema == SchemaParallel {
		columns = append(columns, "processes")
	}
	return columns
}

func (schema Schema) String() string {
	return strings.Join(schema.Columns(), ",")
}

func schemaForFields(fields int) (Schema, error) {
	switch fields {
	case SchemaSequential.Fields():
		return SchemaSequential, nil
	case SchemaParallel.Fields():
		return SchemaParallel, nil
	default:
		return 0, fmt.Errorf("%w: %d fields", ErrUnknownSchema, fields)
	}
}

// DetectSchema picks the column schema from the fields of the first line
// of a file.
func DetectSchema(firstLine []string) (Schema, error) {
	if len(firstLine) == 0 || (len(firstLine) == 1 && strings.TrimSpace(firstLine[0]) == "") {
		return 0, fmt.Errorf("%w: empty line", ErrUnknownSchema)
	}
	return schemaForFields(len(firstLine))
}
