package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"mmreport/core"
)

// LoadFile reads one headerless result file. A missing file is logged and
// yields an empty set. The first line decides the schema; three-column
// files take their process count from the file name.
func LoadFile(path string) (*core.ResultSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("File %s does not exist, skipping", path)
		return core.NewResultSet(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := Read(f, ProcessesFromName(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d rows from %s", set.Len(), path)
	return set, nil
}

// Read parses rows from r. defaultProcesses fills the process column of
// three-column input.
func Read(r io.Reader, defaultProcesses int) (*core.ResultSet, error) {
	buffered := bufio.NewReader(r)
	if err := skipBOM(buffered); err != nil {
		return nil, err
	}
	reader := csv.NewReader(buffered)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	// FieldsPerRecord == 0 pins the field count to the first record.
	reader.FieldsPerRecord = 0

	set := core.NewResultSet()
	var schema Schema
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, parseErr.Line, parseErr.Err)
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if schema == 0 {
			schema, err = DetectSchema(record)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		row, err := parseRow(record, schema, defaultProcesses)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		set.Append(row)
	}
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r *bufio.Reader) error {
	head, err := r.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = r.Discard(len(utf8BOM))
		return err
	}
	return nil
}

func parseRow(record []string, schema Schema, defaultProcesses int) (core.Row, error) {
	size, err := parseCount(record[0])
	if err != nil {
		return core.Row{}, fmt.Errorf("size: %w", err)
	}
	if size == 0 {
		return core.Row{}, errors.New("size: must be positive")
	}
	elapsed, err := parseAmount(record[1])
	if err != nil {
		return core.Row{}, fmt.Errorf("time: %w", err)
	}
	memory, err := parseAmount(record[2])
	if err != nil {
		return core.Row{}, fmt.Errorf("memory: %w", err)
	}
	processes := defaultProcesses
	if schema == SchemaParallel {
		processes, err = parseCount(record[3])
		if err != nil {
			return core.Row{}, fmt.Errorf("processes: %w", err)
		}
	}
	return core.Row{
		Size:      size,
		Time:      elapsed,
		Memory:    memory,
		Processes: processes,
	}, nil
}

// parseCount accepts "4" as well as "4.0", which some writers emit.
func parseCount(field string) (int, error) {
	field = strings.TrimSpace(field)
	if n, err := strconv.Atoi(field); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return n, nil
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", field)
	}
	if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
		return 0, fmt.Errorf("not a non-negative integer: %q", field)
	}
	return int(value), nil
}

func parseAmount(field string) (float64, error) {
	field = strings.TrimSpace(field)
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", field)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("out of range: %q", field)
	}
	return value, nil
}

// LoadGlob loads every file matching pattern in name order. Files that fail
// to parse are logged and skipped.
func LoadGlob(pattern string) (*core.ResultSet, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Warnf("No files match %s", pattern)
		return core.NewResultSet(), nil
	}
	sort.Strings(paths)
	return LoadAll(paths), nil
}

// LoadAll concatenates the given files, skipping unreadable ones.
func LoadAll(paths []string) *core.ResultSet {
	sets := make([]*core.ResultSet, 0, len(paths))
	for _, path := range paths {
		set, err := LoadFile(path)
		if err != nil {
			log.WithError(err).Errorf("Skipping %s", path)
			continue
		}
		sets = append(sets, set)
	}
	return core.Concat(sets...)
}

func LoadSources(sources *Sources) *core.ResultSet {
	return LoadAll(sources.All())
}
