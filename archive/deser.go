package archive

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"mmreport/core"
)

// Rows and run records are fixed-width, big-endian.
const (
	rowBytes = 32
	runBytes = 24
)

var errShortBuffer = errors.New("archive: short buffer")

func RowToBytes(row core.Row) []byte {
	buf := make([]byte, rowBytes)
	binary.BigEndian.PutUint64(buf[0:8], uint64(row.Size))
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(row.Time))
	binary.BigEndian.PutUint64(buf[16:24], math.Float64bits(row.Memory))
	binary.BigEndian.PutUint64(buf[24:32], uint64(row.Processes))
	return buf
}

func BytesToRow(buf []byte) (core.Row, error) {
	if len(buf) < rowBytes {
		return core.Row{}, errShortBuffer
	}
	return core.Row{
		Size:      int(binary.BigEndian.Uint64(buf[0:8])),
		Time:      math.Float64frombits(binary.BigEndian.Uint64(buf[8:16])),
		Memory:    math.Float64frombits(binary.BigEndian.Uint64(buf[16:24])),
		Processes: int(binary.BigEndian.Uint64(buf[24:32])),
	}, nil
}

// Run describes one imported result set.
type Run struct {
	Label    string
	ID       int64
	Rows     int64
	Imported time.Time
}

func RunToBytes(run *Run) []byte {
	buf := make([]byte, runBytes)
	binary.BigEndian.PutUint64(buf[0:8], uint64(run.ID))
	binary.BigEndian.PutUint64(buf[8:16], uint64(run.Rows))
	binary.BigEndian.PutUint64(buf[16:24], uint64(run.Imported.UnixNano()))
	return buf
}

func BytesToRun(label string, buf []byte) (*Run, error) {
	if len(buf) < runBytes {
		return nil, errShortBuffer
	}
	return &Run{
		Label:    label,
		ID:       int64(binary.BigEndian.Uint64(buf[0:8])),
		Rows:     int64(binary.BigEndian.Uint64(buf[8:16])),
		Imported: time.Unix(0, int64(binary.BigEndian.Uint64(buf[16:24]))).UTC(),
	}, nil
}
