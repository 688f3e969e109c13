package aggregate

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

var csvHeader = []string{
	"size",
	"processes",
	"sequential_time",
	"parallel_time",
	"speedup",
	"efficiency",
	"sequential_samples",
	"parallel_samples",
}

func formatFloat(value float64) string {
	if math.IsNaN(value) {
		return ""
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// WriteCSV writes records with a header row. Undefined values are left empty.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range records {
		err := writer.Write([]string{
			strconv.Itoa(record.Size),
			strconv.Itoa(record.Processes),
			formatFloat(record.SequentialTime),
			formatFloat(record.ParallelTime),
			formatFloat(record.Speedup),
			formatFloat(record.Efficiency),
			strconv.Itoa(record.SequentialSamples),
			strconv.Itoa(record.ParallelSamples),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
