package aggregate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"mmreport/core"
	"mmreport/operator"
	"mmreport/stats"
)

var SummaryOps = []string{"count", "median", "mean", "std", "min", "max"}

// Summary holds the ops of an OpSet applied to the times and memory of one
// (size, processes) group, in the order of Names, plus the spread of the
// times.
type Summary struct {
	Key     core.Key
	Names   []string
	Time    []float64
	Memory  []float64
	TimeCV  float64
	TimeP95 float64
}

func Summarize(set *core.ResultSet, ops *operator.OpSet) ([]Summary, error) {
	groups := set.Groups()
	summaries := make([]Summary, 0, len(groups))
	for _, group := range groups {
		times, err := ops.Apply(group.Rows.Times())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.Key, err)
		}
		memories, err := ops.Apply(group.Rows.Memories())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.Key, err)
		}
		spread, err := stats.FromValues(group.Rows.Times()).Summary()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.Key, err)
		}
		summaries = append(summaries, Summary{
			Key:     group.Key,
			Names:   ops.Names(),
			Time:    times,
			Memory:  memories,
			TimeCV:  spread.CV,
			TimeP95: spread.P95,
		})
	}
	return summaries, nil
}

func summaryHeader(names []string) []string {
	header := []string{"size", "processes"}
	for _, name := range names {
		header = append(header, "time_"+name)
	}
	header = append(header, "time_cv", "time_p95")
	for _, name := range names {
		header = append(header, "memory_"+name)
	}
	return header
}

func (summary *Summary) fields(format func(float64) string) []string {
	fields := []string{strconv.Itoa(summary.Key.Size), strconv.Itoa(summary.Key.Processes)}
	for _, value := range summary.Time {
		fields = append(fields, format(value))
	}
	fields = append(fields, format(summary.TimeCV), format(summary.TimeP95))
	for _, value := range summary.Memory {
		fields = append(fields, format(value))
	}
	return fields
}

// WriteSummaryCSV writes one line per group. Times are seconds and memory
// megabytes.
func WriteSummaryCSV(w io.Writer, summaries []Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(summaryHeader(summaries[0].Names)); err != nil {
		return err
	}
	for i := range summaries {
		if err := writer.Write(summaries[i].fields(formatFloat)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummaryTable prints an aligned table for terminals.
func WriteSummaryTable(w io.Writer, summaries []Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(table, strings.Join(summaryHeader(summaries[0].Names), "\t")+"\t")
	short := func(value float64) string {
		return strconv.FormatFloat(value, 'g', 6, 64)
	}
	for i := range summaries {
		fmt.Fprintln(table, strings.Join(summaries[i].fields(short), "\t")+"\t")
	}
	return table.Flush()
}
