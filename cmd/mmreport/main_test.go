package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mmreport/archive"
	"mmreport/render"
)

type workspace struct {
	results  string
	pictures string
	config   string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		results:  filepath.Join(dir, "results"),
		pictures: filepath.Join(dir, "pictures"),
		config:   filepath.Join(dir, "mmreport.yaml"),
	}
	require.NoError(t, os.MkdirAll(ws.results, 0o755))

	cfg := fmt.Sprintf("dpi: 30\nwidth_in: 4\nheight_in: 3\nbins: 4\narchive_dir: %s\n",
		filepath.Join(dir, "archive"))
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))

	sequential := "100,2.0,1.0,0\n100,2.2,1.0,0\n200,8.0,4.0,0\n200,8.4,4.0,0\n"
	parallel := "100,0.6,0.5\n100,0.7,0.5\n200,2.2,2.0\n200,2.4,2.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(ws.results, "sequential_results.csv"), []byte(sequential), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.results, "parallel_results_4proc.csv"), []byte(parallel), 0o644))
	return ws
}

func (ws *workspace) run(t *testing.T, command string, extra ...string) (string, error) {
	t.Helper()
	args := append([]string{command,
		"-config", ws.config,
		"-results", ws.results,
		"-pictures", ws.pictures,
		"-d", "warn"}, extra...)
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_All(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.run(t, "all")
	require.NoError(t, err)

	for _, name := range []string{
		"sequential_size_100.png",
		"sequential_size_200.png",
		"parallel_parallel_results_4proc_size_100_proc_4.png",
		"parallel_parallel_results_4proc_size_200_proc_4.png",
		render.SpeedupEfficiencyFile,
		render.TimeComparisonFile,
		render.MemoryComparisonFile,
	} {
		assert.FileExists(t, filepath.Join(ws.pictures, name))
	}
	assert.FileExists(t, filepath.Join(ws.results, render.HTMLReportFile))

	buf, err := os.ReadFile(filepath.Join(ws.results, render.AggregatesFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "100,4,"))
	assert.True(t, strings.HasPrefix(lines[2], "200,4,"))
}

func TestRun_Summary(t *testing.T) {
	ws := newWorkspace(t)
	out, err := ws.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "time_median")
	assert.Equal(t, strings.Count(out, "\n"), 5)
	assert.FileExists(t, filepath.Join(ws.results, render.SummaryFile))
}

func TestRun_ImportAndReadBack(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.run(t, "import", "-label", "baseline")
	require.NoError(t, err)

	out, err := ws.run(t, "runs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "baseline\t0\t8 rows\t"))

	require.NoError(t, os.Remove(filepath.Join(ws.results, "parallel_results_4proc.csv")))
	require.NoError(t, os.Remove(filepath.Join(ws.results, "sequential_results.csv")))

	_, err = ws.run(t, "speedup", "-run", "baseline")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(ws.pictures, render.SpeedupEfficiencyFile))

	_, err = ws.run(t, "histograms", "-run", "baseline")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(ws.pictures, "baseline_size_200_proc_4.png"))

	_, err = ws.run(t, "summary", "-run", "missing")
	assert.Error(t, err)
}

func TestRun_MissingFilesAreSkipped(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(ws.results, "sequential_results.csv")))

	_, err := ws.run(t, "all")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(ws.pictures, render.SpeedupEfficiencyFile))
	assert.FileExists(t, filepath.Join(ws.pictures, render.TimeComparisonFile))
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.ErrorIs(t, run(nil, &stdout, &stderr), errUsage)
	assert.Contains(t, stderr.String(), "commands:")

	assert.ErrorIs(t, run([]string{"plot"}, &stdout, &stderr), errUsage)
	assert.ErrorIs(t, run([]string{"all", "-d", "loud"}, &stdout, &stderr), errUsage)
}

func TestRun_ReportsDirFromConfigSurvivesResultsFlag(t *testing.T) {
	ws := newWorkspace(t)
	reports := filepath.Join(t.TempDir(), "reports")
	cfg, err := os.ReadFile(ws.config)
	require.NoError(t, err)
	cfg = append(cfg, []byte(fmt.Sprintf("reports_dir: %s\n", reports))...)
	require.NoError(t, os.WriteFile(ws.config, cfg, 0o644))

	_, err = ws.run(t, "html")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(reports, render.HTMLReportFile))
	assert.NoFileExists(t, filepath.Join(ws.results, render.HTMLReportFile))
}

func TestRun_RejectsPathLikeLabels(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.run(t, "import", "-label", "../outside")
	assert.ErrorIs(t, err, archive.ErrInvalidLabel)

	_, err = ws.run(t, "histograms", "-run", "../outside")
	assert.ErrorIs(t, err, archive.ErrInvalidLabel)
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(ws.pictures), "outside_size_*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRun_LogsEachLoadOnce(t *testing.T) {
	ws := newWorkspace(t)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	var stdout, stderr bytes.Buffer
	err := run([]string{"summary",
		"-config", ws.config,
		"-results", ws.results,
		"-pictures", ws.pictures,
		"-d", "debug"}, &stdout, &stderr)
	require.NoError(t, err)

	loaded := 0
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "Loaded ") {
			loaded++
		}
	}
	assert.Equal(t, loaded, 2)
}
