package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"mmreport/aggregate"
	"mmreport/archive"
	"mmreport/config"
	"mmreport/core"
	"mmreport/loader"
	"mmreport/operator"
	"mmreport/render"
	"mmreport/utils"
)

const usage = `usage: mmreport <command> [flags]

commands:
  histograms  execution-time histograms per size and process count
  speedup     speedup and efficiency comparison
  compare     time and memory comparison charts
  html        interactive HTML report
  all         every chart, the report and the aggregates CSV
  summary     per-group statistics table
  import      archive the current result files under -label
  runs        list archived runs
`

var errUsage = errors.New("invalid usage")

var commands = map[string]bool{
	"histograms": true,
	"speedup":    true,
	"compare":    true,
	"html":       true,
	"all":        true,
	"summary":    true,
	"import":     true,
	"runs":       true,
}

type options struct {
	configPath  string
	resultsDir  string
	picturesDir string
	debugLevel  string
	run         string
	label       string
}

// input is one source file, or one archived run, and the prefix of the
// histograms drawn from it.
type input struct {
	prefix string
	set    *core.ResultSet
}

func parseFlags(command string, args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.resultsDir, "results", "", "Directory with the input CSV files")
	fs.StringVar(&opts.picturesDir, "pictures", "", "Directory for the output figures")
	fs.StringVar(&opts.debugLevel, "d", "info", "Debug level: info, debug, warn")
	fs.StringVar(&opts.run, "run", "", "Read rows from this archived run instead of the CSV files")
	fs.StringVar(&opts.label, "label", "latest", "Label to import the result files under")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func setLogLevel(level string) error {
	switch level {
	case "info":
		log.SetLevel(log.InfoLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug mode is enabled")
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		return fmt.Errorf("%w: unknown debug level %q", errUsage, level)
	}
	return nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.resultsDir != "" {
		// Reports follow the results unless the config placed them elsewhere.
		if cfg.ReportsDir == config.Default().ReportsDir {
			cfg.ReportsDir = opts.resultsDir
		}
		cfg.ResultsDir = opts.resultsDir
	}
	if opts.picturesDir != "" {
		cfg.PicturesDir = opts.picturesDir
	}
	return cfg, cfg.Validate()
}

func openArchive(cfg *config.Config) (*archive.DB, error) {
	return archive.Open(cfg.ArchiveDir, cfg.CacheEnabled)
}

func loadInputs(cfg *config.Config, opts *options) ([]input, error) {
	if opts.run != "" {
		if err := archive.ValidateLabel(opts.run); err != nil {
			return nil, err
		}
		db, err := openArchive(cfg)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		set, err := db.Load(opts.run)
		if err != nil {
			return nil, err
		}
		return []input{{prefix: opts.run, set: set}}, nil
	}

	if !utils.FileExists(cfg.ResultsDir) {
		log.Warnf("Results directory %s does not exist", cfg.ResultsDir)
	}
	sources, err := loader.Discover(cfg.ResultsDir, cfg.Conventions())
	if err != nil {
		return nil, err
	}
	inputs := make([]input, 0, len(sources.Parallel)+1)
	for _, path := range sources.All() {
		set, err := loader.LoadFile(path)
		if err != nil {
			log.WithError(err).Errorf("Skipping %s", path)
			continue
		}
		inputs = append(inputs, input{prefix: loader.Prefix(path), set: set})
	}
	return inputs, nil
}

func merged(inputs []input) *core.ResultSet {
	sets := make([]*core.ResultSet, len(inputs))
	for i, in := range inputs {
		sets[i] = in.set
	}
	return core.Concat(sets...)
}

// skipEmpty turns ErrNoData into a warning so one missing chart does not
// stop the others.
func skipEmpty(chart string, err error) error {
	if errors.Is(err, render.ErrNoData) {
		log.Warnf("No data for the %s chart, skipping", chart)
		return nil
	}
	return err
}

func histograms(cfg *config.Config, inputs []input) error {
	for _, in := range inputs {
		if _, err := render.Histograms(in.set, in.prefix, cfg); err != nil {
			if err := skipEmpty(in.prefix+" histogram", err); err != nil {
				return err
			}
		}
	}
	return nil
}

func speedup(cfg *config.Config, set *core.ResultSet) error {
	_, err := render.SpeedupEfficiency(aggregate.All(set, cfg.Op()), cfg)
	return skipEmpty("speedup", err)
}

func compare(cfg *config.Config, set *core.ResultSet) error {
	if _, err := render.TimeComparison(set, cfg); err != nil {
		if err := skipEmpty("time comparison", err); err != nil {
			return err
		}
	}
	_, err := render.MemoryComparison(set, cfg)
	return skipEmpty("memory comparison", err)
}

func html(cfg *config.Config, set *core.ResultSet) error {
	_, err := render.HTMLReport(aggregate.All(set, cfg.Op()), set, cfg)
	return skipEmpty("HTML report", err)
}

func writeAggregates(cfg *config.Config, set *core.ResultSet) error {
	path := filepath.Join(cfg.ReportsDir, render.AggregatesFile)
	records := aggregate.All(set, cfg.Op())
	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		return aggregate.WriteCSV(w, records)
	})
	if err != nil {
		return err
	}
	log.Infof("Aggregates written to %s", path)
	return nil
}

func summary(cfg *config.Config, set *core.ResultSet, stdout io.Writer) error {
	ops, err := operator.NewOpSet(aggregate.SummaryOps)
	if err != nil {
		return err
	}
	summaries, err := aggregate.Summarize(set, ops)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		log.Warn("No rows to summarize")
		return nil
	}
	if err := aggregate.WriteSummaryTable(stdout, summaries); err != nil {
		return err
	}
	path := filepath.Join(cfg.ReportsDir, render.SummaryFile)
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return aggregate.WriteSummaryCSV(w, summaries)
	})
}

func importRun(cfg *config.Config, set *core.ResultSet, label string) error {
	if set.Empty() {
		return fmt.Errorf("no rows found in %s", cfg.ResultsDir)
	}
	db, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	run, err := db.Import(label, set)
	if err != nil {
		return err
	}
	log.Infof("Imported %d rows as run %q (id %d)", run.Rows, run.Label, run.ID)
	return nil
}

func listRuns(cfg *config.Config, stdout io.Writer) error {
	db, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	runs, err := db.Runs()
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Fprintf(stdout, "%s\t%d\t%d rows\t%s\n",
			run.Label, run.ID, run.Rows, run.Imported.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	command := args[0]
	if !commands[command] {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
	opts, err := parseFlags(command, args[1:], stderr)
	if err != nil {
		return err
	}
	if err := setLogLevel(opts.debugLevel); err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if command == "runs" {
		return listRuns(cfg, stdout)
	}

	inputs, err := loadInputs(cfg, opts)
	if err != nil {
		return err
	}
	set := merged(inputs)

	switch command {
	case "histograms":
		return histograms(cfg, inputs)
	case "speedup":
		return speedup(cfg, set)
	case "compare":
		return compare(cfg, set)
	case "html":
		return html(cfg, set)
	case "summary":
		return summary(cfg, set, stdout)
	case "import":
		return importRun(cfg, set, opts.label)
	case "all":
		steps := []func() error{
			func() error { return histograms(cfg, inputs) },
			func() error { return speedup(cfg, set) },
			func() error { return compare(cfg, set) },
			func() error { return html(cfg, set) },
			func() error { return writeAggregates(cfg, set) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	log.SetOutput(os.Stderr)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
