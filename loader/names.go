package loader

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var processesInName = regexp.MustCompile(`_(\d+)proc\.csv$`)

// Conventions are the file names the benchmark driver writes.
type Conventions struct {
	SequentialFile  string
	ParallelPattern string
}

func DefaultConventions() Conventions {
	return Conventions{
		SequentialFile:  "sequential_results.csv",
		ParallelPattern: "parallel_results_*proc.csv",
	}
}

// ProcessesFromName returns N for files named like parallel_results_<N>proc.csv
// and 0 for everything else.
func ProcessesFromName(path string) int {
	match := processesInName.FindStringSubmatch(filepath.Base(path))
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// Prefix is the output-name prefix for charts derived from one input file.
func Prefix(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if ProcessesFromName(path) > 0 {
		return "parallel_" + base
	}
	if strings.HasPrefix(base, "sequential") {
		return "sequential"
	}
	return base
}

type Sources struct {
	Sequential string
	Parallel   []string
}

func (sources *Sources) All() []string {
	paths := make([]string, 0, len(sources.Parallel)+1)
	if sources.Sequential != "" {
		paths = append(paths, sources.Sequential)
	}
	return append(paths, sources.Parallel...)
}

// Discover finds the result files in dir. The sequential path is returned
// even if the file is missing, so that loading it reports the absence.
// Parallel files are ordered by process count.
func Discover(dir string, conventions Conventions) (*Sources, error) {
	parallel, err := filepath.Glob(filepath.Join(dir, conventions.ParallelPattern))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(parallel, func(i, j int) bool {
		pi, pj := ProcessesFromName(parallel[i]), ProcessesFromName(parallel[j])
		if pi == pj {
			return parallel[i] < parallel[j]
		}
		return pi < pj
	})
	return &Sources{
		Sequential: filepath.Join(dir, conventions.SequentialFile),
		Parallel:   parallel,
	}, nil
}
