package core

import "sort"

// ResultSet is an ordered collection of rows loaded from one or more files.
// Repeated measurements of the same key are kept.
type ResultSet struct {
	Rows []Row
}

func NewResultSet(rows ...Row) *ResultSet {
	set := &ResultSet{Rows: make([]Row, 0, len(rows))}
	set.Rows = append(set.Rows, rows...)
	return set
}

func (set *ResultSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.Rows)
}

func (set *ResultSet) Empty() bool {
	return set.Len() == 0
}

func (set *ResultSet) Append(rows ...Row) {
	set.Rows = append(set.Rows, rows...)
}

// Concat returns a new set holding the rows of all sets in order.
func Concat(sets ...*ResultSet) *ResultSet {
	n := 0
	for _, set := range sets {
		n += set.Len()
	}
	merged := &ResultSet{Rows: make([]Row, 0, n)}
	for _, set := range sets {
		if set == nil {
			continue
		}
		merged.Rows = append(merged.Rows, set.Rows...)
	}
	return merged
}

func (set *ResultSet) Filter(keep func(Row) bool) *ResultSet {
	filtered := &ResultSet{Rows: make([]Row, 0)}
	if set == nil {
		return filtered
	}
	for _, row := range set.Rows {
		if keep(row) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}

func (set *ResultSet) Sequential() *ResultSet {
	return set.Filter(func(row Row) bool { return row.Sequential() })
}

func (set *ResultSet) Parallel() *ResultSet {
	return set.Filter(func(row Row) bool { return !row.Sequential() })
}

func (set *ResultSet) WithProcesses(processes int) *ResultSet {
	return set.Filter(func(row Row) bool { return row.Processes == processes })
}

func (set *ResultSet) WithSize(size int) *ResultSet {
	return set.Filter(func(row Row) bool { return row.Size == size })
}

// Sizes returns the distinct matrix sizes in ascending order.
func (set *ResultSet) Sizes() []int {
	seen := make(map[int]struct{})
	sizes := make([]int, 0)
	if set == nil {
		return sizes
	}
	for _, row := range set.Rows {
		if _, ok := seen[row.Size]; ok {
			continue
		}
		seen[row.Size] = struct{}{}
		sizes = append(sizes, row.Size)
	}
	sort.Ints(sizes)
	return sizes
}

// Processes returns the distinct non-zero process counts in ascending order.
func (set *ResultSet) Processes() []int {
	seen := make(map[int]struct{})
	counts := make([]int, 0)
	if set == nil {
		return counts
	}
	for _, row := range set.Rows {
		if row.Sequential() {
			continue
		}
		if _, ok := seen[row.Processes]; ok {
			continue
		}
		seen[row.Processes] = struct{}{}
		counts = append(counts, row.Processes)
	}
	sort.Ints(counts)
	return counts
}

func (set *ResultSet) Times() []float64 {
	values := make([]float64, set.Len())
	for i := range values {
		values[i] = set.Rows[i].Time
	}
	return values
}

func (set *ResultSet) Memories() []float64 {
	values := make([]float64, set.Len())
	for i := range values {
		values[i] = set.Rows[i].Memory
	}
	return values
}

// Group is the rows sharing one Key, in load order.
type Group struct {
	Key  Key
	Rows *ResultSet
}

// Groups partitions the set by (size, processes). Groups are sorted by
// process count, then size.
func (set *ResultSet) Groups() []Group {
	index := make(map[Key]int)
	groups := make([]Group, 0)
	if set == nil {
		return groups
	}
	for _, row := range set.Rows {
		key := row.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Rows: NewResultSet()})
		}
		groups[i].Rows.Append(row)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.Less(groups[j].Key)
	})
	return groups
}
