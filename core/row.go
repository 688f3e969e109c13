package core

import "fmt"

// Row is one benchmark measurement. Time is in seconds, Memory in megabytes.
// Processes == 0 marks the sequential run.
type Row struct {
	Size      int
	Time      float64
	Memory    float64
	Processes int
}

func (row Row) Sequential() bool {
	return row.Processes == 0
}

func (row Row) Key() Key {
	return Key{Size: row.Size, Processes: row.Processes}
}

// Key groups rows by matrix size and process count.
type Key struct {
	Size      int
	Processes int
}

func (key Key) Less(other Key) bool {
	if key.Processes == other.Processes {
		return key.Size < other.Size
	}
	return key.Processes < other.Processes
}

func (key Key) String() string {
	if key.Processes == 0 {
		return fmt.Sprintf("%dx%d sequential", key.Size, key.Size)
	}
	return fmt.Sprintf("%dx%d on %d processes", key.Size, key.Size, key.Processes)
}
