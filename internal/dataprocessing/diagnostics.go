package dataprocessing

import (
	"sort"
)

// RepairOutcome describes how the RowRepairer produced a row
type RepairOutcome string

const (
	RepairNone      RepairOutcome = "none"
	RepairReparsed  RepairOutcome = "reparsed"
	RepairTruncated RepairOutcome = "truncated"
	RepairPadded    RepairOutcome = "padded"
)

// CharCount is one line of a character report
type CharCount struct {
	Column      string
	Character   rune
	Occurrences int
}

// Diagnostics collects the anomaly counts of a cleaning run.
// It is not safe for concurrent use; the cleaning core is single-threaded.
type Diagnostics struct {
	RowsRead          int
	Unreadable        int
	Repairs           map[RepairOutcome]int
	Rejected          map[string]map[rune]int
	NullDates         int
	CoercionFallbacks map[string]int
	Suspicious        int
	Duplicates        int
}

// NewDiagnostics creates an empty collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		Repairs:           make(map[RepairOutcome]int),
		Rejected:          make(map[string]map[rune]int),
		CoercionFallbacks: make(map[string]int),
	}
}

// RecordRepair tallies one row outcome
func (d *Diagnostics) RecordRepair(outcome RepairOutcome) {
	d.Repairs[outcome]++
}

// RepairedRows returns the number of rows that needed any repair
func (d *Diagnostics) RepairedRows() int {
	return d.Repairs[RepairReparsed] + d.Repairs[RepairTruncated] + d.Repairs[RepairPadded]
}

// rejectCounter returns the per-rune tally of column, creating it on first use
func (d *Diagnostics) rejectCounter(column string) map[rune]int {
	counts, ok := d.Rejected[column]
	if !ok {
		counts = make(map[rune]int)
		d.Rejected[column] = counts
	}
	return counts
}

// RejectedTotal returns the number of characters removed by whitelists
func (d *Diagnostics) RejectedTotal() int {
	total := 0
	for _, counts := range d.Rejected {
		for _, n := range counts {
			total += n
		}
	}
	return total
}

// RejectedReport returns the rejected-character tallies as report lines
func (d *Diagnostics) RejectedReport() []CharCount {
	return charReport(d.Rejected)
}

// FallbackTotal returns the number of values replaced by a type default
func (d *Diagnostics) FallbackTotal() int {
	total := 0
	for _, n := range d.CoercionFallbacks {
		total += n
	}
	return total
}

// charReport flattens per-column rune tallies, ordered by column name,
// then by descending occurrences, then by character.
func charReport(tallies map[string]map[rune]int) []CharCount {
	var report []CharCount
	for column, counts := range tallies {
		for ch, n := range counts {
			if n == 0 {
				continue
			}
			report = append(report, CharCount{Column: column, Character: ch, Occurrences: n})
		}
	}

	sort.Slice(report, func(i, j int) bool {
		a, b := report[i], report[j]
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		return a.Character < b.Character
	})
	return report
}
