package analytics

import (
	"sort"
	"strings"

	"tmdbcli/pkg/contracts/domain"
)

// NameCount is how many movies list a name
type NameCount struct {
	Name  string
	Count int
}

// NameProfit is the total profit of the movies listing a name
type NameProfit struct {
	Name   string
	Profit int64
}

// SplitNames splits a |-separated list, trimming names and skipping empty ones
func SplitNames(list string) []string {
	if list == "" || list == domain.MissingText {
		return nil
	}
	var names []string
	for _, part := range strings.Split(list, "|") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// nameTally accumulates per-name counts and profits, remembering first-seen
// order so equal totals rank in dataset order
type nameTally struct {
	order  []string
	counts map[string]int
	profit map[string]int64
}

func tallyNames(movies []domain.Movie, field func(domain.Movie) string) *nameTally {
	t := &nameTally{counts: make(map[string]int), profit: make(map[string]int64)}
	for _, m := range movies {
		for _, name := range SplitNames(field(m)) {
			if _, ok := t.counts[name]; !ok {
				t.order = append(t.order, name)
			}
			t.counts[name]++
			t.profit[name] += m.Profit()
		}
	}
	return t
}

// byCount returns the n most frequent names; n <= 0 returns all
func (t *nameTally) byCount(n int) []NameCount {
	out := make([]NameCount, len(t.order))
	for i, name := range t.order {
		out[i] = NameCount{Name: name, Count: t.counts[name]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return head(out, n)
}

// byProfit returns the n names with the highest total profit
func (t *nameTally) byProfit(n int) []NameProfit {
	out := make([]NameProfit, len(t.order))
	for i, name := range t.order {
		out[i] = NameProfit{Name: name, Profit: t.profit[name]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	return head(out, n)
}

func head[T any](s []T, n int) []T {
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
