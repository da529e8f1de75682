package sample

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miku/cordex/table"
)

func numberedTable(n int) *table.Table {
	t := table.New([]string{"i"})
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i)})
	}
	return t
}

func TestRowsDeterministic(t *testing.T) {
	tab := numberedTable(100)
	a := Rows(tab, 10, DefaultSeed)
	b := Rows(tab, 10, DefaultSeed)
	if !cmp.Equal(a, b) {
		t.Error("same seed produced different samples")
	}
	if a.Len() != 10 {
		t.Errorf("sample size: got %d, want 10", a.Len())
	}
	c := Rows(tab, 10, DefaultSeed+1)
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical samples, suspicious")
	}
}

func TestRowsOrderPreserved(t *testing.T) {
	tab := numberedTable(50)
	s := Rows(tab, 20, DefaultSeed)
	prev := -1
	for _, row := range s.Rows {
		i, err := strconv.Atoi(row[0])
		if err != nil {
			t.Fatal(err)
		}
		if i <= prev {
			t.Fatalf("sample out of order: %d after %d", i, prev)
		}
		prev = i
	}
}

func TestRowsExhaustive(t *testing.T) {
	tab := numberedTable(5)
	for _, n := range []int{5, 6, 100} {
		s := Rows(tab, n, DefaultSeed)
		if !cmp.Equal(s.Rows, tab.Rows) {
			t.Errorf("n=%d: want all rows back, got %v", n, s.Rows)
		}
	}
	if got := Rows(tab, 0, DefaultSeed).Len(); got != 5 {
		t.Errorf("n=0 disables sampling at this layer, got %d rows", got)
	}
}
