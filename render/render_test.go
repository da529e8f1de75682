package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miku/cordex/aggregate"
)

func TestBarChart(t *testing.T) {
	ft := aggregate.FreqTable{{Key: "2019", Count: 3}, {Key: "2020", Count: 12}, {Key: "2021", Count: 7}}
	path := filepath.Join(t.TempDir(), "by_year.png")
	if err := BarChart(ft, "Publications by Year", path, 800, 400); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty chart file")
	}
}

func TestBarChartEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := BarChart(nil, "Empty", path, 800, 400); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestWordCloudMissingFont(t *testing.T) {
	ft := aggregate.FreqTable{{Key: "vaccine", Count: 5}}
	path := filepath.Join(t.TempDir(), "cloud.png")
	if err := WordCloud(ft, "", path, 400, 200); err == nil {
		t.Error("expected error without font file")
	}
	if err := WordCloud(ft, "/no/such/font.ttf", path, 400, 200); err == nil {
		t.Error("expected error for missing font file")
	}
}
