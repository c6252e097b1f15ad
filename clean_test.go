package inflation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/etnz/inflation/dataset"
	"github.com/google/go-cmp/cmp"
)

func TestClean(t *testing.T) {
	csvData := `Sector,Year,Month,Cereals,Fuel,General index
Urban,2014,Marcrh,110.5,100,108
Rural,2013,Sept,105,98.5,104
Rural,,Jan,1,1,1
Rural,2013,,1,1,1
Rural,twenty,Jan,1,1,1
Rural,2013,Smarch,1,1,1
Rural,2013.0, jan ,101,NA,103
Rural+Urban,2013,Sept,106,99,104.5
`
	table, err := dataset.ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	s, stats, err := Load(table)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	wantStats := CleanStats{Rows: 8, Kept: 4, MissingTemporal: 2, BadYear: 1, BadDate: 1}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if stats.Dropped()+stats.Kept != stats.Rows {
		t.Errorf("dropped %d + kept %d != rows %d", stats.Dropped(), stats.Kept, stats.Rows)
	}

	type row struct {
		Sector string
		Date   time.Time
		Month  string
	}
	var got []row
	for _, r := range s.Records() {
		got = append(got, row{r.Sector, r.Date, r.Month})
	}
	want := []row{
		{"Rural", time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC), "January"},
		{"Rural", time.Date(2013, time.September, 1, 0, 0, 0, 0, time.UTC), "September"},
		{"Rural+Urban", time.Date(2013, time.September, 1, 0, 0, 0, 0, time.UTC), "September"},
		{"Urban", time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC), "March"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	first := s.Records()[0]
	if !math.IsNaN(first.Values["Fuel"]) {
		t.Errorf("got Fuel %v for a NA cell, want NaN", first.Values["Fuel"])
	}
	if first.General != 103 {
		t.Errorf("got general index %v, want 103", first.General)
	}
}

func TestClean_NeverGrows(t *testing.T) {
	testCases := []string{
		"Sector,Year,Month,Fuel,General index\n",
		"Sector,Year,Month,Fuel,General index\nRural,2014,Jan,1,1\n",
		"Sector,Year,Month,Fuel,General index\nRural,,,1,1\nRural,2014,,1,1\n,2014,Feb,1,1\n",
	}
	for _, csvData := range testCases {
		table, err := dataset.ReadCSV(strings.NewReader(csvData))
		if err != nil {
			t.Fatal(err)
		}
		s, stats, err := Load(table)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if s.Len() > len(table.Rows) {
			t.Errorf("series has %d records for %d input rows", s.Len(), len(table.Rows))
		}
		if s.Len() != stats.Kept {
			t.Errorf("series has %d records, stats report %d kept", s.Len(), stats.Kept)
		}
		for _, r := range s.Records() {
			if r.Date.IsZero() {
				t.Errorf("record %+v has no date", r)
			}
		}
	}
}

func TestClean_ExplicitSchema(t *testing.T) {
	table := &dataset.Table{
		Header: []string{"Period", "Fuel", "Yr", "Mon"},
		Rows:   [][]string{{"x", "12.5", "2016", "Aug"}},
	}
	schema := Schema{Sector: "Period", Year: "Yr", Month: "Mon", Categories: []string{"Fuel"}}

	s, _, err := Clean(table, schema)
	if err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}
	got, err := s.MeanForYear("Fuel", 2016)
	if err != nil {
		t.Fatalf("MeanForYear() failed: %v", err)
	}
	if got != 12.5 {
		t.Errorf("got %v, want 12.5", got)
	}
}

func TestParseYear(t *testing.T) {
	testCases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2014", 2014, true},
		{"2014.0", 2014, true},
		{"2014.5", 0, false},
		{"NaN", 0, false},
		{"year", 0, false},
	}
	for _, tc := range testCases {
		got, ok := parseYear(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("parseYear(%q) = %d, %v, want %d, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
