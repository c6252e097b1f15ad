package inflation

import (
	"strings"
	"testing"

	"github.com/etnz/inflation/dataset"
)

// newTestSeries cleans a CSV table, failing the test on schema errors.
func newTestSeries(t *testing.T, csvData string) *Series {
	t.Helper()
	table, err := dataset.ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	s, _, err := Load(table)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return s
}

// trendCSV has category values {2014: 100, 2015: 110, 2020: 150} for Fuel.
const trendCSV = `Sector,Year,Month,Fuel,Egg,General index
Rural,2014,Jan,95,50,100
Rural,2014,Feb,105,,100
Rural,2015,March,110,52,101
Rural,2020,Dec,150,70,130
Urban,2020,Nov,150,,131
`
