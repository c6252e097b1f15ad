// Package inflation measures how the purchasing power of an amount of money
// changed between two years, category by category, using a Consumer Price
// Index (CPI) time series.
//
// The core functionalities are:
//   - Cleaning: turning a raw CPI table (see package dataset) into a Series,
//     with normalized month names and a calendar date per record.
//   - Category selection: the Schema tells sector/year/month columns apart
//     from the category columns and the trailing general index.
//   - Aggregation: yearly means of a category, and the yearly trend over a
//     range of years.
//   - Inflation: the inflation-adjusted amount and the percent change between
//     two yearly means.
//
// A Series is built once from the source and is read-only afterwards; every
// other value is computed on demand for a Query. This package serves as the
// foundational logic for the `cpi` command-line tool.
package inflation
