// Package io reads transaction files into datasets and writes the derived
// analysis to exchange formats.
//
// Key components:
//   - TransactionReader for delimited transaction files with strict date parsing
//   - ParquetWriter for the enriched dataset, via Apache Arrow
//   - XLSXWriter for one-sheet-per-view spreadsheets
//   - JSONWriter for the full analysis document
//
// Writers implement ReportWriter or DatasetWriter so the pipeline can treat
// every export as an independent artifact.
package io

import (
	"io"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/dataset"
)

const (
	// DefaultBatchSize is the default batch size for Parquet writes
	DefaultBatchSize = 1000
)

// DataReader defines the interface for reading a dataset from a source
type DataReader interface {
	Read() (*dataset.Dataset, error)
}

// ReportWriter writes a finished analysis to a destination
type ReportWriter interface {
	WriteReport(w io.Writer, report *analysis.Report) error
}

// DatasetWriter writes the enriched dataset to a destination
type DatasetWriter interface {
	WriteDataset(w io.Writer, ds *dataset.Dataset) error
}

var (
	_ DataReader    = (*TransactionReader)(nil)
	_ DatasetWriter = (*ParquetWriter)(nil)
	_ ReportWriter  = (*JSONWriter)(nil)
	_ ReportWriter  = (*XLSXWriter)(nil)
)

// CSVOptions contains configuration options for reading transaction files
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
	// DateLayouts are tried in order for the Date column
	DateLayouts []string
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:        ',',
		Comment:          0,
		SkipInitialSpace: false,
		DateLayouts:      []string{time.DateOnly, "2006/01/02", "01/02/2006", time.DateTime, time.RFC3339},
	}
}

// TransactionReader reads a delimited transaction file into a Dataset
type TransactionReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewTransactionReader creates a new reader with the specified options
func NewTransactionReader(reader io.Reader, options CSVOptions) *TransactionReader {
	return &TransactionReader{
		reader:  reader,
		options: options,
	}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression type for Parquet files
	Compression string
	// BatchSize for writing operations
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		Compression: "snappy",
		BatchSize:   DefaultBatchSize,
	}
}

// ParquetWriter writes the enriched dataset in Parquet format
type ParquetWriter struct {
	options ParquetOptions
	mem     memory.Allocator
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(options ParquetOptions, mem memory.Allocator) *ParquetWriter {
	return &ParquetWriter{
		options: options,
		mem:     mem,
	}
}
