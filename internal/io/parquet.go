package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/salesinsight/internal/dataset"
)

// ParquetFile is the dataset export written into the output directory.
const ParquetFile = "transactions.parquet"

// WriteDataset writes the enriched dataset, including its calendar columns,
// as a single Parquet row group.
func (w *ParquetWriter) WriteDataset(dst io.Writer, ds *dataset.Dataset) (err error) {
	mem := w.mem
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	record := ds.Record(mem)
	defer record.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(codec(w.options.Compression)),
		parquet.WithBatchSize(int64(w.options.BatchSize)),
		parquet.WithAllocator(mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem), pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(record.Schema(), dst, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file writer: %w", closeErr)
		}
	}()

	if err := writer.Write(record); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

func codec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Codecs.Gzip
	case "lz4":
		return compress.Codecs.Lz4Raw
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

// ReadParquetTable reads a Parquet export back into an Arrow table. The
// caller must Release the table.
func ReadParquetTable(r io.Reader, mem memory.Allocator) (arrow.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return table, nil
}
