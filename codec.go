package mandel

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// WriteDataset encodes ds as a JSON document with the top-level keys
// "metadata" and "points". With indent set the output uses two spaces per
// level.
func WriteDataset(w io.Writer, ds *Dataset, indent bool) error {
	bw := bufio.NewWriter(w)

	enc := json.NewEncoder(bw)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// ReadDataset decodes a document written by WriteDataset and checks that the
// point list matches the grid described by its metadata.
func ReadDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	want := ds.Metadata.NumX * ds.Metadata.NumY
	if len(ds.Points) != want {
		return Dataset{}, fmt.Errorf("dataset has %d points, metadata describes %dx%d", len(ds.Points), ds.Metadata.NumX, ds.Metadata.NumY)
	}
	return ds, nil
}
