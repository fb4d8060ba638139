// Package iocache keeps fetched records of every data source on disk.
//
// Each source has its own directory under the cache root. A query is
// stored in a CSV file named after a UUID v5 of the query, so the file
// name is stable and safe for any input. The first row of a file holds
// field names, the following rows hold records. Existence of the file
// means the query was fetched successfully before.
package iocache

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gnames/gnuuid"
	"github.com/gnames/macrofitas/internal/iofs"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

const ext = ".csv"

type iocache struct {
	id  source.ID
	dir string
}

// New creates a cache for a data source under the cache root.
func New(cacheDir string, id source.ID) source.Cache {
	return &iocache{id: id, dir: Dir(cacheDir, id)}
}

// Dir returns the cache directory of a data source.
func Dir(cacheDir string, id source.ID) string {
	return filepath.Join(cacheDir, id.String())
}

func (c *iocache) Source() source.ID {
	return c.id
}

func (c *iocache) path(query string) string {
	return filepath.Join(c.dir, gnuuid.New(query).String()+ext)
}

func (c *iocache) Read(query string) ([]record.Record, bool, error) {
	path := c.path(query)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, CacheReadError(c.id, query, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, false, CacheReadError(c.id, query, err)
	}

	var res []record.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, CacheReadError(c.id, query, err)
		}
		rec := make(record.Record, len(header))
		for i, v := range row {
			if i < len(header) {
				rec.Set(header[i], v)
			}
		}
		res = append(res, rec)
	}
	return res, true, nil
}

// Write saves records to a temporary file and renames it, so readers
// never see a partially written entry. Writing no records is a no-op.
func (c *iocache) Write(query string, recs []record.Record) error {
	if len(recs) == 0 {
		return nil
	}
	if err := iofs.EnsureDir(c.dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return CacheWriteError(c.id, query, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err = writeCSV(tmp, recs); err != nil {
		tmp.Close()
		return CacheWriteError(c.id, query, err)
	}
	if err = tmp.Close(); err != nil {
		return CacheWriteError(c.id, query, err)
	}
	if err = os.Rename(tmpPath, c.path(query)); err != nil {
		return CacheWriteError(c.id, query, err)
	}
	return nil
}

func writeCSV(w io.Writer, recs []record.Record) error {
	header := record.Fields(recs)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range recs {
		for i, f := range header {
			row[i] = rec.Value(f)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
