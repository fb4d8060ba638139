package iocache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/macrofitas/internal/iofs"
	"github.com/gnames/macrofitas/pkg/source"
)

// Stat describes the cache of one data source.
type Stat struct {
	Source  source.ID
	Entries int
	Bytes   int64
}

// Stats returns cache statistics for the given sources. A missing cache
// directory gives zero values.
func Stats(cacheDir string, ids ...source.ID) ([]Stat, error) {
	res := make([]Stat, 0, len(ids))
	for _, id := range ids {
		st := Stat{Source: id}
		dir := Dir(cacheDir, id)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			res = append(res, st)
			continue
		}
		if err != nil {
			return nil, iofs.ReadFileError(dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			st.Entries++
			st.Bytes += info.Size()
		}
		res = append(res, st)
	}
	return res, nil
}

// Clear removes cached entries of the given sources.
func Clear(cacheDir string, ids ...source.ID) error {
	for _, id := range ids {
		if err := iofs.RemoveDir(Dir(cacheDir, id)); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the file that keeps records of a query. It is useful for
// debugging and for the lookup command.
func Path(cacheDir string, id source.ID, query string) string {
	c := &iocache{id: id, dir: Dir(cacheDir, id)}
	return filepath.Clean(c.path(query))
}
