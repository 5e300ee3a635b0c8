package cleaner

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
)

// Write persists set to path as CSV with a header row and no index column.
//
// Rows are written to a temporary file in the target directory which is then
// renamed over path, so a failed write never leaves partial output behind.
func Write(path string, set *RecordSet) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: err}
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: err}
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(set.Columns); err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: fmt.Errorf("header: %w", err)}
	}
	for i := range set.Records {
		if err := w.Write(set.Records[i].Cells(set.Columns)); err != nil {
			return &core.DataSourceError{Path: path, Op: "write", Err: fmt.Errorf("line %d: %w", set.Records[i].Line, err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: err}
	}

	if err := tmp.Close(); err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &core.DataSourceError{Path: path, Op: "write", Err: err}
	}
	return nil
}
