package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"
)

// Metadata describes a single file or directory for the info view.
type Metadata struct {
	Name       string
	Path       string
	Location   string
	IsDir      bool
	Extension  string
	Size       int64
	Modified   time.Time
	Mode       os.FileMode
	TotalFiles int
	FolderSize int64
}

// Concurrent requests for the same folder share one walk.
var folderSizeGroup singleflight.Group

// Describe stats path and, for directories, counts children and sums the tree size.
func Describe(ctx context.Context, path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("describe %s: %w", path, err)
	}

	meta := Metadata{
		Name:      norm.NFC.String(info.Name()),
		Path:      path,
		Location:  "Unknown",
		IsDir:     info.IsDir(),
		Extension: "N/A",
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}
	if parent, ok := ParentOf(path); ok {
		meta.Location = parent
	}

	if !meta.IsDir {
		if ext := filepath.Ext(path); ext != "" {
			meta.Extension = ext
		}
		return meta, nil
	}

	if entries, err := os.ReadDir(path); err == nil {
		meta.TotalFiles = len(entries)
	}
	size, err := FolderSize(ctx, path)
	if err != nil {
		return meta, err
	}
	meta.FolderSize = size
	return meta, nil
}

// FolderSize sums regular file sizes below path. Unreadable subtrees count as zero.
func FolderSize(ctx context.Context, path string) (int64, error) {
	v, err, _ := folderSizeGroup.Do(path, func() (interface{}, error) {
		return walkSize(ctx, path)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func walkSize(ctx context.Context, root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("folder size %s: %w", root, err)
	}
	return total, nil
}

// FormatSize renders a byte count with IEC units, e.g. "1.5 KiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
