package render

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
)

const infoTimeLayout = "2006-01-02 15:04"

// InfoField is one labelled row of the file information view.
type InfoField struct {
	Label string
	Value string
}

// InfoFields lists what the information view shows for meta.
func InfoFields(meta fsutil.Metadata) []InfoField {
	kind := "File"
	if meta.IsDir {
		kind = "Folder"
	}

	fields := []InfoField{
		{"Name", meta.Name},
		{"Type", kind},
	}
	if meta.IsDir {
		fields = append(fields,
			InfoField{"Total files", strconv.Itoa(meta.TotalFiles)},
			InfoField{"Folder size", fsutil.FormatSize(meta.FolderSize)},
		)
	} else {
		fields = append(fields,
			InfoField{"Extension", meta.Extension},
			InfoField{"Size", fsutil.FormatSize(meta.Size)},
		)
	}
	fields = append(fields,
		InfoField{"Location", meta.Location},
		InfoField{"Modified", fmt.Sprintf("%s (%s)", meta.Modified.Format(infoTimeLayout), humanize.Time(meta.Modified))},
		InfoField{"Mode", meta.Mode.String()},
	)
	return fields
}

// InfoLines renders InfoFields as aligned "Label: value" lines.
func InfoLines(meta fsutil.Metadata) []string {
	fields := InfoFields(meta)
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width+1, f.Label+":", f.Value))
	}
	return lines
}
