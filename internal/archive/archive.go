// Package archive packs file blocks into an in-memory zip and reports
// per-file and aggregate statistics about what it wrote.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/opencontainers/go-digest"

	"github.com/jorge-barreto/monozip/internal/fileblocks"
)

// DefaultFilename is the name offered for download.
const DefaultFilename = "project.zip"

// ErrNoEntries is returned when Build is called with nothing to archive.
var ErrNoEntries = errors.New("archive: no entries")

// FileStat describes one archive member.
type FileStat struct {
	Lines int    `json:"lines"`
	Lang  string `json:"lang"`
	Bytes int    `json:"bytes"`
}

// Report aggregates statistics over every entry written.
type Report struct {
	Order      []string            `json:"order"`
	PerFile    map[string]FileStat `json:"report"`
	Languages  map[string]int      `json:"languages"`
	TotalFiles int                 `json:"total_files"`
	TotalBytes int                 `json:"total_size"`
}

// Result is a finished archive.
type Result struct {
	Data   []byte
	Digest digest.Digest
	Report *Report
}

// Options tunes Build. The zero value is usable.
type Options struct {
	// Modified is stamped on every member. Zero means now.
	Modified time.Time
}

// Build writes each entry as a deflated member named by its path, in order.
// Duplicate paths produce duplicate members; the report keeps the last one.
// Nothing is returned unless the whole archive was written.
func Build(entries []fileblocks.FileBlock, opts Options) (*Result, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	modified := opts.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	rep := &Report{
		PerFile:   make(map[string]FileStat, len(entries)),
		Languages: make(map[string]int),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:     e.Path,
			Method:   zip.Deflate,
			Modified: modified,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("archive: creating %s: %w", e.Path, err)
		}
		if _, err := w.Write([]byte(e.Content)); err != nil {
			zw.Close()
			return nil, fmt.Errorf("archive: writing %s: %w", e.Path, err)
		}
		rep.add(e)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: finishing: %w", err)
	}
	rep.TotalFiles = len(entries)

	data := buf.Bytes()
	return &Result{
		Data:   data,
		Digest: digest.FromBytes(data),
		Report: rep,
	}, nil
}

func (r *Report) add(e fileblocks.FileBlock) {
	lang := fileblocks.LanguageTag(e.Path)
	if _, dup := r.PerFile[e.Path]; !dup {
		r.Order = append(r.Order, e.Path)
	}
	r.PerFile[e.Path] = FileStat{
		Lines: CountLines(e.Content),
		Lang:  lang,
		Bytes: len(e.Content),
	}
	r.Languages[lang]++
	r.TotalBytes += len(e.Content)
}

// CountLines counts newline-delimited lines. A trailing newline ends the
// last line rather than starting a new one, and "" has no lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
