package ux

import (
	"fmt"
	"io"
	"sort"

	"github.com/jorge-barreto/monozip/internal/archive"
	"github.com/jorge-barreto/monozip/internal/preset"
)

// RenderReport prints the per-file table and language summary for a build.
func RenderReport(w io.Writer, rep *archive.Report) {
	fmt.Fprintf(w, "%sFiles:%s\n", Bold, Reset)
	for _, path := range rep.Order {
		st := rep.PerFile[path]
		lang := st.Lang
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "  %-40s %s%-6s%s %5d lines  %s\n",
			path, Cyan, lang, Reset, st.Lines, HumanBytes(st.Bytes))
	}

	fmt.Fprintf(w, "\n%sLanguages:%s ", Bold, Reset)
	langs := make([]string, 0, len(rep.Languages))
	for l := range rep.Languages {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if rep.Languages[langs[i]] != rep.Languages[langs[j]] {
			return rep.Languages[langs[i]] > rep.Languages[langs[j]]
		}
		return langs[i] < langs[j]
	})
	for i, l := range langs {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		name := l
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "%s(%d)", name, rep.Languages[l])
	}
	fmt.Fprintf(w, "\n%sTotal:%s     %d files, %s\n", Bold, Reset, rep.TotalFiles, HumanBytes(rep.TotalBytes))
}

// RenderPresets lists every preset with its files.
func RenderPresets(w io.Writer, presets []preset.Preset) {
	if len(presets) == 0 {
		fmt.Fprintf(w, "  %s(none)%s\n", Dim, Reset)
		return
	}
	for _, p := range presets {
		fmt.Fprintf(w, "%s%-12s%s %s\n", Bold, p.Key, Reset, p.Label)
		for _, path := range p.Paths() {
			fmt.Fprintf(w, "  %s%s%s\n", Dim, path, Reset)
		}
	}
}
