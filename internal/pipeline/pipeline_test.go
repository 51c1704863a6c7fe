package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jorge-barreto/monozip/internal/archive"
	"github.com/jorge-barreto/monozip/internal/config"
	"github.com/jorge-barreto/monozip/internal/fileblocks"
	"github.com/jorge-barreto/monozip/internal/format"
	"github.com/jorge-barreto/monozip/internal/preset"
)

// unavailable behaves like a formatter whose binary is not installed.
var unavailable = format.Func(func(context.Context, string, string) (string, error) {
	return "", errors.New("exec: not found")
})

func newTestPipeline(f format.Formatter) *Pipeline {
	return &Pipeline{
		Parser:      fileblocks.NewParser(),
		Catalog:     preset.Default(),
		Formatter:   f,
		Concurrency: 4,
		Log:         zap.NewNop(),
	}
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestRun_SingleFile(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "a.txt\nhello\nworld"})
	require.NoError(t, err)

	assert.Equal(t, "project.zip", res.Filename)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, map[string]string{"a.txt": "hello\nworld"}, unzip(t, res.Archive.Data))
	assert.Equal(t, 1, res.Report().TotalFiles)
	assert.Equal(t, 11, res.Report().TotalBytes)
}

func TestRun_NoiseTokenDiscarded(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "x.js\ndownload\nconsole.log(1)"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x.js": "console.log(1)"}, unzip(t, res.Archive.Data))
}

func TestRun_PresetOnly(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "", Preset: "rust"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Report().TotalFiles)
	files := unzip(t, res.Archive.Data)
	assert.Equal(t, `fn main() { println!("Hello Rust"); }`, files["src/main.rs"])
}

func TestRun_TwoPythonFiles(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "a.py\nprint(1)\nb.py\nprint(2)"})
	require.NoError(t, err)
	rep := res.Report()
	assert.Equal(t, []string{"a.py", "b.py"}, rep.Order)
	assert.Equal(t, "py", rep.PerFile["a.py"].Lang)
	assert.Equal(t, "py", rep.PerFile["b.py"].Lang)
	assert.Equal(t, map[string]int{"py": 2}, rep.Languages)
}

func TestRun_EmptyInput(t *testing.T) {
	p := newTestPipeline(unavailable)
	for _, req := range []Request{
		{Code: ""},
		{Code: "no markers here\nat all"},
		{Code: "", Preset: "unknown-preset"},
		{Code: "a.txt\nb.txt\n"},
	} {
		res, err := p.Run(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyInput, "request %+v", req)
		assert.Nil(t, res)
	}
}

func TestRun_UnknownPresetIsNoop(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "a.txt\nx", Preset: "nope"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Report().TotalFiles)
}

func TestRun_ParsedThenPresetOrder(t *testing.T) {
	cat, err := preset.Parse([]byte("- key: web\n  label: Web\n  files:\n    z.html: <p>z</p>\n    a.css: 'a {}'\n"))
	require.NoError(t, err)
	p := newTestPipeline(unavailable)
	p.Catalog = cat

	res, err := p.Run(context.Background(), Request{Code: "b.js\nb()\na.js\na()", Preset: "web"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "a.js", "z.html", "a.css"}, res.Report().Order)

	zr, err := zip.NewReader(bytes.NewReader(res.Archive.Data), int64(len(res.Archive.Data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"b.js", "a.js", "z.html", "a.css"}, names)
}

func TestRun_FormattedContentArchived(t *testing.T) {
	r := format.NewRegistry()
	r.Register(format.Func(func(_ context.Context, _, content string) (string, error) {
		return strings.ReplaceAll(content, "(1)", "(1);") + "\n", nil
	}), "js")
	res, err := newTestPipeline(r).Run(context.Background(), Request{Code: "x.js\nconsole.log(1)\nnotes.md\n# hi"})
	require.NoError(t, err)

	files := unzip(t, res.Archive.Data)
	assert.Equal(t, "console.log(1);\n", files["x.js"])
	assert.Equal(t, "# hi", files["notes.md"])
	assert.Equal(t, len("console.log(1);\n")+len("# hi"), res.Report().TotalBytes)
	assert.Equal(t, 1, res.Report().PerFile["x.js"].Lines)
	assert.Equal(t, format.Stats{Formatted: 1, Unchanged: 1}, res.Format)
}

func TestRun_FormatterFailureKeepsContent(t *testing.T) {
	r := format.NewRegistry()
	r.Register(&format.Command{Name: "prettier", Path: "monozip-no-such-formatter-xyz"}, "ts", "tsx", "js", "jsx")
	r.Register(&format.Command{Name: "rustfmt", Path: "false"}, "rs")

	core, logs := observer.New(zap.DebugLevel)
	p := newTestPipeline(r)
	p.Log = zap.New(core)

	code := "app.tsx\nexport const A = () => <div/>\nmain.rs\nfn main(){}"
	res, err := p.Run(context.Background(), Request{Code: code})
	require.NoError(t, err)
	files := unzip(t, res.Archive.Data)
	assert.Equal(t, "export const A = () => <div/>", files["app.tsx"])
	assert.Equal(t, "fn main(){}", files["main.rs"])
	assert.Equal(t, 2, logs.FilterMessage("formatting skipped").Len())

	built := logs.FilterMessage("archive built").All()
	require.Len(t, built, 1)
	assert.Equal(t, res.ID, built[0].ContextMap()["run_id"])
}

func TestRun_ReportConsistency(t *testing.T) {
	code := "a.go\npackage a\n\nfunc A() {}\nsrc/b.ts\nexport {}\nREADME.md\n# Title\nünïcode"
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: code, Preset: "solidity"})
	require.NoError(t, err)
	rep := res.Report()

	var langSum int
	for _, n := range rep.Languages {
		langSum += n
	}
	assert.Equal(t, rep.TotalFiles, langSum)

	files := unzip(t, res.Archive.Data)
	var byteSum int
	for _, c := range files {
		byteSum += len(c)
	}
	assert.Equal(t, rep.TotalBytes, byteSum)
	assert.Equal(t, 4, rep.TotalFiles)
}

func TestNew_FromConfig(t *testing.T) {
	root := t.TempDir()
	catalog := filepath.Join(root, "presets.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("- key: go\n  label: Go\n  files:\n    main.go: package main\n"), 0644))

	cfg := &config.Config{
		Presets:     catalog,
		NoiseTokens: []string{"golang"},
		Formatters:  []config.Formatter{{Name: "upper", Extensions: []string{"txt"}, Command: "tr", Args: []string{"a-z", "A-Z"}}},
	}
	require.NoError(t, config.Validate(cfg, root))

	p, err := New(cfg, nil)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), Request{Code: "a.txt\ngolang\nhello", Preset: "go"})
	require.NoError(t, err)
	files := unzip(t, res.Archive.Data)
	assert.Equal(t, "HELLO", strings.TrimSpace(files["a.txt"]))
	assert.Equal(t, "package main", files["main.go"])
}

func TestNew_BadPresetsFile(t *testing.T) {
	cfg := &config.Config{Presets: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := New(cfg, nil)
	assert.ErrorContains(t, err, "loading presets")
}

func TestNewRegistry(t *testing.T) {
	r, cmds := NewRegistry(config.Default().Formatters)
	require.Len(t, cmds, 2)
	assert.Equal(t, "npx", cmds[0].Path)
	for _, lang := range []string{"ts", "tsx", "js", "jsx", "rs"} {
		_, ok := r.Lookup(lang)
		assert.True(t, ok, lang)
	}
	_, ok := r.Lookup("sol")
	assert.False(t, ok)
}

func TestRun_CallerSuppliedID(t *testing.T) {
	res, err := newTestPipeline(unavailable).Run(context.Background(), Request{Code: "a.txt\nx", ID: "req-42"})
	require.NoError(t, err)
	assert.Equal(t, "req-42", res.ID)
}

func TestRun_ArchiveFailure(t *testing.T) {
	diskFull := errors.New("no space left on device")
	p := newTestPipeline(unavailable)
	p.Build = func([]fileblocks.FileBlock, archive.Options) (*archive.Result, error) {
		return nil, diskFull
	}

	res, err := p.Run(context.Background(), Request{Code: "a.txt\nx"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrArchiveWrite)
	assert.ErrorIs(t, err, diskFull)
	assert.NotErrorIs(t, err, ErrEmptyInput)
}
