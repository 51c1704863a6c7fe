// Package pipeline turns one paste into one archive: parse, merge a preset,
// format, then pack. A Pipeline holds only read-only collaborators and can
// serve concurrent runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jorge-barreto/monozip/internal/archive"
	"github.com/jorge-barreto/monozip/internal/config"
	"github.com/jorge-barreto/monozip/internal/fileblocks"
	"github.com/jorge-barreto/monozip/internal/format"
	"github.com/jorge-barreto/monozip/internal/preset"
)

var (
	// ErrEmptyInput means neither the paste nor the preset yielded a file.
	ErrEmptyInput = errors.New("no files found")
	// ErrArchiveWrite means the archive could not be produced.
	ErrArchiveWrite = errors.New("archive write failed")
)

// Request is one paste submission.
type Request struct {
	Code   string `json:"code"`
	Preset string `json:"preset"`

	// ID names the run in logs and results. Run assigns one when empty.
	ID string `json:"-"`
}

// Result is a finished run.
type Result struct {
	ID       string
	Filename string
	Archive  *archive.Result
	Format   format.Stats
	Duration time.Duration
}

// Report is shorthand for the archive statistics.
func (r *Result) Report() *archive.Report {
	return r.Archive.Report
}

// Pipeline wires the parser, preset catalog, and formatter together.
type Pipeline struct {
	Parser      *fileblocks.Parser
	Catalog     *preset.Catalog
	Formatter   format.Formatter
	Concurrency int
	Log         *zap.Logger

	// Modified is stamped on archive members; zero means the run time.
	Modified time.Time

	// Build packs the formatted entries. Nil means archive.Build.
	Build func([]fileblocks.FileBlock, archive.Options) (*archive.Result, error)
}

// New builds a pipeline from validated config.
func New(cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	catalog := preset.Default()
	if cfg.Presets != "" {
		c, err := preset.LoadFile(cfg.Presets)
		if err != nil {
			return nil, fmt.Errorf("loading presets: %w", err)
		}
		catalog = c
	}
	if log == nil {
		log = zap.NewNop()
	}
	registry, _ := NewRegistry(cfg.Formatters)
	return &Pipeline{
		Parser:      fileblocks.NewParser(cfg.NoiseTokens...),
		Catalog:     catalog,
		Formatter:   registry,
		Concurrency: cfg.Concurrency,
		Log:         log,
	}, nil
}

// NewRegistry turns formatter config into a routing registry. The commands
// are returned too, for preflight checks.
func NewRegistry(formatters []config.Formatter) (*format.Registry, []*format.Command) {
	r := format.NewRegistry()
	cmds := make([]*format.Command, 0, len(formatters))
	for _, f := range formatters {
		c := &format.Command{
			Name:    f.Name,
			Path:    f.Command,
			Args:    f.Args,
			Timeout: f.TimeoutDuration(),
		}
		r.Register(c, f.Extensions...)
		cmds = append(cmds, c)
	}
	return r, cmds
}

// Entries parses the paste and appends the requested preset's files.
// It never fails; an empty result is the caller's to reject.
func (p *Pipeline) Entries(req Request) []fileblocks.FileBlock {
	parser := p.Parser
	if parser == nil {
		parser = fileblocks.NewParser()
	}
	return preset.Merge(parser.Parse(req.Code), p.Catalog, req.Preset)
}

// Run executes the whole pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run_id", id))

	entries := p.Entries(req)
	if len(entries) == 0 {
		log.Info("rejected paste", zap.Error(ErrEmptyInput), zap.Int("input_bytes", len(req.Code)))
		return nil, ErrEmptyInput
	}
	if req.Preset != "" {
		if _, ok := p.Catalog.Lookup(req.Preset); !ok {
			log.Debug("unknown preset ignored", zap.String("preset", req.Preset))
		}
	}

	formatted, stats := format.All(ctx, p.Formatter, log, entries, p.Concurrency)
	log.Debug("formatting done", zap.Int("files", len(formatted)), zap.Int("formatted", stats.Formatted))

	build := p.Build
	if build == nil {
		build = archive.Build
	}
	res, err := build(formatted, archive.Options{Modified: p.Modified})
	if err != nil {
		log.Error("archive build failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrArchiveWrite, err)
	}

	out := &Result{
		ID:       id,
		Filename: archive.DefaultFilename,
		Archive:  res,
		Format:   stats,
		Duration: time.Since(start),
	}
	log.Info("archive built",
		zap.Int("files", res.Report.TotalFiles),
		zap.Int("bytes", res.Report.TotalBytes),
		zap.Int("archive_bytes", len(res.Data)),
		zap.String("digest", res.Digest.String()),
		zap.Duration("duration", out.Duration),
	)
	return out, nil
}
