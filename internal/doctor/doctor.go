package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/jorge-barreto/monozip/internal/config"
	"github.com/jorge-barreto/monozip/internal/fileblocks"
	"github.com/jorge-barreto/monozip/internal/format"
	"github.com/jorge-barreto/monozip/internal/preset"
	"github.com/jorge-barreto/monozip/internal/ux"
)

// ErrUnhealthy is returned by Run when at least one check failed.
var ErrUnhealthy = errors.New("doctor found problems")

// smokeTimeout caps each formatter smoke test, overriding longer config timeouts.
const smokeTimeout = 15 * time.Second

var samples = map[string]string{
	"ts":  "const a:number=1",
	"tsx": "export const A=()=><div/>",
	"js":  "const a=1",
	"jsx": "export const A=()=><div/>",
	"rs":  "fn main(){}",
}

// Check is the outcome of one diagnostic.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// OK reports whether the check passed.
func (c Check) OK() bool { return c.Err == nil }

// Diagnose runs every check against cfg: the preset catalog loads, each
// formatter binary is on PATH, and each formatter with a known sample
// language formats it. When the catalog loads, a coverage line shows which
// formatter handles each preset language.
func Diagnose(ctx context.Context, cfg *config.Config) []Check {
	cat, check := checkCatalog(cfg.Presets)
	checks := []Check{check}
	if cat != nil {
		checks = append(checks, checkCoverage(cfg, cat))
	}
	for _, f := range cfg.Formatters {
		checks = append(checks, checkFormatter(ctx, f)...)
	}
	return checks
}

func checkCatalog(path string) (*preset.Catalog, Check) {
	c := Check{Name: "presets"}
	if path == "" {
		cat := preset.Default()
		c.Detail = fmt.Sprintf("built-in catalog, %d presets", len(cat.All()))
		return cat, c
	}
	cat, err := preset.LoadFile(path)
	if err != nil {
		c.Err = err
		return nil, c
	}
	c.Detail = fmt.Sprintf("%s, %d presets", path, len(cat.All()))
	return cat, c
}

// checkCoverage is informational: unformatted languages are archived as-is.
func checkCoverage(cfg *config.Config, cat *preset.Catalog) Check {
	seen := make(map[string]bool)
	var parts []string
	for _, p := range cat.All() {
		for _, path := range p.Paths() {
			lang := fileblocks.LanguageTag(path)
			if lang == "" || seen[lang] {
				continue
			}
			seen[lang] = true
			if f, ok := cfg.FormatterFor(lang); ok {
				parts = append(parts, lang+": "+f.Name)
			} else {
				parts = append(parts, lang+": unformatted")
			}
		}
	}
	sort.Strings(parts)
	return Check{Name: "preset languages", Detail: strings.Join(parts, ", ")}
}

func checkFormatter(ctx context.Context, f config.Formatter) []Check {
	found := Check{Name: f.Name}
	bin, err := exec.LookPath(f.Command)
	if err != nil {
		found.Err = fmt.Errorf("%s not found in PATH", f.Command)
		return []Check{found}
	}
	found.Detail = bin
	out := []Check{found}

	lang, sample := sampleFor(f.Extensions)
	if sample == "" {
		return out
	}
	cmd := &format.Command{Name: f.Name, Path: f.Command, Args: f.Args, Timeout: f.TimeoutDuration()}
	if cmd.Timeout <= 0 || cmd.Timeout > smokeTimeout {
		cmd.Timeout = smokeTimeout
	}
	smoke := Check{Name: f.Name + " (" + lang + ")"}
	start := time.Now()
	if _, err := cmd.Format(ctx, lang, sample); err != nil {
		smoke.Err = err
	} else {
		smoke.Detail = fmt.Sprintf("formatted sample in %dms", time.Since(start).Milliseconds())
	}
	return append(out, smoke)
}

func sampleFor(exts []string) (string, string) {
	for _, e := range exts {
		if s, ok := samples[e]; ok {
			return e, s
		}
	}
	return "", ""
}

// Print writes one line per check.
func Print(w io.Writer, checks []Check) {
	fmt.Fprintf(w, "\n%s%s══ Doctor ══%s\n\n", ux.Bold, ux.Cyan, ux.Reset)
	for _, c := range checks {
		if c.OK() {
			fmt.Fprintf(w, "  %s✓%s %-24s %s%s%s\n", ux.Green, ux.Reset, c.Name, ux.Dim, c.Detail, ux.Reset)
			continue
		}
		msg := strings.TrimSpace(c.Err.Error())
		fmt.Fprintf(w, "  %s✗%s %-24s %s\n", ux.Red, ux.Reset, c.Name, msg)
	}
	fmt.Fprintln(w)
}

// Run diagnoses cfg, prints the results to w, and returns ErrUnhealthy if
// any check failed. Files are still archived when a formatter is broken;
// they are just left unformatted.
func Run(ctx context.Context, cfg *config.Config, w io.Writer) error {
	checks := Diagnose(ctx, cfg)
	Print(w, checks)
	for _, c := range checks {
		if !c.OK() {
			return ErrUnhealthy
		}
	}
	return nil
}
