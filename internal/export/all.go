package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/ReelCut/internal/model"
)

// Format names an export target.
type Format string

const (
	FormatXLSX Format = "xlsx" // cut journal workbook
	FormatTags Format = "tags" // QR cable tags for the journal
	FormatPDF  Format = "pdf"  // plan report
	FormatDXF  Format = "dxf"  // reel strip drawing
)

// AllFormats lists every format in the order files are reported.
var AllFormats = []Format{FormatXLSX, FormatTags, FormatPDF, FormatDXF}

// ParseFormats converts names such as "xlsx,pdf" into formats. "all"
// selects every format. Duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var out []Format
	add := func(f Format) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch Format(name) {
			case "":
			case "all":
				for _, f := range AllFormats {
					add(f)
				}
			case FormatXLSX, FormatTags, FormatPDF, FormatDXF:
				add(Format(name))
			default:
				return nil, fmt.Errorf("unknown export format %q", name)
			}
		}
	}
	return out, nil
}

// Bundle is the data ExportAll renders. Journal formats need Entries;
// plan formats need Result.
type Bundle struct {
	Entries []model.CutLogEntry
	Result  *model.AllocationResult
	Report  PlanReport
	Now     time.Time
}

// FileName returns the file name a format is written to for an export made at now.
func FileName(f Format, now time.Time) string {
	stamp := now.Format("2006-01-02_15-04")
	switch f {
	case FormatXLSX:
		return TimestampedFileName(now)
	case FormatTags:
		return fmt.Sprintf("cut_tags_%s.pdf", stamp)
	case FormatPDF:
		return fmt.Sprintf("cut_plan_%s.pdf", stamp)
	case FormatDXF:
		return fmt.Sprintf("reels_%s.dxf", stamp)
	}
	return fmt.Sprintf("export_%s", stamp)
}

// ExportAll renders the requested formats into dir concurrently and
// returns the written paths in the order the formats were given. The first
// failure cancels the remaining renderers.
func ExportAll(ctx context.Context, dir string, b Bundle, formats []Format) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("no export formats selected")
	}
	if b.Now.IsZero() {
		b.Now = time.Now()
	}
	for _, f := range formats {
		if (f == FormatPDF || f == FormatDXF) && b.Result == nil {
			return nil, fmt.Errorf("%s export needs a calculation result", f)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := filepath.Join(dir, FileName(f, b.Now))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := render(f, path, b); err != nil {
				return fmt.Errorf("%s export: %w", f, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func render(f Format, path string, b Bundle) error {
	switch f {
	case FormatXLSX:
		return ExportJournalXLSX(path, b.Entries)
	case FormatTags:
		return ExportTags(path, b.Entries)
	case FormatPDF:
		report := b.Report
		if report.GeneratedAt.IsZero() {
			report.GeneratedAt = b.Now
		}
		return ExportPlanPDF(path, *b.Result, report)
	case FormatDXF:
		return ExportReelDXF(path, *b.Result)
	}
	return fmt.Errorf("unknown export format %q", f)
}
