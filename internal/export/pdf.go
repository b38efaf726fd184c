// Package export writes allocation results and the cut journal to
// workbook, PDF, label and drawing formats.
package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/model"
)

// cutColor represents an RGB color for an allocated cut.
type cutColor struct {
	R, G, B int
}

// cutColors mirrors the color scheme used in the UI reel bars.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 10.0

	reelLabelWidth = 28.0
	barHeight      = 7.0
	barGap         = 7.0
	reelsPerPage   = 9
)

// PlanReport carries what the PDF report shows besides the result itself.
type PlanReport struct {
	Title       string
	Policy      model.Policy
	GeneratedAt time.Time
}

// ExportPlanPDF renders an allocation result as a PDF. Each reel is drawn
// as a bar along the 305m scale with the consumed section, every cut span
// and the leftover, followed by a summary page with statistics, policy
// warnings and unallocated cuts.
func ExportPlanPDF(path string, result model.AllocationResult, report PlanReport) error {
	if len(result.Allocations) == 0 {
		return fmt.Errorf("no reels to export")
	}
	if report.Title == "" {
		report.Title = "Cable Cut Plan"
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(report.Title, true)

	pages := (len(result.Allocations) + reelsPerPage - 1) / reelsPerPage
	for page := 0; page < pages; page++ {
		pdf.AddPage()
		from := page * reelsPerPage
		to := from + reelsPerPage
		if to > len(result.Allocations) {
			to = len(result.Allocations)
		}
		renderReelPage(pdf, result, report, result.Allocations[from:to], page+1, pages)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, report)

	return pdf.OutputFileAndClose(path)
}

// renderReelPage draws a page of reel bars.
func renderReelPage(pdf *fpdf.Fpdf, result model.AllocationResult, report PlanReport, allocations []model.ReelAllocation, page, pages int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (page %d of %d)", report.Title, page, pages)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Policy: %s | Reels used: %d | Cuts placed: %d | Efficiency: %.1f%%",
		report.Policy, result.ReelsUsed(), result.PlacedCount(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	barLeft := marginLeft + reelLabelWidth
	barWidth := pageWidth - marginRight - barLeft
	scale := barWidth / model.MaxReelLength

	drawScale(pdf, barLeft, drawAreaTop-4, scale)

	warned := warnedReels(result, report.Policy)
	y := drawAreaTop
	for _, a := range allocations {
		drawReelBar(pdf, result, a, barLeft, y, scale, warned[a.ReelID])
		y += barHeight + barGap
	}
}

// drawScale prints metre marks above the bars every 50m.
func drawScale(pdf *fpdf.Fpdf, left, y, scale float64) {
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.1)
	for m := 0.0; m <= model.MaxReelLength; m += 50 {
		x := left + m*scale
		pdf.Line(x, y+2.5, x, y+3.5)
		label := fmt.Sprintf("%.0f", m)
		w := pdf.GetStringWidth(label)
		pdf.SetXY(x-w/2, y)
		pdf.CellFormat(w, 2.5, label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawReelBar draws one reel: grey for stock consumed before the run, a
// coloured block per cut and tan for the leftover.
func drawReelBar(pdf *fpdf.Fpdf, result model.AllocationResult, a model.ReelAllocation, left, y, scale float64, warned bool) {
	before, _ := result.ReelBefore(a.ReelID)

	pdf.SetFont("Helvetica", "B", 9)
	if warned {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(reelLabelWidth-2, barHeight/2, fmt.Sprintf("Reel #%d", a.ReelID), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft, y+barHeight/2)
	pdf.CellFormat(reelLabelWidth-2, barHeight/2, fmt.Sprintf("%.1fm / %.1fm", a.Remaining, before.Length), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(60, 60, 60)

	if consumed := before.StartIndex(); consumed > 0 {
		pdf.SetFillColor(200, 200, 200)
		pdf.Rect(left, y, consumed*scale, barHeight, "FD")
	}

	for i, c := range a.AssignedCuts {
		col := cutColors[i%len(cutColors)]
		x := left + c.StartIndex*scale
		w := c.Span() * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y, w, barHeight, "FD")

		if w > 12 {
			pdf.SetFont("Helvetica", "", labelFontSize(w))
			text := c.Name
			for len(text) > 0 && pdf.GetStringWidth(text) > w-1 {
				text = text[:len(text)-1]
			}
			pdf.SetXY(x, y+1)
			pdf.CellFormat(w, barHeight/2-1, text, "", 0, "C", false, 0, "")
			pdf.SetXY(x, y+barHeight/2)
			pdf.CellFormat(w, barHeight/2, fmt.Sprintf("%.1fm", c.Length), "", 0, "C", false, 0, "")
		}
	}

	if a.Remaining > model.Epsilon {
		x := left + a.NewStartIndex*scale
		pdf.SetFillColor(210, 180, 140)
		if warned {
			pdf.SetDrawColor(200, 0, 0)
		}
		pdf.Rect(x, y, a.Remaining*scale, barHeight, "FD")
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.AllocationResult, report PlanReport) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	status := "All cuts placed"
	if !result.Success {
		status = fmt.Sprintf("%d cuts could not be placed", len(result.UnallocatedCuts))
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Status", status},
		{"Policy", report.Policy.String()},
		{"Reels Used", fmt.Sprintf("%d of %d", result.ReelsUsed(), len(result.Allocations))},
		{"Cuts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Leftover on Used Reels", fmt.Sprintf("%.1f m", result.TotalLeftover())},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Reel Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 30, 25, 35, 35, 30}
	headers := []string{"Reel", "Length Before", "Cuts", "Start Index", "Next Start", "Remaining"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, a := range result.Allocations {
		before, _ := result.ReelBefore(a.ReelID)
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("#%d", a.ReelID),
			fmt.Sprintf("%.1f m", before.Length),
			fmt.Sprintf("%d", len(a.AssignedCuts)),
			fmt.Sprintf("%.1f", before.StartIndex()),
			fmt.Sprintf("%.1f", a.NewStartIndex),
			fmt.Sprintf("%.1f m", a.Remaining),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
	}

	if len(result.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 100, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Policy Warnings", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range result.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if len(result.UnallocatedCuts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unallocated Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range result.UnallocatedCuts {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- #%d %s: %.1f m", c.ID, c.Name, c.Length), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by ReelCut on %s", report.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
}

// warnedReels returns the ids of reels the policy flags.
func warnedReels(result model.AllocationResult, policy model.Policy) map[int]bool {
	warned := make(map[int]bool)
	for _, a := range engine.ViolatingReels(result, policy) {
		warned[a.ReelID] = true
	}
	return warned
}

// labelFontSize returns an appropriate font size for a cut block width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 7
	case w > 20:
		return 6
	default:
		return 5
	}
}
