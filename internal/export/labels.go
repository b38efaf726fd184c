package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ReelCut/internal/model"
)

// TagInfo holds the data encoded into each cable tag's QR code.
type TagInfo struct {
	EntryID    string  `json:"id"`
	BatchID    string  `json:"batch"`
	Name       string  `json:"name"`
	Length     float64 `json:"length_m"`
	ReelID     int     `json:"reel"`
	StartIndex float64 `json:"start"`
	EndIndex   float64 `json:"end"`
	CutAt      string  `json:"cut_at"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectTagInfos builds one tag per journal entry, in entry order.
func CollectTagInfos(entries []model.CutLogEntry) []TagInfo {
	tags := make([]TagInfo, 0, len(entries))
	for _, e := range entries {
		tags = append(tags, TagInfo{
			EntryID:    e.ID,
			BatchID:    e.BatchID,
			Name:       e.Name,
			Length:     e.Length,
			ReelID:     e.ReelID,
			StartIndex: e.StartIndex,
			EndIndex:   e.EndIndex,
			CutAt:      e.Timestamp.Format("2006-01-02 15:04"),
		})
	}
	return tags
}

// ExportTags generates a PDF of QR-coded cable tags, one per journal entry.
// Each tag shows the cut name, its length and where on which reel it was
// taken, plus a QR code with the same data as JSON. Tags are laid out on a
// standard label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportTags(path string, entries []model.CutLogEntry) error {
	tags := CollectTagInfos(entries)
	if len(tags) == 0 {
		return fmt.Errorf("no cuts to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, i, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, index int, info TagInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Image names must be unique within the document.
	imgName := fmt.Sprintf("qr_%d_%s", index, info.EntryID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.1f m", info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Reel #%d @ %.1f-%.1f", info.ReelID, info.StartIndex, info.EndIndex), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, info.CutAt, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+16)
	pdf.CellFormat(textW, 3, truncateToWidth(pdf, info.EntryID, textW), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

func truncateToWidth(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
