package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/ReelCut/internal/model"
)

// Strip drawing geometry in drawing units (1 unit = 1 metre along the reel).
const (
	stripHeight  = 4.0
	stripPitch   = 8.0
	dxfTextSize  = 1.2
	dxfLabelGap  = 0.6
	scaleLayer   = "SCALE"
	reelLayerFmt = "REEL_%d"
)

// ReelLayerName returns the DXF layer that holds a reel's geometry.
func ReelLayerName(reelID int) string {
	return fmt.Sprintf(reelLayerFmt, reelID)
}

// ExportReelDXF draws every reel of a result as a 305-unit strip, one layer
// per reel. Each strip shows the start of usable stock, a divider at every
// cut boundary with the cut name above it, and the leftover.
func ExportReelDXF(path string, result model.AllocationResult) error {
	if len(result.Allocations) == 0 {
		return fmt.Errorf("no reels to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(scaleLayer, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add scale layer: %w", err)
	}
	bottom := -float64(len(result.Allocations)-1)*stripPitch - stripHeight
	for m := 0.0; m <= model.MaxReelLength; m += 50 {
		if _, err := d.Line(m, stripHeight+dxfLabelGap, 0, m, bottom-dxfLabelGap, 0); err != nil {
			return err
		}
		if _, err := d.Text(fmt.Sprintf("%.0f", m), m, stripHeight+2*dxfLabelGap, 0, dxfTextSize); err != nil {
			return err
		}
	}

	for i, a := range result.Allocations {
		layerColor := color.Green
		if len(a.AssignedCuts) == 0 {
			layerColor = color.Cyan
		}
		if _, err := d.AddLayer(ReelLayerName(a.ReelID), layerColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer for reel #%d: %w", a.ReelID, err)
		}
		if err := drawReelStrip(d, result, a, -float64(i)*stripPitch); err != nil {
			return fmt.Errorf("reel #%d: %w", a.ReelID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func drawReelStrip(d *drawing.Drawing, result model.AllocationResult, a model.ReelAllocation, y float64) error {
	before, _ := result.ReelBefore(a.ReelID)
	top := y + stripHeight

	if err := rect(d, 0, y, model.MaxReelLength, top); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("Reel #%d (%.1fm)", a.ReelID, before.Length), -40, y+stripHeight/2, 0, dxfTextSize); err != nil {
		return err
	}

	start := before.StartIndex()
	if start > model.Epsilon {
		if _, err := d.Line(start, y, 0, start, top, 0); err != nil {
			return err
		}
	}

	for _, c := range a.AssignedCuts {
		if _, err := d.Line(c.EndIndex, y, 0, c.EndIndex, top, 0); err != nil {
			return err
		}
		label := fmt.Sprintf("%s %.1fm", c.Name, c.Length)
		if _, err := d.Text(label, c.StartIndex+dxfLabelGap, y+dxfLabelGap, 0, dxfTextSize); err != nil {
			return err
		}
	}

	if a.Remaining > model.Epsilon {
		label := fmt.Sprintf("left %.1fm", a.Remaining)
		if _, err := d.Text(label, a.NewStartIndex+dxfLabelGap, top-dxfTextSize-dxfLabelGap, 0, dxfTextSize); err != nil {
			return err
		}
	}
	return nil
}

// rect draws an axis-aligned rectangle as four lines.
func rect(d *drawing.Drawing, x1, y1, x2, y2 float64) error {
	edges := [][4]float64{
		{x1, y1, x2, y1},
		{x2, y1, x2, y2},
		{x2, y2, x1, y2},
		{x1, y2, x1, y1},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}
	return nil
}
