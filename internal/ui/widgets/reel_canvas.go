package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/model"
)

// Cut colors, cycled per reel.
var cutColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 220},  // green
	{R: 33, G: 150, B: 243, A: 220}, // blue
	{R: 255, G: 152, B: 0, A: 220},  // orange
	{R: 156, G: 39, B: 176, A: 220}, // purple
	{R: 0, G: 188, B: 212, A: 220},  // cyan
	{R: 255, G: 235, B: 59, A: 220}, // yellow
	{R: 121, G: 85, B: 72, A: 220},  // brown
}

var (
	consumedColor = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
	leftoverColor = color.NRGBA{R: 210, G: 180, B: 140, A: 255}
	normalBorder  = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	warnBorder    = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
)

// ReelCanvas draws one reel as a horizontal strip of MaxReelLength metres:
// the stock consumed before the run, each assigned cut, and the leftover.
type ReelCanvas struct {
	widget.BaseWidget
	before   model.Reel
	alloc    model.ReelAllocation
	warned   bool
	maxWidth float32
	height   float32
}

func NewReelCanvas(before model.Reel, alloc model.ReelAllocation, warned bool, maxW, h float32) *ReelCanvas {
	rc := &ReelCanvas{
		before:   before,
		alloc:    alloc,
		warned:   warned,
		maxWidth: maxW,
		height:   h,
	}
	rc.ExtendBaseWidget(rc)
	return rc
}

func (rc *ReelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newReelCanvasRenderer(rc)
}

type reelCanvasRenderer struct {
	rc      *ReelCanvas
	objects []fyne.CanvasObject
}

func newReelCanvasRenderer(rc *ReelCanvas) *reelCanvasRenderer {
	r := &reelCanvasRenderer{rc: rc}
	r.rebuild()
	return r
}

func (r *reelCanvasRenderer) rebuild() {
	r.objects = nil
	rc := r.rc
	scale := rc.maxWidth / float32(model.MaxReelLength)
	h := rc.height

	bg := canvas.NewRectangle(leftoverColor)
	bg.Resize(fyne.NewSize(rc.maxWidth, h))
	r.objects = append(r.objects, bg)

	consumed := float32(rc.before.StartIndex()) * scale
	if consumed > 0 {
		c := canvas.NewRectangle(consumedColor)
		c.Resize(fyne.NewSize(consumed, h))
		r.objects = append(r.objects, c)
	}

	for i, cut := range rc.alloc.AssignedCuts {
		x := float32(cut.StartIndex) * scale
		w := float32(cut.Span()) * scale

		rect := canvas.NewRectangle(cutColors[i%len(cutColors)])
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(fyne.NewPos(x, 0))
		r.objects = append(r.objects, rect)

		// Label only if the segment is wide enough
		if w > 40 {
			label := canvas.NewText(fmt.Sprintf("%s %.1fm", cut.Name, cut.Length), color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(x+3, h/2-7))
			r.objects = append(r.objects, label)
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = normalBorder
	border.StrokeWidth = 1
	if rc.warned {
		border.StrokeColor = warnBorder
		border.StrokeWidth = 3
	}
	border.Resize(fyne.NewSize(rc.maxWidth, h))
	r.objects = append(r.objects, border)
}

func (r *reelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *reelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *reelCanvasRenderer) Destroy()                     {}
func (r *reelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *reelCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.rc.maxWidth, r.rc.height)
}

// RenderReelResults creates a scrollable view of an allocation result: one
// strip per reel, then warnings, unallocated cuts and a summary line.
func RenderReelResults(result *model.AllocationResult, policy model.Policy) fyne.CanvasObject {
	if result == nil || len(result.Allocations) == 0 {
		return widget.NewLabel("No results yet. Add reels and cuts, then click Calculate.")
	}

	warned := make(map[int]bool)
	for _, a := range engine.ViolatingReels(*result, policy) {
		warned[a.ReelID] = true
	}

	var items []fyne.CanvasObject
	if !result.Success {
		status := widget.NewLabel(fmt.Sprintf(
			"Could not place %d cuts. Nothing was recorded in the journal.",
			len(result.UnallocatedCuts),
		))
		status.Importance = widget.DangerImportance
		items = append(items, status, widget.NewSeparator())
	}

	for _, a := range result.Allocations {
		before, _ := result.ReelBefore(a.ReelID)
		header := widget.NewLabel(fmt.Sprintf(
			"Reel #%d: %.1fm before, %d cuts, next start %.1f, %.1fm left",
			a.ReelID, before.Length, len(a.AssignedCuts), a.NewStartIndex, a.Remaining,
		))
		header.TextStyle = fyne.TextStyle{Bold: true}
		if warned[a.ReelID] {
			header.Importance = widget.WarningImportance
		}
		items = append(items, header, NewReelCanvas(before, a, warned[a.ReelID], 700, 28))
	}

	if len(result.Warnings) > 0 {
		items = append(items, widget.NewSeparator())
		for _, msg := range result.Warnings {
			w := widget.NewLabel(msg)
			w.Importance = widget.WarningImportance
			items = append(items, w)
		}
	}

	if len(result.UnallocatedCuts) > 0 {
		items = append(items, widget.NewSeparator())
		header := widget.NewLabel("Unallocated cuts:")
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header)
		for _, c := range result.UnallocatedCuts {
			items = append(items, widget.NewLabel(fmt.Sprintf("  #%d %s (%.1fm)", c.ID, c.Name, c.Length)))
		}
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d reels used, %d cuts placed, %.1fm left over, %.1f%% efficiency",
		result.ReelsUsed(), result.PlacedCount(), result.TotalLeftover(), result.Efficiency(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, widget.NewSeparator(), summary)

	return container.NewVScroll(container.NewVBox(items...))
}
