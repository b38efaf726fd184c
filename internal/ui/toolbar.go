package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

type toolbarAction struct {
	icon fyne.Resource
	tip  string
	run  func()
}

// toolButton is an icon-only button with a hover tooltip. Tooltips only
// show when the window content is wrapped by fynetooltip.AddWindowToolTipLayer.
func toolButton(act toolbarAction) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", act.icon, act.run)
	btn.SetToolTip(act.tip)
	return btn
}

// buildToolbar lays out plan editing actions on the left, the policy
// selector in the middle and Calculate on the right.
func (a *App) buildToolbar() fyne.CanvasObject {
	left := []toolbarAction{
		{theme.FolderOpenIcon(), "Open plan", a.openPlan},
		{theme.DocumentSaveIcon(), "Save plan", a.savePlan},
		{theme.ContentUndoIcon(), "Undo", a.undo},
		{theme.ContentRedoIcon(), "Redo", a.redo},
		{theme.StorageIcon(), "Load reels from stock", a.loadStockReels},
	}

	items := make([]fyne.CanvasObject, 0, len(left)+5)
	for _, act := range left {
		items = append(items, toolButton(act))
	}
	items = append(items,
		widget.NewSeparator(),
		widget.NewLabel("Policy:"),
		a.buildPolicySelector(),
		layout.NewSpacer(),
		toolButton(toolbarAction{theme.MediaPlayIcon(), "Calculate and record the cuts", a.runCalculate}),
	)
	return container.NewHBox(items...)
}
