// Package ui provides the ReelCut desktop application.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/export"
	"github.com/piwi3910/ReelCut/internal/importer"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/planner"
	"github.com/piwi3910/ReelCut/internal/project"
	"github.com/piwi3910/ReelCut/internal/ui/widgets"
)

const maxRecentPlans = 10

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	cfg     model.AppConfig
	cfgPath string
	log     logrus.FieldLogger

	plan     model.Plan
	planPath string
	result   *model.AllocationResult
	history  *History
	journal  cutlog.Store
	planner  *planner.Planner
	theme    *ReelCutTheme
	tabs     *container.AppTabs
	policyUI struct {
		mode  *widget.Select
		limit *widget.Select
	}

	// UI references for dynamic updates
	reelsContainer   *fyne.Container
	cutsContainer    *fyne.Container
	resultContainer  *fyne.Container
	journalContainer *fyne.Container
	notesEntry       *widget.Entry
	nameEntry        *widget.Entry
}

// NewApp creates the application state. The journal is written only by
// the planner, after a fully successful calculation.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, cfgPath string, journal cutlog.Store, log logrus.FieldLogger) *App {
	a := &App{
		window:  window,
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log,
		history: NewHistory(),
		journal: journal,
		planner: planner.New(journal, planner.WithLogger(log)),
		theme:   NewReelCutTheme(cfg.Theme),
	}
	a.plan = a.newPlan()
	application.Settings().SetTheme(a.theme)
	return a
}

func (a *App) newPlan() model.Plan {
	p := model.NewPlan()
	a.cfg.ApplyToPlan(&p)
	return p
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Plan", func() {
			a.pushHistory("New Plan")
			a.plan = a.newPlan()
			a.planPath = ""
			a.result = nil
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Plan...", a.openPlan),
		fyne.NewMenuItem("Save Plan...", a.savePlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Reels (CSV/Excel)...", func() { a.importList(importer.KindReels) }),
		fyne.NewMenuItem("Import Cuts (CSV/Excel)...", func() { a.importList(importer.KindCuts) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Plan Report (PDF)...", func() { a.exportResult(export.FormatPDF) }),
		fyne.NewMenuItem("Export Reel Drawing (DXF)...", func() { a.exportResult(export.FormatDXF) }),
		fyne.NewMenuItem("Export Cut Log (Excel)...", func() { a.exportJournal(export.FormatXLSX) }),
		fyne.NewMenuItem("Export Cable Tags (PDF)...", func() { a.exportJournal(export.FormatTags) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Back Up All Data...", a.backupData),
		fyne.NewMenuItem("Restore Backup...", a.restoreData),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Reels", func() {
			a.pushHistory("Clear Reels")
			a.plan.Reels = []model.Reel{}
			a.refreshReelsList()
		}),
		fyne.NewMenuItem("Clear All Cuts", func() {
			a.pushHistory("Clear Cuts")
			a.plan.Cuts = []model.CutRequest{}
			a.refreshCutsList()
		}),
		fyne.NewMenuItem("Renumber Reels and Cuts", func() {
			a.pushHistory("Renumber")
			a.plan.Renumber()
			a.refreshReelsList()
			a.refreshCutsList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", a.runCalculate),
		fyne.NewMenuItem("Compare Policies", a.showComparison),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Reels from Stock", a.loadStockReels),
		fyne.NewMenuItem("Use Leftovers as Reels", a.carryOverLeftovers),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ReelCut",
		"ReelCut: Cable Reel Cut Planner\n\n"+
			"Allocates cable cuts to reels, longest first, keeping\n"+
			"a permanent journal of every cut that was made.\n\n"+
			fmt.Sprintf("Journal: %s", project.JournalLocation(a.cfg)),
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	reelsTab := container.NewTabItem("Reels", a.buildReelsPanel())
	cutsTab := container.NewTabItem("Cuts", a.buildCutsPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())
	journalTab := container.NewTabItem("Cut Journal", a.buildJournalPanel())
	notesTab := container.NewTabItem("Notes", a.buildNotesPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())

	a.tabs = container.NewAppTabs(reelsTab, cutsTab, resultsTab, journalTab, notesTab, settingsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	toolbar := a.buildToolbar()

	content := container.NewBorder(toolbar, nil, nil, nil, a.tabs)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

func (a *App) refreshAll() {
	a.refreshReelsList()
	a.refreshCutsList()
	a.refreshResults()
	a.refreshPolicySelector()
	a.notesEntry.SetText(a.plan.Notes)
	a.nameEntry.SetText(a.plan.Name)
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.plan, label))
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.plan, "current"))
	if !ok {
		return
	}
	s.Restore(&a.plan)
	a.refreshReelsList()
	a.refreshCutsList()
	a.refreshPolicySelector()
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.plan, "current"))
	if !ok {
		return
	}
	s.Restore(&a.plan)
	a.refreshReelsList()
	a.refreshCutsList()
	a.refreshPolicySelector()
}

// ─── Reels Panel ───────────────────────────────────────────

func (a *App) buildReelsPanel() fyne.CanvasObject {
	a.reelsContainer = container.NewVBox()
	a.refreshReelsList()

	addBtn := widget.NewButtonWithIcon("Add Reel", theme.ContentAddIcon(), func() {
		a.showReelDialog(-1)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Available Reels", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.reelsContainer),
	)
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func (a *App) refreshReelsList() {
	a.reelsContainer.RemoveAll()

	if len(a.plan.Reels) == 0 {
		a.reelsContainer.Add(widget.NewLabel("No reels added yet. Click 'Add Reel' to begin."))
		return
	}

	a.reelsContainer.Add(container.NewGridWithColumns(5,
		boldLabel("Reel #"), boldLabel("Length (m)"), boldLabel("Start Index"), widget.NewLabel(""), widget.NewLabel(""),
	))
	a.reelsContainer.Add(widget.NewSeparator())

	for i := range a.plan.Reels {
		idx := i
		r := a.plan.Reels[idx]
		a.reelsContainer.Add(container.NewGridWithColumns(5,
			widget.NewLabel(fmt.Sprintf("#%d", r.ID)),
			widget.NewLabel(fmt.Sprintf("%.1f", r.Length)),
			widget.NewLabel(fmt.Sprintf("%.1f", r.StartIndex())),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showReelDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.pushHistory("Delete Reel")
				a.plan.Reels = append(a.plan.Reels[:idx], a.plan.Reels[idx+1:]...)
				a.refreshReelsList()
			}),
		))
	}
	a.reelsContainer.Add(widget.NewLabel(fmt.Sprintf("%d of %d reels", len(a.plan.Reels), model.MaxReels)))
}

// showReelDialog adds a reel when idx is negative, otherwise edits it.
func (a *App) showReelDialog(idx int) {
	title, confirm := "Add Reel", "Add"
	length := model.MaxReelLength
	if idx >= 0 {
		title, confirm = "Edit Reel", "Save"
		length = a.plan.Reels[idx].Length
	}

	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Usable metres (max 305)")
	lengthEntry.SetText(strconv.FormatFloat(length, 'f', -1, 64))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Length (m)", lengthEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			l, err := parseMetres(lengthEntry.Text)
			if err != nil || l <= 0 || l > model.MaxReelLength {
				dialog.ShowError(fmt.Errorf("reel length must be greater than 0 and at most %.0fm", model.MaxReelLength), a.window)
				return
			}
			if idx < 0 && len(a.plan.Reels) >= model.MaxReels {
				dialog.ShowError(fmt.Errorf("at most %d reels are supported", model.MaxReels), a.window)
				return
			}
			a.pushHistory(title)
			if idx < 0 {
				a.plan.Reels = append(a.plan.Reels, model.NewReel(a.plan.NextReelID(), l))
			} else {
				a.plan.Reels[idx].Length = l
			}
			a.refreshReelsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(360, 180))
	form.Show()
}

// ─── Cuts Panel ────────────────────────────────────────────

func (a *App) buildCutsPanel() fyne.CanvasObject {
	a.cutsContainer = container.NewVBox()
	a.refreshCutsList()

	addBtn := widget.NewButtonWithIcon("Add Cut", theme.ContentAddIcon(), func() {
		a.showCutDialog(-1)
	})

	return container.NewBorder(
		container.NewHBox(
			boldLabel("Required Cuts"),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.cutsContainer),
	)
}

func (a *App) refreshCutsList() {
	a.cutsContainer.RemoveAll()

	if len(a.plan.Cuts) == 0 {
		a.cutsContainer.Add(widget.NewLabel("No cuts added yet. Click 'Add Cut' to begin."))
		return
	}

	a.cutsContainer.Add(container.NewGridWithColumns(5,
		boldLabel("Cut #"), boldLabel("Cable Name"), boldLabel("Length (m)"), widget.NewLabel(""), widget.NewLabel(""),
	))
	a.cutsContainer.Add(widget.NewSeparator())

	for i := range a.plan.Cuts {
		idx := i
		c := a.plan.Cuts[idx]
		a.cutsContainer.Add(container.NewGridWithColumns(5,
			widget.NewLabel(fmt.Sprintf("#%d", c.ID)),
			widget.NewLabel(c.Name),
			widget.NewLabel(fmt.Sprintf("%.1f", c.Length)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showCutDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.pushHistory("Delete Cut")
				a.plan.Cuts = append(a.plan.Cuts[:idx], a.plan.Cuts[idx+1:]...)
				a.refreshCutsList()
			}),
		))
	}
	est := model.CalculateStockEstimate(a.plan.Reels, a.plan.Cuts)
	a.cutsContainer.Add(widget.NewLabel(fmt.Sprintf(
		"%d of %d cuts, %.1fm requested, %.1fm on the reels", len(a.plan.Cuts), model.MaxCuts, est.TotalRequested, est.TotalAvailable,
	)))
	if est.Shortfall > 0 {
		short := widget.NewLabel(fmt.Sprintf("Short by %.1fm: at least %d more full reels needed", est.Shortfall, est.ExtraReelsMin))
		short.Importance = widget.WarningImportance
		a.cutsContainer.Add(short)
	}
}

// showCutDialog adds a cut when idx is negative, otherwise edits it.
func (a *App) showCutDialog(idx int) {
	title, confirm := "Add Cut", "Add"
	cut := model.NewCutRequest(a.plan.NextCutID(), fmt.Sprintf("Cable %d", a.plan.NextCutID()), 0)
	if idx >= 0 {
		title, confirm = "Edit Cut", "Save"
		cut = a.plan.Cuts[idx]
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(cut.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Length in metres")
	if cut.Length > 0 {
		lengthEntry.SetText(strconv.FormatFloat(cut.Length, 'f', -1, 64))
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Cable Name", nameEntry),
			widget.NewFormItem("Length (m)", lengthEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			l, err := parseMetres(lengthEntry.Text)
			if name == "" || err != nil || l <= 0 {
				dialog.ShowError(fmt.Errorf("a cut needs a name and a length greater than 0"), a.window)
				return
			}
			if idx < 0 && len(a.plan.Cuts) >= model.MaxCuts {
				dialog.ShowError(fmt.Errorf("at most %d cuts are supported", model.MaxCuts), a.window)
				return
			}
			a.pushHistory(title)
			if idx < 0 {
				a.plan.Cuts = append(a.plan.Cuts, model.NewCutRequest(cut.ID, name, l))
			} else {
				a.plan.Cuts[idx].Name = name
				a.plan.Cuts[idx].Length = l
			}
			a.refreshCutsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

func parseMetres(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// ─── Policy ────────────────────────────────────────────────

var limitOptions = func() []string {
	out := make([]string, len(model.StrictLimits))
	for i, l := range model.StrictLimits {
		out[i] = fmt.Sprintf("%dm", l)
	}
	return out
}()

func (a *App) buildPolicySelector() fyne.CanvasObject {
	a.policyUI.limit = widget.NewSelect(limitOptions, func(s string) {
		limit, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
		if err != nil || !a.plan.Policy.IsStrict() || limit == a.plan.Policy.Limit {
			return
		}
		a.pushHistory("Change Limit")
		a.plan.Policy = model.StrictPolicy(limit)
	})

	a.policyUI.mode = widget.NewSelect([]string{"Standard", "Strict"}, func(s string) {
		strict := s == "Strict"
		if strict == a.plan.Policy.IsStrict() {
			return
		}
		a.pushHistory("Change Policy")
		if strict {
			a.plan.Policy = model.StrictPolicy(model.DefaultStrictLimit)
		} else {
			a.plan.Policy = model.StandardPolicy()
		}
		a.refreshPolicySelector()
	})

	a.refreshPolicySelector()
	return container.NewHBox(a.policyUI.mode, a.policyUI.limit)
}

func (a *App) refreshPolicySelector() {
	if a.policyUI.mode == nil {
		return
	}
	if a.plan.Policy.IsStrict() {
		a.policyUI.mode.SetSelected("Strict")
		a.policyUI.limit.SetSelected(fmt.Sprintf("%dm", a.plan.Policy.Limit))
		a.policyUI.limit.Enable()
	} else {
		a.policyUI.mode.SetSelected("Standard")
		a.policyUI.limit.ClearSelected()
		a.policyUI.limit.Disable()
	}
}

// ─── Results ───────────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add reels and cuts, then click Calculate."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderReelResults(a.result, a.plan.Policy))
	a.resultContainer.Refresh()
}

func (a *App) runCalculate() {
	out, err := a.planner.Calculate(context.Background(), a.plan.Reels, a.plan.Cuts, a.plan.Policy)
	if errors.Is(err, engine.ErrInvalidInput) {
		dialog.ShowError(err, a.window)
		return
	}
	// A journal failure still leaves a result worth showing.
	if err != nil {
		dialog.ShowError(err, a.window)
	}

	result := out.Result
	a.result = &result
	a.refreshResults()
	a.refreshJournal()
	a.tabs.SelectIndex(2)

	if len(out.Entries) > 0 {
		dialog.ShowInformation("Cuts Recorded",
			fmt.Sprintf("%d cuts on %d reels were added to the journal.", len(out.Entries), result.ReelsUsed()),
			a.window)
	}
}

func (a *App) showComparison() {
	results, err := engine.CompareScenarios(engine.BuildDefaultScenarios(a.plan.Policy), a.plan.Reels, a.plan.Cuts)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	rows := []fyne.CanvasObject{
		boldLabel("Scenario"), boldLabel("Reels Used"), boldLabel("Leftover"), boldLabel("Efficiency"), boldLabel("Warnings"),
	}
	for _, r := range results {
		rows = append(rows,
			widget.NewLabel(r.Scenario.Name),
			widget.NewLabel(strconv.Itoa(r.ReelsUsed)),
			widget.NewLabel(fmt.Sprintf("%.1fm", r.TotalLeftover)),
			widget.NewLabel(fmt.Sprintf("%.1f%%", r.Efficiency)),
			widget.NewLabel(strconv.Itoa(r.WarningCount)),
		)
	}
	d := dialog.NewCustom("Policy Comparison", "Close", container.NewGridWithColumns(5, rows...), a.window)
	d.Resize(fyne.NewSize(640, 260))
	d.Show()
}

// ─── Stock ─────────────────────────────────────────────────

func (a *App) loadStockReels() {
	stock, err := project.LoadStock(project.DefaultStockPath())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(stock.Reels) == 0 {
		dialog.ShowInformation("Empty Stock", "There are no reels in stock.", a.window)
		return
	}
	a.pushHistory("Load Stock")
	a.plan.Reels = append([]model.Reel{}, stock.Reels...)
	a.refreshReelsList()
	a.tabs.SelectIndex(0)
}

// carryOverLeftovers replaces the plan's reels by what is left of them
// after the last successful calculation.
func (a *App) carryOverLeftovers() {
	if a.result == nil || !a.result.Success {
		dialog.ShowInformation("No Result", "Run a successful calculation first.", a.window)
		return
	}
	a.pushHistory("Use Leftovers")
	a.plan.Reels = model.CarryOverReels(*a.result)
	a.plan.Cuts = []model.CutRequest{}
	a.result = nil
	a.refreshAll()
	a.tabs.SelectIndex(0)
}

// ─── Journal ───────────────────────────────────────────────

func (a *App) buildJournalPanel() fyne.CanvasObject {
	a.journalContainer = container.NewVBox()
	a.refreshJournal()

	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), a.refreshJournal)
	exportBtn := widget.NewButtonWithIcon("Export Excel", theme.DocumentSaveIcon(), func() {
		a.exportJournal(export.FormatXLSX)
	})
	tagsBtn := widget.NewButtonWithIcon("Cable Tags", theme.DocumentPrintIcon(), func() {
		a.exportJournal(export.FormatTags)
	})
	clearBtn := widget.NewButtonWithIcon("Clear Journal", theme.DeleteIcon(), a.confirmClearJournal)
	clearBtn.Importance = widget.DangerImportance

	return container.NewBorder(
		container.NewHBox(boldLabel("Cut Journal (newest first)"), layout.NewSpacer(), refreshBtn, exportBtn, tagsBtn, clearBtn),
		nil, nil, nil,
		container.NewVScroll(a.journalContainer),
	)
}

func (a *App) confirmClearJournal() {
	dialog.ShowConfirm("Clear Journal",
		"Delete every recorded cut? This cannot be undone.\nBack up your data first if you may need it.",
		func(ok bool) {
			if ok {
				a.clearJournal()
			}
		}, a.window)
}

func (a *App) clearJournal() {
	if err := a.journal.Clear(context.Background()); err != nil {
		a.log.WithError(err).Error("failed to clear journal")
		dialog.ShowError(err, a.window)
		return
	}
	a.log.Info("journal cleared")
	a.refreshJournal()
}

func (a *App) refreshJournal() {
	a.journalContainer.RemoveAll()

	entries, err := a.journal.List(context.Background())
	if err != nil {
		a.log.WithError(err).Error("failed to read journal")
		a.journalContainer.Add(widget.NewLabel("Failed to read the journal: " + err.Error()))
		return
	}
	if len(entries) == 0 {
		a.journalContainer.Add(widget.NewLabel("No cuts recorded yet."))
		return
	}

	summary := cutlog.Summarize(entries)
	a.journalContainer.Add(boldLabel(fmt.Sprintf("%d cuts, %.1fm in total", summary.TotalCuts, summary.TotalLength)))
	a.journalContainer.Add(container.NewGridWithColumns(6,
		boldLabel("Cut At"), boldLabel("Reel #"), boldLabel("Cable Name"), boldLabel("Length (m)"), boldLabel("Start"), boldLabel("End"),
	))
	a.journalContainer.Add(widget.NewSeparator())
	for _, e := range cutlog.NewestFirst(entries) {
		a.journalContainer.Add(container.NewGridWithColumns(6,
			widget.NewLabel(e.Timestamp.Local().Format("2006-01-02 15:04")),
			widget.NewLabel(fmt.Sprintf("#%d", e.ReelID)),
			widget.NewLabel(e.Name),
			widget.NewLabel(fmt.Sprintf("%.1f", e.Length)),
			widget.NewLabel(fmt.Sprintf("%.1f", e.StartIndex)),
			widget.NewLabel(fmt.Sprintf("%.1f", e.EndIndex)),
		))
	}
}

// ─── Notes ─────────────────────────────────────────────────

func (a *App) buildNotesPanel() fyne.CanvasObject {
	a.notesEntry = widget.NewMultiLineEntry()
	a.notesEntry.SetPlaceHolder("Design notes for this plan (saved with the plan file)")
	a.notesEntry.Wrapping = fyne.TextWrapWord
	a.notesEntry.SetText(a.plan.Notes)
	a.notesEntry.OnChanged = func(s string) {
		a.plan.Notes = s
	}

	a.nameEntry = widget.NewEntry()
	a.nameEntry.SetText(a.plan.Name)
	a.nameEntry.OnChanged = func(s string) {
		a.plan.Name = s
	}

	return container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Plan name:"), nil, a.nameEntry),
		nil, nil, nil,
		a.notesEntry,
	)
}

// ─── Settings ──────────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, nil)
	themeSelect.SetSelected(a.cfg.Theme)

	defaultMode := widget.NewSelect([]string{string(model.PolicyStandard), string(model.PolicyStrict)}, nil)
	defaultMode.SetSelected(string(a.cfg.DefaultPolicy().Mode))

	defaultLimit := widget.NewSelect(limitOptions, nil)
	defaultLimit.SetSelected(fmt.Sprintf("%dm", a.cfg.DefaultPolicy().Limit))
	if !a.cfg.DefaultPolicy().IsStrict() {
		defaultLimit.SetSelected(fmt.Sprintf("%dm", model.DefaultStrictLimit))
	}

	exportDir := widget.NewEntry()
	exportDir.SetText(a.cfg.ExportDir)

	form := widget.NewForm(
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Default policy", defaultMode),
		widget.NewFormItem("Default strict limit", defaultLimit),
		widget.NewFormItem("Export directory", exportDir),
		widget.NewFormItem("Journal", widget.NewLabel(fmt.Sprintf("%s (%s)", project.JournalLocation(a.cfg), a.cfg.JournalBackend))),
	)
	form.SubmitText = "Save Settings"
	form.OnSubmit = func() {
		a.cfg.Theme = themeSelect.Selected
		a.cfg.DefaultMode = model.PolicyMode(defaultMode.Selected)
		if limit, err := strconv.Atoi(strings.TrimSuffix(defaultLimit.Selected, "m")); err == nil {
			a.cfg.DefaultLimit = limit
		}
		a.cfg.ExportDir = exportDir.Text
		a.saveConfig()
		a.theme.SetVariantName(a.cfg.Theme)
		fyne.CurrentApp().Settings().SetTheme(a.theme)
	}

	return container.NewVBox(boldLabel("Preferences"), form)
}

func (a *App) saveConfig() {
	if err := project.SaveAppConfig(a.cfgPath, a.cfg); err != nil {
		a.log.WithError(err).Error("failed to save configuration")
		dialog.ShowError(err, a.window)
	}
}

// ─── Files ─────────────────────────────────────────────────

func (a *App) savePlan() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SavePlan(path, a.plan); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.planPath = path
		a.cfg.AddRecentPlan(path, maxRecentPlans)
		a.saveConfig()
	}, a.window)
	d.SetFileName(a.plan.Name + project.PlanExtension)
	d.Show()
}

func (a *App) openPlan() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		plan, err := project.LoadPlan(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.history.Clear()
		a.plan = plan
		a.planPath = path
		a.result = nil
		a.cfg.AddRecentPlan(path, maxRecentPlans)
		a.saveConfig()
		a.refreshAll()
	}, a.window)
	d.Show()
}

func (a *App) importList(kind importer.Kind) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(kind, importer.ImportFile(reader.URI().Path(), kind))
	}, a.window)
}

func (a *App) handleImportResult(kind importer.Kind, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")), a.window)
		return
	}
	for _, w := range result.Warnings {
		a.log.WithField("kind", kind.String()).Warn(w)
	}

	var n int
	a.pushHistory("Import " + kind.String())
	switch kind {
	case importer.KindReels:
		a.plan.Reels = result.Reels
		n = len(result.Reels)
		a.refreshReelsList()
	case importer.KindCuts:
		a.plan.Cuts = result.Cuts
		n = len(result.Cuts)
		a.refreshCutsList()
	}

	msg := fmt.Sprintf("Imported %d %s.", n, kind)
	if len(result.Warnings) > 0 {
		msg += "\n\n" + strings.Join(result.Warnings, "\n")
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) exportResult(f export.Format) {
	if a.result == nil {
		dialog.ShowInformation("No results", "Run a calculation before exporting.", a.window)
		return
	}
	result := *a.result
	a.saveExport(export.FileName(f, time.Now()), func(path string) error {
		if f == export.FormatDXF {
			return export.ExportReelDXF(path, result)
		}
		return export.ExportPlanPDF(path, result, export.PlanReport{
			Title:       a.plan.Name,
			Policy:      a.plan.Policy,
			GeneratedAt: time.Now(),
		})
	})
}

func (a *App) exportJournal(f export.Format) {
	entries, err := a.journal.List(context.Background())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(entries) == 0 {
		dialog.ShowInformation("Empty Journal", "No cuts have been recorded yet.", a.window)
		return
	}
	a.saveExport(export.FileName(f, time.Now()), func(path string) error {
		if f == export.FormatTags {
			return export.ExportTags(path, entries)
		}
		return export.ExportJournalXLSX(path, entries)
	})
}

func (a *App) saveExport(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.log.WithError(err).WithField("path", path).Error("export failed")
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) backupData() {
	entries, err := a.journal.List(context.Background())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	plan := a.plan
	a.saveExport(fmt.Sprintf("reelcut_backup_%s.json", time.Now().Format("2006-01-02")), func(path string) error {
		return project.ExportAllData(path, a.cfg, &plan, entries)
	})
}

// restoreData appends the backed up journal entries and loads the backed
// up plan. Configuration is left alone.
func (a *App) restoreData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if len(data.Journal) > 0 {
			if err := a.journal.Append(context.Background(), data.Journal); err != nil {
				dialog.ShowError(fmt.Errorf("failed to restore journal: %w", err), a.window)
				return
			}
		}
		if data.Plan != nil {
			a.pushHistory("Restore Backup")
			a.plan = *data.Plan
			a.result = nil
			a.refreshAll()
		}
		a.refreshJournal()
		dialog.ShowInformation("Restore Complete",
			fmt.Sprintf("Restored %d journal entries.", len(data.Journal)), a.window)
	}, a.window)
}
