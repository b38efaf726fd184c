// ReelCut desktop: plan cable cuts across reels and keep a cut journal.
//
// Build:
//   go build -o reelcut-desktop ./cmd/reelcut-desktop
//
// Using fyne-cross for packaging:
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64
package main

import (
	"errors"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/ReelCut/internal/project"
	"github.com/piwi3910/ReelCut/internal/store"
	"github.com/piwi3910/ReelCut/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("failed to load .env: %v", err)
	}

	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	journal, closeJournal, err := store.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to open journal: %v", err)
	}
	defer closeJournal()

	application := app.NewWithID("com.piwi3910.reelcut")
	window := application.NewWindow("ReelCut: Cable Reel Cut Planner")

	appUI := ui.NewApp(application, window, cfg, cfgPath, journal, logrus.StandardLogger())
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 750))
	window.CenterOnScreen()
	window.ShowAndRun()
}
