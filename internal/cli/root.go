// Package cli implements the reelcut command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/project"
	"github.com/piwi3910/ReelCut/internal/store"
)

// ErrInfeasible is returned when a calculation leaves cuts unallocated.
// Execute maps it to exit status 2.
var ErrInfeasible = errors.New("not every cut could be placed")

// app holds state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	envFile    string

	cfg model.AppConfig
	log *logrus.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{log: logrus.StandardLogger()}

	root := &cobra.Command{
		Use:           "reelcut",
		Short:         "Plan cable cuts across reels and keep a journal of what was cut",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $REELCUT_CONFIG or ~/.reelcut/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log", "", "Log level (trace, debug, info, warn, error); overrides the config")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before anything else")

	root.AddCommand(
		newPlanCmd(a),
		newCompareCmd(a),
		newLogCmd(a),
		newExportCmd(a),
		newBackupCmd(a),
		newConfigCmd(a),
		newStockCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())

	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", levelName)
	}
	a.log.SetLevel(level)
	a.log.WithField("config", a.configPath).Debug("configuration loaded")
	return nil
}

// openJournal opens the configured journal backend. The returned close
// function must be called when the command is done.
func (a *app) openJournal() (cutlog.Store, func() error, error) {
	j, closeJournal, err := store.Open(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	a.log.WithFields(logrus.Fields{
		"backend": a.cfg.JournalBackend,
		"path":    project.JournalLocation(a.cfg),
	}).Debug("journal opened")
	return j, closeJournal, nil
}

// Execute runs the CLI root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if errors.Is(err, ErrInfeasible) {
			logrus.Error(err)
			os.Exit(2)
		}
		logrus.Fatalf("%v", err)
	}
}
