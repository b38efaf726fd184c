package store

import (
	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/project"
)

// Open returns the journal selected by the configuration together with a
// function that releases it.
func Open(cfg model.AppConfig) (cutlog.Store, func() error, error) {
	path := project.JournalLocation(cfg)
	if cfg.JournalBackend == model.JournalSQLite {
		j, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return j, j.Close, nil
	}
	return project.OpenJournalFile(path), func() error { return nil }, nil
}
