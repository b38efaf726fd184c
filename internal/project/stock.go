package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ReelCut/internal/model"
)

// DefaultStockPath returns the default file path for the reel stock.
// This is located at stock.json inside DefaultConfigDir.
func DefaultStockPath() string {
	return filepath.Join(DefaultConfigDir(), "stock.json")
}

// SaveStock writes the reel stock to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveStock(path string, stock model.Stock) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stock, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadStock reads the reel stock from the specified JSON file.
// If the file does not exist, it returns an empty stock.
func LoadStock(path string) (model.Stock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStock(), nil
		}
		return model.Stock{}, err
	}
	var stock model.Stock
	if err := json.Unmarshal(data, &stock); err != nil {
		return model.Stock{}, fmt.Errorf("failed to parse stock %s: %w", path, err)
	}
	if stock.Reels == nil {
		stock.Reels = []model.Reel{}
	}
	return stock, nil
}

// ImportStock reads a stock file and merges it into existing. Reels whose
// id is already in stock are skipped.
func ImportStock(path string, existing model.Stock) (model.Stock, int, error) {
	if _, err := os.Stat(path); err != nil {
		return existing, 0, err
	}
	imported, err := LoadStock(path)
	if err != nil {
		return existing, 0, err
	}
	added := existing.Merge(imported)
	return existing, added, nil
}
