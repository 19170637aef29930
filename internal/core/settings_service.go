package core

import (
	"context"
	"fmt"

	"shopkeeper/internal/db"
)

// Settings keys. The settings table is a key/value store so new knobs
// do not need schema changes.
const (
	SettingStoreName       = "store_name"
	SettingCurrencySymbol  = "currency_symbol"
	SettingLowStockDefault = "low_stock_default"
)

// Settings holds the store-wide configuration shown on the settings
// screen.
type Settings struct {
	StoreName       string `json:"store_name"`
	CurrencySymbol  string `json:"currency_symbol"`
	LowStockDefault string `json:"low_stock_default"`
}

type SettingsService interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings Settings) error
}

type settingsService struct {
	pool db.Pool
}

// NewSettingsService constructs a SettingsService backed by PostgreSQL.
func NewSettingsService(pool db.Pool) SettingsService {
	return &settingsService{pool: pool}
}

func (s *settingsService) Get(ctx context.Context) (*Settings, error) {
	rows, err := s.pool.Query(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	settings := &Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case SettingStoreName:
			settings.StoreName = value
		case SettingCurrencySymbol:
			settings.CurrencySymbol = value
		case SettingLowStockDefault:
			settings.LowStockDefault = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context, settings Settings) error {
	pairs := map[string]string{
		SettingStoreName:       settings.StoreName,
		SettingCurrencySymbol:  settings.CurrencySymbol,
		SettingLowStockDefault: settings.LowStockDefault,
	}
	for key, value := range pairs {
		if _, err := s.pool.Exec(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return nil
}
