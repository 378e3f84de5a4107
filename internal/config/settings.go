package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	DEFAULT_COST_PER_KWH = 0.12
	DEFAULT_REPORT_PATH  = "/tmp/energy_report.json"
)

type Settings struct {
	CostPerKWH        float64 `json:"cost_per_kwh"`
	DefaultReportPath string  `json:"default_report_path"`
}

func DefaultSettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func LoadOrInitializeSettingsFromDefaultLocation() (bool, *Settings) {
	return LoadOrInitializeSettings(DefaultSettingsPath())
}

func LoadOrInitializeSettings(path string) (bool, *Settings) {
	if settings, err := LoadSettings(path); err == nil {
		return false, settings
	}

	return true, &Settings{
		CostPerKWH:        DEFAULT_COST_PER_KWH,
		DefaultReportPath: DEFAULT_REPORT_PATH,
	}
}

func LoadSettings(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	if settings.CostPerKWH <= 0 {
		settings.CostPerKWH = DEFAULT_COST_PER_KWH
	}
	if settings.DefaultReportPath == "" {
		settings.DefaultReportPath = DEFAULT_REPORT_PATH
	}

	return &settings, nil
}

func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
