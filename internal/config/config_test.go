package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test configuration",
			configPath: filepath.Join("..", "..", "test", "test_config.yaml"),
			wantError:  false,
		},
		{
			name:       "Example configuration",
			configPath: filepath.Join("..", "..", "config.yaml.example"),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFields(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "warn" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected warn/console", conf.Logging)
	}
	if conf.Output.Format != "pretty" {
		t.Errorf("Output.Format = %q, expected pretty", conf.Output.Format)
	}
	if len(conf.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(conf.Scenarios))
	}

	loan := conf.Scenarios[0].Loan
	expected := Loan{
		Amount:                1400,
		AnnualInterestRate:    5.5,
		TermYears:             30,
		EarlyPaymentTermYears: 5,
		EarlyPaymentAmount:    4,
	}
	if loan != expected {
		t.Errorf("first scenario loan = %+v, expected %+v", loan, expected)
	}

	if conf.Scenarios[1].Loan.EarlyPaymentTermYears != 0 || conf.Scenarios[1].Loan.EarlyPaymentAmount != 0 {
		t.Errorf("omitted early payment fields should default to zero, got %+v", conf.Scenarios[1].Loan)
	}
}

func TestLoadConfigurationMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scenarios: [\n  - name: broken\n"), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfiguration(path); err == nil {
		t.Error("LoadConfiguration() expected error for malformed YAML")
	}
}

func TestLoadConfigurationWrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.yaml")
	data := "scenarios:\n  - name: typo\n    active: true\n    loan:\n      termYears: thirty\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfiguration(path); err == nil {
		t.Error("LoadConfiguration() expected error for non-numeric term")
	}
}

func TestActiveScenarios(t *testing.T) {
	conf := &Configuration{
		Scenarios: []Scenario{
			{Name: "a", Active: true},
			{Name: "b", Active: false},
			{Name: "c", Active: true},
		},
	}

	active := conf.ActiveScenarios()
	if len(active) != 2 {
		t.Fatalf("ActiveScenarios() returned %d scenarios, expected 2", len(active))
	}
	if active[0].Name != "a" || active[1].Name != "c" {
		t.Errorf("ActiveScenarios() = %v, expected a and c in order", active)
	}

	empty := &Configuration{}
	if got := empty.ActiveScenarios(); len(got) != 0 {
		t.Errorf("ActiveScenarios() on empty config = %v, expected none", got)
	}
}
