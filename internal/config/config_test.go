package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("expected default data dir 'data', got %s", cfg.DataDir)
	}
	if cfg.AppointmentsFile != "citas.txt" {
		t.Errorf("expected default appointments file 'citas.txt', got %s", cfg.AppointmentsFile)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/clinica")
	t.Setenv("APPOINTMENTS_FILE", "appointments.txt")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/var/lib/clinica" {
		t.Errorf("expected DATA_DIR override, got %s", cfg.DataDir)
	}
	if got := cfg.AppointmentsPath(); got != filepath.Join("/var/lib/clinica", "appointments.txt") {
		t.Errorf("AppointmentsPath = %s", got)
	}
	if cfg.IsDev() {
		t.Error("ENV=production should not be development mode")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Env:              "production",
		LogLevel:         "info",
		DataDir:          "data",
		AppointmentsFile: "citas.txt",
		PatientsFile:     "pacientes.txt",
		CliniciansFile:   "medicos.txt",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	noDir := *cfg
	noDir.DataDir = ""
	if err := noDir.Validate(); err == nil {
		t.Error("expected error when DATA_DIR is empty")
	}

	pathy := *cfg
	pathy.PatientsFile = "../pacientes.txt"
	if err := pathy.Validate(); err == nil {
		t.Error("expected error when a file name contains a path")
	}

	badLevel := *cfg
	badLevel.LogLevel = "shout"
	if err := badLevel.Validate(); err == nil {
		t.Error("expected error for an unknown log level")
	}
}
