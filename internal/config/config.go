package config

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Env              string `mapstructure:"ENV"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	DataDir          string `mapstructure:"DATA_DIR"`
	AppointmentsFile string `mapstructure:"APPOINTMENTS_FILE"`
	PatientsFile     string `mapstructure:"PATIENTS_FILE"`
	CliniciansFile   string `mapstructure:"CLINICIANS_FILE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("APPOINTMENTS_FILE", "citas.txt")
	v.SetDefault("PATIENTS_FILE", "pacientes.txt")
	v.SetDefault("CLINICIANS_FILE", "medicos.txt")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("DATA_DIR")
	v.BindEnv("APPOINTMENTS_FILE")
	v.BindEnv("PATIENTS_FILE")
	v.BindEnv("CLINICIANS_FILE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AppointmentsPath returns the location of the appointment snapshot file.
func (c *Config) AppointmentsPath() string {
	return filepath.Join(c.DataDir, c.AppointmentsFile)
}

// PatientsPath returns the location of the patient roster file.
func (c *Config) PatientsPath() string {
	return filepath.Join(c.DataDir, c.PatientsFile)
}

// CliniciansPath returns the location of the clinician roster file.
func (c *Config) CliniciansPath() string {
	return filepath.Join(c.DataDir, c.CliniciansFile)
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	for key, name := range map[string]string{
		"APPOINTMENTS_FILE": c.AppointmentsFile,
		"PATIENTS_FILE":     c.PatientsFile,
		"CLINICIANS_FILE":   c.CliniciansFile,
	} {
		if name == "" {
			return fmt.Errorf("%s is required", key)
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("%s must be a bare file name, got %q", key, name)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level: %w", c.LogLevel, err)
	}
	return nil
}
