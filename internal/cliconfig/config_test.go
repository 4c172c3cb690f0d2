package cliconfig

import (
	"path/filepath"
	"testing"

	"github.com/bft-labs/domainlog/pkg/event"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{Source: "/var/log/host.log", Level: "INFO", RolloverMB: 10, MaxRotatedFiles: 4},
			wantErr: false,
		},
		{
			name:    "missing source",
			cfg:     Config{Level: "INFO", RolloverMB: 10, MaxRotatedFiles: 4},
			wantErr: true,
		},
		{
			name:    "bad level",
			cfg:     Config{Source: "/var/log/host.log", Level: "SHOUTING", RolloverMB: 10, MaxRotatedFiles: 4},
			wantErr: true,
		},
		{
			name:    "non-positive rollover",
			cfg:     Config{Source: "/var/log/host.log", Level: "INFO", MaxRotatedFiles: 4},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDerivesLogDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "/var/log/freeswitch/freeswitch.log"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := filepath.Join("/var/log/freeswitch", "domains")
	if cfg.LogDir != want {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, want)
	}
}

func TestMinSeverity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "warning"
	if got := cfg.MinSeverity(); got != event.Warning {
		t.Fatalf("MinSeverity() = %v, want Warning", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "DEBUG" {
		t.Fatalf("Level = %q, want DEBUG", cfg.Level)
	}
	if cfg.RolloverMB != 10 || cfg.MaxRotatedFiles != 4096 {
		t.Fatalf("unexpected rotation defaults %d/%d", cfg.RolloverMB, cfg.MaxRotatedFiles)
	}
}
