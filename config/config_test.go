package config

import (
	"testing"
	"time"
)

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SESSION_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Auth.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %s, want 168h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.TrialDuration != 14*24*time.Hour {
		t.Errorf("TrialDuration = %s, want 336h", cfg.Auth.TrialDuration)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverPostgres)
	}
	if cfg.SessionDriver() != DriverPostgres {
		t.Errorf("SessionDriver() = %q, want %q", cfg.SessionDriver(), DriverPostgres)
	}
}

func TestValidate_Drivers(t *testing.T) {
	tests := []struct {
		name          string
		driver        string
		sessionDriver string
		wantErr       bool
	}{
		{"postgres", DriverPostgres, "", false},
		{"mongo", DriverMongo, "", false},
		{"memory", DriverMemory, "", false},
		{"redis sessions over postgres", DriverPostgres, DriverRedis, false},
		{"redis cannot hold users", DriverRedis, "", true},
		{"unknown driver", "sqlite", "", true},
		{"unknown session driver", DriverPostgres, "etcd", true},
		{"postgres sessions over mongo users", DriverMongo, DriverPostgres, true},
		{"postgres sessions over memory users", DriverMemory, DriverPostgres, true},
		{"memory sessions over postgres users", DriverPostgres, DriverMemory, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				JWT:     JWTConfig{Secret: "s"},
				Auth:    AuthConfig{SessionTTL: time.Hour},
				Storage: StorageConfig{Driver: tt.driver, SessionDriver: tt.sessionDriver},
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNeeds(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: DriverMongo, SessionDriver: DriverRedis}}

	if !cfg.NeedsMongo() {
		t.Error("NeedsMongo() = false, want true")
	}
	if !cfg.NeedsRedis() {
		t.Error("NeedsRedis() = false, want true")
	}
	if cfg.NeedsPostgres() {
		t.Error("NeedsPostgres() = true, want false")
	}
}
