package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKING_CONFIG_FILE", "")
	t.Setenv("SQUARE_LOCATION_ID", "L1")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BUSINESS_TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("expected postgres store, got %q", cfg.StoreDriver)
	}
	if cfg.BusinessTimezone != timezone.DefaultTimezone {
		t.Fatalf("expected default timezone, got %q", cfg.BusinessTimezone)
	}
	if cfg.AvailabilityWindowDays != 31 || cfg.AvailabilityHorizonDays != 60 {
		t.Fatalf("unexpected availability defaults %d/%d", cfg.AvailabilityWindowDays, cfg.AvailabilityHorizonDays)
	}
	if cfg.Square.BaseURL != "https://connect.squareupsandbox.com" {
		t.Fatalf("unexpected base url %q", cfg.Square.BaseURL)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booking.yaml")
	yml := []byte(`
store_driver: redis
business_timezone: Europe/Lisbon
availability_window_days: 7
square:
  environment: production
  location_id: FILE_LOC
`)
	if err := os.WriteFile(path, yml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("BOOKING_CONFIG_FILE", path)
	t.Setenv("SQUARE_LOCATION_ID", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BUSINESS_TIMEZONE", "")
	t.Setenv("SQUARE_BASE_URL", "")
	t.Setenv("AVAILABILITY_WINDOW_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreDriverRedis {
		t.Fatalf("expected redis from file, got %q", cfg.StoreDriver)
	}
	if cfg.BusinessTimezone != "Europe/Lisbon" {
		t.Fatalf("expected file timezone, got %q", cfg.BusinessTimezone)
	}
	if cfg.AvailabilityWindowDays != 14 {
		t.Fatalf("env should win over file, got %d", cfg.AvailabilityWindowDays)
	}
	if cfg.Square.LocationID != "FILE_LOC" {
		t.Fatalf("expected location from file, got %q", cfg.Square.LocationID)
	}
	if cfg.Square.BaseURL != "https://connect.squareup.com" {
		t.Fatalf("expected production base url, got %q", cfg.Square.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BOOKING_CONFIG_FILE", "")
	t.Setenv("SQUARE_LOCATION_ID", "L1")

	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store driver")
	}

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AVAILABILITY_WINDOW_DAYS", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non numeric window")
	}

	t.Setenv("AVAILABILITY_WINDOW_DAYS", "45")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for a window wider than 31 days")
	}

	t.Setenv("AVAILABILITY_WINDOW_DAYS", "31")
	t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}

	t.Setenv("BUSINESS_TIMEZONE", "Australia/Sydney")
	if _, err := Load(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoad_RequiresLocation(t *testing.T) {
	t.Setenv("BOOKING_CONFIG_FILE", "")
	t.Setenv("SQUARE_LOCATION_ID", "")
	t.Setenv("STORE_DRIVER", "memory")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without location id")
	}
}
