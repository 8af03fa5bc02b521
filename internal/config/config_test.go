package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
)

func TestParseEmergencyNumbers(t *testing.T) {
	got := ParseEmergencyNumbers(" SAMU = 192 ,Police=190,broken,=5,Fire=,")
	assert.Equal(t, []model.EmergencyNumber{
		{Label: "SAMU", Number: "192"},
		{Label: "Police", Number: "190"},
	}, got)

	assert.Empty(t, ParseEmergencyNumbers(""))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DB_CONNECTION", "PHOTO_DIR", "REPORT_DIR",
		"STORAGE_DRIVER", "AUTO_MIGRATE", "PHOTO_MAX_DIMENSION", "EMERGENCY_NUMBERS",
		"S3_PRESIGN_EXPIRY_PUBLIC"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATA_DIR", "/var/lib/cuidador")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, filepath.Join("/var/lib/cuidador", "cuidador.db")+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate", cfg.DBConnection)
	assert.Equal(t, filepath.Join("/var/lib/cuidador", "photos"), cfg.PhotoDir)
	assert.Equal(t, filepath.Join("/var/lib/cuidador", "reports"), cfg.ReportDir)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 1024, cfg.PhotoMaxDimension)
	assert.Equal(t, 168*time.Hour, cfg.S3PresignExpiryPublic)
	assert.Len(t, cfg.EmergencyNumbers, 3)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("PHOTO_MAX_DIMENSION", "not-a-number")
	t.Setenv("S3_PRESIGN_EXPIRY_PRIVATE", "15m")
	t.Setenv("EMERGENCY_NUMBERS", "Ambulance=112")
	t.Setenv("STORAGE_DRIVER", "local")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 1024, cfg.PhotoMaxDimension)
	assert.Equal(t, 15*time.Minute, cfg.S3PresignExpiryPrivate)
	assert.Equal(t, []model.EmergencyNumber{{Label: "Ambulance", Number: "112"}}, cfg.EmergencyNumbers)
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:      "Cuidador",
		DBConnection: "/data/cuidador.db",
		S3SecretKey:  "secret",
		S3AccessKey:  "key",
		SentryDSN:    "https://sentry",
	}
	s := cfg.Sanitized()
	assert.Equal(t, "Cuidador", s.AppName)
	assert.Empty(t, s.DBConnection)
	assert.Empty(t, s.S3SecretKey)
	assert.Empty(t, s.S3AccessKey)
	assert.Empty(t, s.SentryDSN)
}

func TestParseTrustedProxies(t *testing.T) {
	got := ParseTrustedProxies(" 10.0.0.0/8, 127.0.0.1,bogus, ,::1,192.168.1.7/16")
	require.Len(t, got, 4)
	assert.Equal(t, "10.0.0.0/8", got[0].String())
	assert.Equal(t, "127.0.0.1/32", got[1].String())
	assert.Equal(t, "::1/128", got[2].String())
	assert.Equal(t, "192.168.0.0/16", got[3].String())

	assert.Empty(t, ParseTrustedProxies(""))
}
