package config

import (
	"log/slog"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/templui/cuidador/internal/model"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed
	TrustedProxies []netip.Prefix

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string
	AutoMigrate  bool // Apply pending migrations on startup

	// Files
	DataDir   string
	PhotoDir  string
	ReportDir string

	// Observability (optional)
	SentryDSN string

	// Storage: "local" keeps photos and reports on disk, "s3" uses any
	// S3-compatible bucket (MinIO, AWS S3, Cloudflare R2, ...)
	StorageDriver          string
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services
	S3PresignExpiryPublic  time.Duration // Expiry for photo URLs - default: 7 days
	S3PresignExpiryPrivate time.Duration // Expiry for report URLs - default: 1 hour

	// Care
	PhotoMaxDimension int
	EmergencyNumbers  []model.EmergencyNumber
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	dataDir := envString("DATA_DIR", "./data")

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Cuidador"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		TrustedProxies: ParseTrustedProxies(envString("TRUSTED_PROXIES", "")),

		// Database
		DBDriver: envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", filepath.Join(dataDir, "cuidador.db")+
			"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"),
		AutoMigrate: envBool("AUTO_MIGRATE", true),

		// Files
		DataDir:   dataDir,
		PhotoDir:  envString("PHOTO_DIR", filepath.Join(dataDir, "photos")),
		ReportDir: envString("REPORT_DIR", filepath.Join(dataDir, "reports")),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver:          envString("STORAGE_DRIVER", StorageLocal),
		S3Region:               envString("S3_REGION", ""),
		S3Bucket:               envString("S3_BUCKET", ""),
		S3AccessKey:            envString("S3_ACCESS_KEY", ""),
		S3SecretKey:            envString("S3_SECRET_KEY", ""),
		S3Endpoint:             envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic:  envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
		S3PresignExpiryPrivate: envDuration("S3_PRESIGN_EXPIRY_PRIVATE", 1*time.Hour),

		// Care
		PhotoMaxDimension: envInt("PHOTO_MAX_DIMENSION", 1024),
		EmergencyNumbers:  ParseEmergencyNumbers(envString("EMERGENCY_NUMBERS", "SAMU=192,Police=190,Firefighters=193")),
	}

	if cfg.StorageDriver == StorageS3 {
		cfg.S3Region = envRequired("S3_REGION")
		cfg.S3Bucket = envRequired("S3_BUCKET")
		cfg.S3AccessKey = envRequired("S3_ACCESS_KEY")
		cfg.S3SecretKey = envRequired("S3_SECRET_KEY")
	}

	return cfg
}

// ParseEmergencyNumbers reads a "Label=number,Label=number" list.
// Malformed entries are skipped.
func ParseEmergencyNumbers(s string) []model.EmergencyNumber {
	var numbers []model.EmergencyNumber
	for _, entry := range strings.Split(s, ",") {
		label, number, ok := strings.Cut(entry, "=")
		label = strings.TrimSpace(label)
		number = strings.TrimSpace(number)
		if !ok || label == "" || number == "" {
			if strings.TrimSpace(entry) != "" {
				slog.Warn("config invalid emergency number, skipping", "entry", entry)
			}
			continue
		}
		numbers = append(numbers, model.EmergencyNumber{Label: label, Number: number})
	}
	return numbers
}

// ParseTrustedProxies reads a comma separated list of IPs and CIDR
// ranges. Malformed entries are skipped.
func ParseTrustedProxies(s string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				slog.Warn("config invalid trusted proxy, skipping", "entry", entry)
				continue
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn("config invalid trusted proxy, skipping", "entry", entry)
			continue
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Credentials and connection strings are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:           c.AppName,
		AppEnv:            c.AppEnv,
		Port:              c.Port,
		StorageDriver:     c.StorageDriver,
		S3Endpoint:        c.S3Endpoint,
		PhotoMaxDimension: c.PhotoMaxDimension,
		EmergencyNumbers:  c.EmergencyNumbers,
	}
}
