package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver string // mysql|sqlite
	MySQLDSN      string
	SQLitePath    string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	AdminKey   string
	SiteOrigin string
	OwnerEmail string

	Web3FormsKey      string
	Web3FormsURL      string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSURL        string
	MailMaxAttempts   int
	MailRPS           int

	NotifyWorkers    int
	SubmitRPS        float64
	SubmitBurst      int
	TrustProxy       bool
	BookingRetention time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, fills in variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		StorageDriver: strings.ToLower(env("STORAGE_DRIVER", "sqlite")),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/folio?parseTime=true&charset=utf8mb4&loc=UTC"),
		SQLitePath:    env("SQLITE_PATH", "folio.db"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		AdminKey:   env("ADMIN_KEY", ""),
		SiteOrigin: env("SITE_ORIGIN", "*"),
		OwnerEmail: env("OWNER_EMAIL", ""),

		Web3FormsKey:      env("WEB3FORMS_ACCESS_KEY", ""),
		Web3FormsURL:      env("WEB3FORMS_URL", ""),
		EmailJSServiceID:  env("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: env("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  env("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: env("EMAILJS_PRIVATE_KEY", ""),
		EmailJSURL:        env("EMAILJS_URL", ""),
		MailMaxAttempts:   atoi("MAIL_MAX_ATTEMPTS", 1),
		MailRPS:           atoi("MAIL_RPS", 2),

		NotifyWorkers:    atoi("NOTIFY_WORKERS", 4),
		SubmitRPS:        atof("SUBMIT_RPS", 0.2),
		SubmitBurst:      atoi("SUBMIT_BURST", 5),
		TrustProxy:       strings.EqualFold(env("TRUST_PROXY", "false"), "true"),
		BookingRetention: time.Duration(atoi("BOOKING_RETENTION_DAYS", 365)) * 24 * time.Hour,
	}
	if c.AdminKey == "" {
		log.Warn().Msg("ADMIN_KEY is empty; admin endpoints are disabled")
	}
	if c.Web3FormsKey == "" && c.EmailJSPublicKey == "" {
		log.Warn().Msg("no mail provider configured; contact form will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
