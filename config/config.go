package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const EnvPrefix = "LMT"

// Config is the full service configuration, loaded once at startup.
type Config struct {
	App    AppConfig
	DB     DBConfig
	Agency AgencyConfig
	JWT    JWTConfig
	Drive  DriveConfig
	Export ExportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Agency.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"LMT_APP_ENV" default:"development"`
	Port     string `envconfig:"LMT_APP_PORT" default:"8080"`
	BaseURL  string `envconfig:"LMT_BASE_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LMT_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	URL string `envconfig:"LMT_DATABASE_URL" required:"true"`
}

// AgencyConfig carries agency-wide commercial settings. Markup and the
// discount ceiling apply to every quotation; they are not per-document.
type AgencyConfig struct {
	Name               string `envconfig:"LMT_AGENCY_NAME" default:"Let Me Travel"`
	Tagline            string `envconfig:"LMT_AGENCY_TAGLINE" default:"We turn destinations into memories."`
	Collection         string `envconfig:"LMT_AGENCY_COLLECTION" default:"Let Me Travel Signature Collection"`
	Website            string `envconfig:"LMT_AGENCY_WEBSITE" default:"letmetravel.in"`
	Email              string `envconfig:"LMT_AGENCY_EMAIL" default:"info@letmetravel.in"`
	WhatsAppNumber     string `envconfig:"LMT_AGENCY_WHATSAPP" default:""`
	MarkupPercent      int64  `envconfig:"LMT_MARKUP_PERCENT" default:"25"`
	MaxDiscountPercent int64  `envconfig:"LMT_MAX_DISCOUNT_PERCENT" default:"15"`
}

func (a AgencyConfig) validate() error {
	if a.MarkupPercent < 0 {
		return fmt.Errorf("markup percent must be non-negative, got %d", a.MarkupPercent)
	}
	if a.MaxDiscountPercent < 0 || a.MaxDiscountPercent > 100 {
		return fmt.Errorf("max discount percent must be in [0,100], got %d", a.MaxDiscountPercent)
	}
	return nil
}

// Markup returns the agency markup as a decimal percentage.
func (a AgencyConfig) Markup() decimal.Decimal {
	return decimal.NewFromInt(a.MarkupPercent)
}

type JWTConfig struct {
	Secret            string `envconfig:"LMT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LMT_JWT_ISSUER" default:"lmt-crm"`
	ExpirationMinutes int    `envconfig:"LMT_JWT_EXPIRATION_MINUTES" default:"720"`
}

// DriveConfig points the gallery sync at a shared Drive folder of
// destination photography. Both fields empty disables the sync routes.
type DriveConfig struct {
	CredentialsFile string `envconfig:"LMT_DRIVE_CREDENTIALS_FILE" default:""`
	GalleryFolderID string `envconfig:"LMT_DRIVE_GALLERY_FOLDER" default:""`
}

func (d DriveConfig) Enabled() bool {
	return d.CredentialsFile != "" && d.GalleryFolderID != ""
}

type ExportConfig struct {
	ChromePath     string `envconfig:"LMT_CHROME_PATH" default:""`
	TimeoutSeconds int    `envconfig:"LMT_EXPORT_TIMEOUT_SECONDS" default:"30"`
}
