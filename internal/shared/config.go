package shared

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"catalog_sync/internal/domain"
)

type Config struct {
	AppEnv  string        `mapstructure:"app_env"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

// PathsConfig locates every input and output file of a run. Relative paths
// are resolved against BaseDir.
type PathsConfig struct {
	BaseDir     string `mapstructure:"base_dir"`
	Spreadsheet string `mapstructure:"spreadsheet"`
	Document    string `mapstructure:"document"`
	Cache       string `mapstructure:"cache"`
	Records     string `mapstructure:"records"`
	Compiled    string `mapstructure:"compiled"`
	Grouped     string `mapstructure:"grouped"`
	PriceList   string `mapstructure:"price_list"`
	PriceStatus string `mapstructure:"price_status"`
	Specified   string `mapstructure:"specified"`
}

type FetchConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Delay          time.Duration `mapstructure:"delay"`
	MaxAge         time.Duration `mapstructure:"max_age"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	UserAgent      string        `mapstructure:"user_agent"`
	AcceptLanguage string        `mapstructure:"accept_language"`
}

type CacheConfig struct {
	Backend   string `mapstructure:"backend"` // file|redis
	RedisAddr string `mapstructure:"redis_addr"`
	RedisPass string `mapstructure:"redis_password"`
	RedisDB   int    `mapstructure:"redis_db"`
	RedisKey  string `mapstructure:"redis_key"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type NotifyConfig struct {
	SMTPServer string `mapstructure:"smtp_server"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	SMTPUser   string `mapstructure:"smtp_user"`
	SMTPPass   string `mapstructure:"smtp_pass"`
	FromEmail  string `mapstructure:"from_email"`
	ToEmail    string `mapstructure:"to_email"`
}

// Enabled reports whether every SMTP setting needed to send is present.
func (n NotifyConfig) Enabled() bool {
	return n.SMTPServer != "" && n.SMTPUser != "" && n.SMTPPass != "" && n.ToEmail != ""
}

// Load builds the run configuration. CATALOG_* environment variables win over
// the config file, which wins over defaults. An empty path looks for an
// optional catalog.yaml in the working directory.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.Paths = c.Paths.resolved()

	if c.Cache.Backend != "file" && c.Cache.Backend != "redis" {
		return Config{}, fmt.Errorf("%w: %q (want file or redis)", domain.ErrUnknownBackend, c.Cache.Backend)
	}
	if c.Fetch.RequestsPerSec <= 0 {
		log.Warn().Float64("requests_per_sec", c.Fetch.RequestsPerSec).Msg("non-positive request rate, using 1")
		c.Fetch.RequestsPerSec = 1
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "prod")

	v.SetDefault("paths.base_dir", ".")
	v.SetDefault("paths.spreadsheet", "catalog.xlsx")
	v.SetDefault("paths.document", "index.html")
	v.SetDefault("paths.cache", "assets/product_cache.json")
	v.SetDefault("paths.records", "assets/product_records.json")
	v.SetDefault("paths.compiled", "assets/compiled_products.json")
	v.SetDefault("paths.grouped", "assets/grouped_products.json")
	v.SetDefault("paths.price_list", "assets/price_list.json")
	v.SetDefault("paths.price_status", "assets/price_status.json")
	v.SetDefault("paths.specified", "assets/specified_products.json")

	v.SetDefault("fetch.base_url", "https://www.amazon.co.jp")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.delay", "1200ms")
	v.SetDefault("fetch.max_age", "72h")
	v.SetDefault("fetch.requests_per_sec", 1)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36")
	v.SetDefault("fetch.accept_language", "ja-JP,ja;q=0.9,en-US;q=0.8,en;q=0.7")

	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_key", "catalog:product_cache")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("notify.smtp_server", "")
	v.SetDefault("notify.smtp_port", 587)
	v.SetDefault("notify.smtp_user", "")
	v.SetDefault("notify.smtp_pass", "")
	v.SetDefault("notify.from_email", "")
	v.SetDefault("notify.to_email", "")
}

func (p PathsConfig) resolved() PathsConfig {
	abs := func(s string) string {
		if s == "" || filepath.IsAbs(s) {
			return s
		}
		return filepath.Join(p.BaseDir, s)
	}
	return PathsConfig{
		BaseDir:     p.BaseDir,
		Spreadsheet: abs(p.Spreadsheet),
		Document:    abs(p.Document),
		Cache:       abs(p.Cache),
		Records:     abs(p.Records),
		Compiled:    abs(p.Compiled),
		Grouped:     abs(p.Grouped),
		PriceList:   abs(p.PriceList),
		PriceStatus: abs(p.PriceStatus),
		Specified:   abs(p.Specified),
	}
}
