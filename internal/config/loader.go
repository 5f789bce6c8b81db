package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"dcragent/internal/report"
)

// Overrides carries command-line settings applied on top of the file and
// environment, before validation.
type Overrides struct {
	ReportPath string
	CachePath  string
	LogLevel   string
	NoReport   bool
}

// Load builds the resolved configuration snapshot: defaults, then the
// config file when present, then DCRAGENT_* environment variables, then
// command-line overrides. A missing file is not an error; the agent runs
// on defaults and the caller can tell from Config.LoadedFrom.
func Load(configFile string, ov Overrides) (*Config, error) {
	viper.Reset()

	viper.SetConfigType("yaml")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	viper.SetEnvPrefix("DCRAGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	loadedFrom := ""
	if configFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			if !isNotFound(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		} else {
			loadedFrom = viper.ConfigFileUsed()
		}
	}

	cfg := buildConfig()
	cfg.LoadedFrom = loadedFrom
	applyOverrides(cfg, ov)

	if err := ValidateStatic(cfg); err != nil {
		return nil, err
	}

	if err := ValidateKeywords(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func bindEnvVariables() {
	viper.BindEnv("Mail.User", "DCRAGENT_MAIL_USER")
	viper.BindEnv("Mail.Password", "DCRAGENT_MAIL_PASSWORD")
}

func setDefaults() {
	viper.SetDefault("Source.Command", "stdbuf -oL gpsmon -a")
	viper.SetDefault("Source.Format", "gpsmon")

	viper.SetDefault("General.IgnoreFilterWhenTraining", false)
	viper.SetDefault("General.ReportRawPacket", false)

	viper.SetDefault("Cache.CacheValidPeriodHours", 24)
	viper.SetDefault("Cache.Path", "/var/cache/dcragent/cache.json")

	for _, cat := range report.Categories() {
		d := cat.Descriptor()
		viper.SetDefault(d.Name+".Use", true)
		if d.KeywordKey != "" {
			viper.SetDefault(d.Name+"."+d.KeywordKey, "")
		}
	}

	// The report file is the archive channel: it keeps filtered, training
	// and incomplete messages unless an operator narrows it.
	viper.SetDefault("Report.Use", true)
	viper.SetDefault("Report.Path", "/var/log/dcragent.log")
	viper.SetDefault("Report.RotateDays", 7)
	viper.SetDefault("Report.MaxBackups", 5)
	viper.SetDefault("Report.ReportIncompleteInfo", true)
	viper.SetDefault("Report.IgnoreFilter", true)
	viper.SetDefault("Report.ReportTraining", true)

	viper.SetDefault("Mail.Use", false)
	viper.SetDefault("Mail.Host", "")
	viper.SetDefault("Mail.Port", 587)
	viper.SetDefault("Mail.User", "")
	viper.SetDefault("Mail.Password", "")
	viper.SetDefault("Mail.Address", "")
	viper.SetDefault("Mail.Tls", false)
	viper.SetDefault("Mail.Ssl", false)
	viper.SetDefault("Mail.SuppressHeaderFromText", false)
	viper.SetDefault("Mail.TimeoutSeconds", 30)
	viper.SetDefault("Mail.ReportIncompleteInfo", false)
	viper.SetDefault("Mail.IgnoreFilter", false)
	viper.SetDefault("Mail.ReportTraining", true)

	viper.SetDefault("Console.Use", false)
	viper.SetDefault("Console.ReportIncompleteInfo", false)
	viper.SetDefault("Console.IgnoreFilter", false)
	viper.SetDefault("Console.ReportTraining", true)

	viper.SetDefault("Server.Use", false)
	viper.SetDefault("Server.Port", 9215)

	viper.SetDefault("Logging.Level", "info")

	viper.SetDefault("CircuitBreaker.Enabled", false)
	viper.SetDefault("CircuitBreaker.MaxRequests", 1)
	viper.SetDefault("CircuitBreaker.Interval", "60s")
	viper.SetDefault("CircuitBreaker.Timeout", "60s")
	viper.SetDefault("CircuitBreaker.FailureRatio", 0.6)
	viper.SetDefault("CircuitBreaker.MinRequests", 3)
}

func buildConfig() *Config {
	cfg := &Config{
		Source: SourceConfig{
			Command: viper.GetString("Source.Command"),
			Format:  viper.GetString("Source.Format"),
		},
		General: GeneralConfig{
			IgnoreFilterWhenTraining: viper.GetBool("General.IgnoreFilterWhenTraining"),
			ReportRawPacket:          viper.GetBool("General.ReportRawPacket"),
		},
		Cache: CacheConfig{
			ValidPeriodHours: cacheValidPeriodHours(),
			Path:             viper.GetString("Cache.Path"),
		},
		Categories: make(map[report.Category]CategoryConfig, len(report.Categories())),
		Report: FileSinkConfig{
			Use:        viper.GetBool("Report.Use"),
			Path:       viper.GetString("Report.Path"),
			RotateDays: viper.GetInt("Report.RotateDays"),
			MaxBackups: viper.GetInt("Report.MaxBackups"),
			Channel:    channelConfig("Report"),
		},
		Mail: MailSinkConfig{
			Use:                    viper.GetBool("Mail.Use"),
			Host:                   viper.GetString("Mail.Host"),
			Port:                   viper.GetInt("Mail.Port"),
			User:                   viper.GetString("Mail.User"),
			Password:               viper.GetString("Mail.Password"),
			Address:                viper.GetString("Mail.Address"),
			TLS:                    viper.GetBool("Mail.Tls"),
			SSL:                    viper.GetBool("Mail.Ssl"),
			SuppressHeaderFromText: viper.GetBool("Mail.SuppressHeaderFromText"),
			TimeoutSeconds:         viper.GetInt("Mail.TimeoutSeconds"),
			Channel:                channelConfig("Mail"),
		},
		Console: ConsoleSinkConfig{
			Use:     viper.GetBool("Console.Use"),
			Channel: channelConfig("Console"),
		},
		Server: ServerConfig{
			Use:  viper.GetBool("Server.Use"),
			Port: viper.GetInt("Server.Port"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("Logging.Level"),
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:      viper.GetBool("CircuitBreaker.Enabled"),
			MaxRequests:  uint32(viper.GetUint("CircuitBreaker.MaxRequests")),
			Interval:     viper.GetDuration("CircuitBreaker.Interval"),
			Timeout:      viper.GetDuration("CircuitBreaker.Timeout"),
			FailureRatio: viper.GetFloat64("CircuitBreaker.FailureRatio"),
			MinRequests:  uint32(viper.GetUint("CircuitBreaker.MinRequests")),
		},
	}

	for _, cat := range report.Categories() {
		d := cat.Descriptor()
		cc := CategoryConfig{
			Use: viper.GetBool(d.Name + ".Use"),
		}
		if d.KeywordKey != "" {
			cc.Keywords = splitKeywords(viper.GetString(d.Name + "." + d.KeywordKey))
		}
		cfg.Categories[cat] = cc
	}

	return cfg
}

// cacheValidPeriodHours honors the legacy ValidPeriodHour key when the
// canonical one is not set.
func cacheValidPeriodHours() int {
	if viper.InConfig("Cache.ValidPeriodHour") && !viper.InConfig("Cache.CacheValidPeriodHours") {
		return viper.GetInt("Cache.ValidPeriodHour")
	}
	return viper.GetInt("Cache.CacheValidPeriodHours")
}

func channelConfig(section string) ChannelConfig {
	return ChannelConfig{
		ReportIncompleteInfo: viper.GetBool(section + ".ReportIncompleteInfo"),
		IgnoreFilter:         viper.GetBool(section + ".IgnoreFilter"),
		ReportTraining:       viper.GetBool(section + ".ReportTraining"),
	}
}

// splitKeywords splits a comma-separated option value. Entries are not
// trimmed here; the matcher trims at comparison time, and a lone empty
// value means "no filter".
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.ReportPath != "" {
		cfg.Report.Path = ov.ReportPath
	}
	if ov.CachePath != "" {
		cfg.Cache.Path = ov.CachePath
	}
	if ov.LogLevel != "" {
		cfg.Logging.Level = ov.LogLevel
	}
	if ov.NoReport {
		cfg.Report.Use = false
	}
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
