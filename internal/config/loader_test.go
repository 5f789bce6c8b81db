package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcragent/internal/report"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dcragent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", Overrides{})
	require.NoError(t, err)

	assert.Empty(t, cfg.LoadedFrom)
	assert.Equal(t, "stdbuf -oL gpsmon -a", cfg.Source.Command)
	assert.Equal(t, []string{"stdbuf", "-oL", "gpsmon", "-a"}, cfg.Source.Argv())
	assert.Equal(t, "gpsmon", cfg.Source.Format)

	assert.False(t, cfg.General.IgnoreFilterWhenTraining)
	assert.False(t, cfg.General.ReportRawPacket)

	assert.Equal(t, 24, cfg.Cache.ValidPeriodHours)
	assert.Equal(t, "/var/cache/dcragent/cache.json", cfg.Cache.Path)

	for _, cat := range report.Categories() {
		cc := cfg.Category(cat)
		assert.True(t, cc.Use, "category %s should be enabled by default", cat)
		assert.Empty(t, cc.Keywords, "category %s should have no keywords by default", cat)
	}

	assert.True(t, cfg.Report.Use)
	assert.Equal(t, "/var/log/dcragent.log", cfg.Report.Path)
	assert.Equal(t, 7, cfg.Report.RotateDays)
	assert.Equal(t, 5, cfg.Report.MaxBackups)
	assert.True(t, cfg.Report.Channel.ReportIncompleteInfo)
	assert.True(t, cfg.Report.Channel.IgnoreFilter)
	assert.True(t, cfg.Report.Channel.ReportTraining)

	assert.False(t, cfg.Mail.Use)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.Channel.ReportIncompleteInfo)
	assert.False(t, cfg.Mail.Channel.IgnoreFilter)
	assert.True(t, cfg.Mail.Channel.ReportTraining)

	assert.False(t, cfg.Console.Use)
	assert.False(t, cfg.Server.Use)
	assert.Equal(t, 9215, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.CircuitBreaker.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
Source:
  Command: "cat /var/spool/qzss/feed.jsonl"
  Format: jsonl
General:
  IgnoreFilterWhenTraining: 1
Cache:
  CacheValidPeriodHours: 6
  Path: /tmp/dcragent-cache.json
EarthquakeEarlyWarning:
  Use: 1
  Regions: "Tokyo,Kanagawa"
SeismicIntensity:
  Use: 0
Report:
  Use: 1
  Path: /tmp/dcragent-report.log
  RotateDays: 1
  MaxBackups: 2
Mail:
  Use: 1
  Host: smtp.example.org
  Port: 465
  Address: ops@example.org
  Ssl: 1
  TimeoutSeconds: 10
Server:
  Use: 1
  Port: 19215
Logging:
  Level: debug
`)

	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.LoadedFrom)
	assert.Equal(t, []string{"cat", "/var/spool/qzss/feed.jsonl"}, cfg.Source.Argv())
	assert.Equal(t, "jsonl", cfg.Source.Format)
	assert.True(t, cfg.General.IgnoreFilterWhenTraining)
	assert.Equal(t, 6, cfg.Cache.ValidPeriodHours)
	assert.Equal(t, "/tmp/dcragent-cache.json", cfg.Cache.Path)

	eew := cfg.Category(report.CategoryEarthquakeEarlyWarning)
	assert.True(t, eew.Use)
	assert.Equal(t, []string{"Tokyo", "Kanagawa"}, eew.Keywords)

	assert.False(t, cfg.Category(report.CategorySeismicIntensity).Use)
	assert.True(t, cfg.Category(report.CategoryTsunami).Use, "unmentioned categories keep the enabled default")

	assert.Equal(t, 1, cfg.Report.RotateDays)
	assert.Equal(t, 2, cfg.Report.MaxBackups)

	assert.True(t, cfg.Mail.Use)
	assert.Equal(t, "smtp.example.org", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, "ops@example.org", cfg.Mail.Address)
	assert.True(t, cfg.Mail.SSL)
	assert.False(t, cfg.Mail.TLS)
	assert.Equal(t, 10, cfg.Mail.TimeoutSeconds)

	assert.True(t, cfg.Server.Use)
	assert.Equal(t, 19215, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFileRunsOnDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), Overrides{})
	require.NoError(t, err)

	assert.Empty(t, cfg.LoadedFrom)
	assert.Equal(t, 24, cfg.Cache.ValidPeriodHours)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := writeConfigFile(t, "Source: [unterminated\n")

	_, err := Load(path, Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_LegacyValidPeriodAlias(t *testing.T) {
	t.Run("alias honored when canonical absent", func(t *testing.T) {
		path := writeConfigFile(t, `
Cache:
  ValidPeriodHour: 12
`)
		cfg, err := Load(path, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Cache.ValidPeriodHours)
	})

	t.Run("canonical wins when both present", func(t *testing.T) {
		path := writeConfigFile(t, `
Cache:
  ValidPeriodHour: 12
  CacheValidPeriodHours: 48
`)
		cfg, err := Load(path, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, 48, cfg.Cache.ValidPeriodHours)
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
Mail:
  Use: 1
  Host: smtp.example.org
  Address: ops@example.org
  User: from-file
`)
	t.Setenv("DCRAGENT_MAIL_USER", "from-env")
	t.Setenv("DCRAGENT_MAIL_PASSWORD", "s3cret")

	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Mail.User)
	assert.Equal(t, "s3cret", cfg.Mail.Password)
}

func TestLoad_CommandLineOverrides(t *testing.T) {
	cfg, err := Load("", Overrides{
		ReportPath: "/tmp/override-report.log",
		CachePath:  "/tmp/override-cache.json",
		LogLevel:   "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override-report.log", cfg.Report.Path)
	assert.Equal(t, "/tmp/override-cache.json", cfg.Cache.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Report.Use)

	cfg, err = Load("", Overrides{NoReport: true})
	require.NoError(t, err)
	assert.False(t, cfg.Report.Use)
}

func TestLoad_KeywordsNotTrimmedOnSplit(t *testing.T) {
	path := writeConfigFile(t, `
SeismicIntensity:
  Prefectures: "Tokyo, Osaka"
`)
	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)

	// Entries keep their raw spelling; trimming happens at match time.
	assert.Equal(t, []string{"Tokyo", " Osaka"}, cfg.Category(report.CategorySeismicIntensity).Keywords)
}

func TestLoad_InvalidKeywordFails(t *testing.T) {
	path := writeConfigFile(t, `
SeismicIntensity:
  Prefectures: "Atlantis"
`)
	_, err := Load(path, Overrides{})
	require.Error(t, err)

	var kerr *KeywordValidationError
	require.ErrorAs(t, err, &kerr)
	require.Len(t, kerr.Errors, 1)
	assert.Equal(t, "SeismicIntensity", kerr.Errors[0].Category)
	assert.Equal(t, "Prefectures", kerr.Errors[0].Option)
	assert.Equal(t, "Atlantis", kerr.Errors[0].Keyword)
	assert.Len(t, kerr.Errors[0].Legal, 47)
}

func TestConfig_CategoryFallback(t *testing.T) {
	cfg := &Config{Categories: map[report.Category]CategoryConfig{}}

	cc := cfg.Category(report.CategoryTyphoon)
	assert.True(t, cc.Use)
	assert.Empty(t, cc.Keywords)
}
