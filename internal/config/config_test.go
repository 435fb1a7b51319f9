package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMainConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "*.txt", cfg.InputPattern)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, []string{"xlsx", "csv"}, cfg.ReportFormats)
	assert.False(t, cfg.ArchiveDateSubdirs)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadMainConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
output_name_format: "{uuid}.epc"
report_formats: [csv]
log_level: debug
language: sl
max_concurrency: 2
stop_on_error: true
archive_date_subdirs: true
log_file: /var/log/upn2epc.log
validation:
  skip_iban_checksum: true
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "{uuid}.epc", cfg.OutputNameFormat)
	assert.Equal(t, []string{"csv"}, cfg.ReportFormats)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sl", cfg.Language)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.True(t, cfg.StopOnError)
	assert.True(t, cfg.ArchiveDateSubdirs)
	assert.Equal(t, "/var/log/upn2epc.log", cfg.LogFile)
	assert.True(t, cfg.Validation.SkipIBANChecksum)
}

func TestLoadMainConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "input_dir: /from/file\nmax_concurrency: 2\n")

	t.Setenv("UPN2EPC_INPUT_DIR", "/from/env")
	t.Setenv("UPN2EPC_MAX_CONCURRENCY", "8")
	t.Setenv("UPN2EPC_SKIP_ARCHIVE", "true")
	t.Setenv("UPN2EPC_REPORT_FORMATS", " xlsx , ")
	t.Setenv("UPN2EPC_ARCHIVE_DATE_SUBDIRS", "1")
	t.Setenv("UPN2EPC_LOG_FILE", "/tmp/upn2epc.log")

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.InputDir)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.True(t, cfg.SkipArchive)
	assert.Equal(t, []string{"xlsx"}, cfg.ReportFormats)
	assert.True(t, cfg.ArchiveDateSubdirs)
	assert.Equal(t, "/tmp/upn2epc.log", cfg.LogFile)
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "malformed yaml", body: "input_dir: [unclosed"},
		{name: "negative concurrency", body: "max_concurrency: -1"},
		{name: "unknown log level", body: "log_level: loud"},
		{name: "unknown log format", body: "log_format: xml"},
		{name: "unknown language", body: "language: de"},
		{name: "unknown report format", body: "report_formats: [pdf]"},
		{name: "colliding output names", body: `output_name_format: "payload.txt"`},
		{name: "bad env bool", body: "", env: map[string]string{"UPN2EPC_STOP_ON_ERROR": "maybe"}},
		{name: "bad env int", body: "", env: map[string]string{"UPN2EPC_MAX_CONCURRENCY": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadMainConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
