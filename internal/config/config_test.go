package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
project_names: [PRA, PRB]
users: [alice]
api_url: https://jira.example.com/
api_token: secret
http_timeout: 5s
log_file: /tmp/jiraclui-test/app.log
log:
  level: debug
app_options:
  max_table_entry: 150
  number_type_menu: true
  app_colors:
    table: yellow
    menu: "39"
    details_form: "#ff8800"
    prompts: cyan
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"PRA", "PRB"}, cfg.ProjectNames)
	assert.Equal(t, []string{"alice"}, cfg.Users)
	assert.Equal(t, "https://jira.example.com", cfg.APIURL)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 150, cfg.AppOptions.MaxTableEntry)
	assert.True(t, cfg.AppOptions.NumberTypeMenu)
	assert.Equal(t, "yellow", cfg.AppOptions.AppColors.Table)
	assert.Equal(t, "39", cfg.AppOptions.AppColors.Menu)
	assert.Equal(t, "#ff8800", cfg.AppOptions.AppColors.DetailsForm)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/jiraclui-test/app.log", cfg.LogFile)
	require.NotNil(t, cfg.TUI.Enabled)
	assert.True(t, *cfg.TUI.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	path := writeConfig(t, `
project_names: [PRA]
api_url: https://jira.example.com
api_token: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxTableEntry, cfg.AppOptions.MaxTableEntry)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "cyan", cfg.AppOptions.AppColors.Menu)
	assert.Equal(t, "white", cfg.AppOptions.AppColors.Table)
	assert.Equal(t, "/var/state/jiraclui/jiraclui.log", cfg.LogFile)
	assert.Empty(t, cfg.Users)
}

func TestLoad_MissingEssentials(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing []string
	}{
		{
			name:    "empty file",
			body:    "{}",
			missing: []string{"project_names", "api_url", "api_token"},
		},
		{
			name:    "no token",
			body:    "project_names: [PRA]\napi_url: https://jira.example.com\n",
			missing: []string{"api_token"},
		},
		{
			name:    "no projects",
			body:    "api_url: https://jira.example.com\napi_token: x\n",
			missing: []string{"project_names"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.True(t, IsConfigurationError(err), "got %v", err)

			var ce *ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.missing, ce.Missing)
		})
	}
}

func TestLoad_NoPath(t *testing.T) {
	_, err := Load("")
	assert.True(t, IsConfigurationError(err))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad timeout", "project_names: [P]\napi_url: u\napi_token: t\nhttp_timeout: soon\n"},
		{"negative timeout", "project_names: [P]\napi_url: u\napi_token: t\nhttp_timeout: -1s\n"},
		{"bad level", "project_names: [P]\napi_url: u\napi_token: t\nlog:\n  level: loud\n"},
		{"blank project", "project_names: [\" \"]\napi_url: u\napi_token: t\n"},
		{"not yaml", "project_names: [P\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.False(t, IsConfigurationError(err))
		})
	}
}

func TestGenerateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, GenerateSample(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PRA", "PRB", "PRC"}, cfg.ProjectNames)
	assert.Equal(t, "https://jira.example.com", cfg.APIURL)
	assert.Equal(t, 200, cfg.AppOptions.MaxTableEntry)
	assert.Equal(t, "yellow", cfg.AppOptions.AppColors.Table)
}
