package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcin-skalski/jiraclui/internal/config"
)

func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := fmt.Sprintf(`project_names: [PRA]
users: [bob]
api_url: %s
api_token: secret
log_file: %s
app_options:
  max_table_entry: 10
`, apiURL, filepath.Join(dir, "jiraclui.log"))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func jiraServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/rest/api/2/issue/PRA-1":
			_, _ = io.WriteString(w, `{"key":"PRA-1","fields":{"project":{"name":"Project A"},"summary":"Fix bug","description":"it crashes","assignee":{"displayName":"Bob"},"reporter":null,"status":{"name":"Open"}}}`)
		case "/rest/api/2/search":
			_, _ = io.WriteString(w, `{"issues":[{"key":"PRA-1","fields":{"project":{"name":"Project A"},"summary":"Fix bug","assignee":{"displayName":"Bob"},"status":{"name":"Open"}}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"errorMessages":["Issue Does Not Exist"]}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI([]string{"--version"}, "")
	assert.Equal(t, 0, code)
	assert.Equal(t, "jiraclui dev\n", out)
}

func TestRun_Help(t *testing.T) {
	code, _, errOut := runCLI([]string{"-h"}, "")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "--generate-config")
}

func TestRun_BadFlags(t *testing.T) {
	code, _, errOut := runCLI([]string{"--nope"}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown flag")

	code, _, errOut = runCLI([]string{"extra"}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unexpected argument: extra")
}

func TestRun_MissingConfig(t *testing.T) {
	code, _, errOut := runCLI(nil, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing essential parameters")
	assert.Contains(t, errOut, "--generate-config")
}

func TestRun_IncompleteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_names: [PRA]\n"), 0o600))

	code, _, errOut := runCLI([]string{"-c", path}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "api_url")
	assert.Contains(t, errOut, "--generate-config")
}

func TestRun_InvalidConfigHasNoHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "project_names: [PRA]\napi_url: http://jira\napi_token: x\nlog:\n  level: loud\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	code, _, errOut := runCLI([]string{"-c", path}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid log.level")
	assert.NotContains(t, errOut, "--generate-config")
}

func TestRun_GenerateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")

	code, out, _ := runCLI([]string{"--generate-config", "--config", path}, "")
	require.Equal(t, 0, code)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.ProjectNames)
}

func TestRun_Lookup(t *testing.T) {
	srv := jiraServer(t)
	path := writeConfig(t, srv.URL)

	code, out, _ := runCLI([]string{"-c", path, "-i", "PRA-1"}, "")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Details for Ticket #PRA-1")
	assert.Contains(t, out, "it crashes")
}

func TestRun_LookupNotFoundExitsZero(t *testing.T) {
	srv := jiraServer(t)
	path := writeConfig(t, srv.URL)

	code, out, _ := runCLI([]string{"-c", path, "--issue", "PRA-404"}, "")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Ticket PRA-404: Issue Does Not Exist")
}

func TestRun_Interactive(t *testing.T) {
	srv := jiraServer(t)
	path := writeConfig(t, srv.URL)

	code, out, _ := runCLI([]string{"-c", path, "--no-tui"}, "f\nbob\nn\n0\nx\n")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Fix bug")
	assert.Contains(t, out, "Enter your choice: ")
	assert.Contains(t, out, "Ticket #PRA-1")
}
