package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/applywizard/internal/config"
)

const productsPage = `{"products":[{"id":1,"title":"Essence Mascara","category":"beauty","price":9.99},{"id":2,"title":"Eyeshadow Palette","category":"beauty","price":20}],"total":3,"skip":0,"limit":2}`

const productsLastPage = `{"products":[{"id":3,"title":"Powder Canister","category":"beauty","price":14.99}],"total":3,"skip":2,"limit":2}`

const usersPage = `{"users":[{"id":1,"firstName":"Emily","lastName":"Johnson","email":"emily@x.dev","company":{"name":"Acme"}}],"total":1,"skip":0,"limit":10}`

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	settings = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so Changed does not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/products" && r.URL.Query().Get("skip") == "0":
			_, _ = w.Write([]byte(productsPage))
		case r.URL.Path == "/products":
			_, _ = w.Write([]byte(productsLastPage))
		case r.URL.Path == "/users":
			_, _ = w.Write([]byte(usersPage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBrowseProducts(t *testing.T) {
	srv := catalogServer(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "", "browse", "products",
		"--config", cfg, "--base-url", srv.URL, "--page-size", "2", "--pages", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "PRODUCT CATALOG")
	assert.Contains(t, out, srv.URL)
	assert.Contains(t, out, "Essence Mascara")
	assert.Contains(t, out, "Powder Canister")
	assert.Contains(t, out, "[3/3 items]")
	assert.Contains(t, out, "no more items", "third page is skipped once the list is exhausted")
}

func TestBrowseUsers(t *testing.T) {
	srv := catalogServer(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "", "browse", "users", "--config", cfg, "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "USER DIRECTORY")
	assert.Contains(t, out, "Emily Johnson")
	assert.Contains(t, out, "Acme")
}

func TestBrowse_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "", "browse", "products", "--config", cfg, "--base-url", srv.URL)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "browse products")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Could not load products")
	assert.Contains(t, out, "Troubleshooting:")
}

func TestLoadSettings_RejectsBadOverride(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, "", "browse", "users", "--config", cfg, "--page-size=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestConfigInit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "", "config", "init", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Settings written")
	assert.FileExists(t, cfg)

	s, err := config.Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, s.API.BaseURL)
}

func TestConfigInit_ExistingFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("# keep me\nversion: 1\n"), 0600))

	out, err := execute(t, "n\n", "config", "init", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "FILE EXISTS")
	assert.Contains(t, out, "Operation cancelled.")

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# keep me")

	out, err = execute(t, "", "config", "init", "--config", cfg, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings written")

	data, err = os.ReadFile(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "# keep me")
}

func TestConfigShow_AppliesFlags(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "", "config", "show", "--config", cfg, "--base-url", "http://mirror.local", "--page-size", "25")
	require.NoError(t, err)

	assert.Contains(t, out, "base_url: http://mirror.local")
	assert.Contains(t, out, "page_size: 25")
}

func TestConfigPath(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "", "config", "path", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg+"\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "applywizard "))
}
