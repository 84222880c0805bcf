package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CCAUTO_CONFIG", "")
	t.Setenv("RC_REVIEW_COLLECTOR_BASE_URL", "")
	t.Setenv("RC_REVIEW_WIDGET_ID", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Second, cfg.Carousel.ReviewInterval)
	assert.Equal(t, 6*time.Second, cfg.Carousel.ServiceInterval)
	assert.Equal(t, 50, cfg.Carousel.SwipeThreshold)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Empty(t, cfg.Reviews.BaseURL)
	assert.Empty(t, cfg.Reviews.WidgetID)
}

func TestLoadFileThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
reviews:
  baseUrl: https://file.example.com
  widgetId: from-file
carousel:
  reviewInterval: 3s
ui:
  theme: Neon
`), 0o644))
	t.Setenv("RC_REVIEW_WIDGET_ID", "from-env")
	t.Setenv("CCAUTO_SERVICE_INTERVAL", "2s")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.Reviews.BaseURL)
	assert.Equal(t, "from-env", cfg.Reviews.WidgetID)
	assert.Equal(t, 3*time.Second, cfg.Carousel.ReviewInterval)
	assert.Equal(t, 2*time.Second, cfg.Carousel.ServiceInterval)
	assert.Equal(t, "neon", cfg.UI.Theme)
}

func TestLoadPicksUpWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CCAUTO_CONFIG", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("carousel:\n  swipeThreshold: 8\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Carousel.SwipeThreshold)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Carousel.ReviewInterval = 0
	cfg.Carousel.SwipeThreshold = -1
	cfg.UI.Theme = "sparkly"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviewInterval")
	assert.Contains(t, err.Error(), "swipeThreshold")
	assert.Contains(t, err.Error(), "sparkly")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
