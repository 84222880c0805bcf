package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/ccauto/internal/model"
	"github.com/Makepad-fr/ccauto/internal/store/catalog"
)

// isolate runs the command in an empty working directory with no endpoint
// configured and logging off.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CCAUTO_CONFIG", "")
	t.Setenv("CCAUTO_LOG_FILE", "off")
	t.Setenv("RC_REVIEW_COLLECTOR_BASE_URL", "")
	t.Setenv("RC_REVIEW_WIDGET_ID", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ccauto dev\n", out)
}

func TestReviewsFallbackJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "reviews", "--json", "--theme", "mono")
	require.NoError(t, err)

	var got []model.Review
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, catalog.Default().Reviews, got)
}

func TestReviewsFromEndpoint(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"reviews":[{"text":"  Great!  ","author_name":"Jo"},{"text":"   "}]}`)
	}))
	defer srv.Close()
	t.Setenv("RC_REVIEW_COLLECTOR_BASE_URL", srv.URL)
	t.Setenv("RC_REVIEW_WIDGET_ID", "w-1")

	out, err := execute(t, "reviews", "--theme", "mono")
	require.NoError(t, err)
	assert.Contains(t, out, "1/1")
	assert.Contains(t, out, `"Great!"`)
	assert.Contains(t, out, "Jo")
}

func TestServices(t *testing.T) {
	isolate(t)
	out, err := execute(t, "services", "--theme", "mono")
	require.NoError(t, err)
	for _, s := range catalog.Default().Services {
		assert.Contains(t, out, s.Title)
	}
}

func TestServicesFromCatalogFile(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"services":[{"title":"Tyres","desc":"Fitting","icon":"circle"}]}`), 0o644))
	t.Setenv("CCAUTO_CATALOG", p)

	out, err := execute(t, "services", "--theme", "mono")
	require.NoError(t, err)
	assert.Contains(t, out, "Tyres")
	assert.NotContains(t, out, "Major Service")
}

func TestCatalogInit(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "catalog", "init", "--theme", "mono")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+catalog.DefaultFileName)

	c, err := catalog.Load(filepath.Join(dir, catalog.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, catalog.Default(), c)

	assert.Equal(t, 2, Run(context.Background(), []string{"catalog", "init"}))
	assert.Equal(t, 0, Run(context.Background(), []string{"catalog", "init", "--force"}))
}

func TestRunExitCodes(t *testing.T) {
	isolate(t)
	assert.Equal(t, 0, Run(context.Background(), []string{"version"}))
	assert.Equal(t, 2, Run(context.Background(), []string{"services", "--theme", "sparkly"}))
	assert.Equal(t, 2, Run(context.Background(), []string{"services", "--nope"}))
	assert.Equal(t, 1, Run(context.Background(), []string{"--config", "missing.yaml", "services"}))
}

func TestLogTarget(t *testing.T) {
	assert.Equal(t, "", logTarget("off", true))
	assert.Equal(t, "-", logTarget("", false))
	assert.Equal(t, "/tmp/x.log", logTarget("/tmp/x.log", true))

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	got := logTarget("", true)
	assert.Equal(t, "ccauto.log", filepath.Base(got))
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
