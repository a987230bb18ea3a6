package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultCLIConfig(), cfg, "missing file yields defaults")

	cfg.Transport = "http"
	cfg.Unit = units.FtIn
	require.NoError(t, saveConfig(cfg))

	info, err := os.Stat(filepath.Join(home, ".cabinetry", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	bad := defaultCLIConfig()
	bad.Transport = "carrier-pigeon"
	assert.Error(t, saveConfig(bad))

	filled := cliConfig{Unit: "furlongs"}.withDefaults()
	assert.Equal(t, defaultCLIConfig(), filled)
}

func TestAPIClientRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(domain.Project{ID: 3, Name: in["name"], Unit: units.MM})
		case "/api/modules/9":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	defer srv.Close()

	cfg := cliConfig{Transport: "http", Server: srv.URL + "/"}
	ctx := context.Background()

	var project domain.Project
	require.NoError(t, doProjectsCreate(ctx, cfg, "Kitchen", "", "", &project))
	assert.Equal(t, uint(3), project.ID)
	assert.Equal(t, "Kitchen", project.Name)

	require.NoError(t, doModulesDelete(ctx, cfg, 9))

	err := doOutputsGet(ctx, cfg, 5, &domain.OutputSet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api error (404)")
}

func TestPrintOutputsSections(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = os.Stdout })

	in, err := parsePlanInput([]byte("modules:\n  - name: B1\n"))
	require.NoError(t, err)
	out, err := computePlan(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, printOutputs(out, sectionDoors, units.Inches))
	assert.Contains(t, buf.String(), "B1-D1")
	assert.Contains(t, buf.String(), "23.46 in")

	buf.Reset()
	require.NoError(t, printOutputs(out, sectionAll, units.MM))
	for _, header := range []string{"== doors ==", "== cut-list ==", "== hardware ==", "== takeoff ==", "grand total:"} {
		assert.True(t, strings.Contains(buf.String(), header), header)
	}

	assert.Error(t, printOutputs(out, "invoice", units.MM))
}
