//go:build e2e

// Package e2e contains end-to-end tests for the pluck binary.
//
// By default the tests run against a local stand-in for the extraction
// service. Set PLUCK_E2E_ENDPOINT to run them against a real deployment,
// together with PLUCK_E2E_PAGE (a page it can fetch) and
// PLUCK_E2E_PAGE_EMAILS (comma-separated addresses published on it).
//
// Run with:
//
//	go build -o pluck ./cmd/pluck && go test -tags=e2e -v -timeout 5m ./e2e/...
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

var (
	endpoint     string
	pageURL      string
	pageEmails   []string
	pluckBinPath string // Absolute path to the pluck binary
)

// Pages known to the local service.
const (
	contactPage = "https://contact.example/team"
	emptyPage   = "https://empty.example/"
	brokenPage  = "https://broken.example/"
)

var contactEmails = []string{"alice@contact.example", "bob@contact.example", "support@contact.example"}

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		fmt.Fprintln(os.Stderr, "Note: .env file not found at project root")
	}

	pluckBinPath, _ = filepath.Abs("../pluck")
	if _, err := os.Stat(pluckBinPath); os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "Error: pluck binary not found. Run 'go build -o pluck ./cmd/pluck' first")
		os.Exit(1)
	}

	stop := func() {}
	endpoint = os.Getenv("PLUCK_E2E_ENDPOINT")
	if endpoint == "" {
		srv := httptest.NewServer(localService())
		stop = srv.Close
		endpoint = srv.URL + "/extract-emails"
		pageURL = contactPage
		pageEmails = contactEmails
	} else {
		pageURL = os.Getenv("PLUCK_E2E_PAGE")
		if raw := os.Getenv("PLUCK_E2E_PAGE_EMAILS"); raw != "" {
			pageEmails = strings.Split(raw, ",")
		}
	}

	fmt.Fprintln(os.Stderr, "Running e2e tests...")
	fmt.Fprintln(os.Stderr, "Endpoint:", endpoint)

	code := m.Run()
	stop()
	os.Exit(code)
}

// localService answers like the extraction service for a fixed set of pages.
func localService() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /extract-emails", func(w http.ResponseWriter, r *http.Request) {
		emails := []string{}
		switch r.URL.Query().Get("url") {
		case contactPage:
			emails = contactEmails
		case brokenPage:
			http.Error(w, "upstream fetch failed", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]string{"emails": emails})
	})
	return mux
}

// requireLocal skips tests that depend on pages only the local service knows.
func requireLocal(t *testing.T) {
	t.Helper()
	if os.Getenv("PLUCK_E2E_ENDPOINT") != "" {
		t.Skip("needs the local extraction service")
	}
}

// requirePage skips tests that need a page with known addresses.
func requirePage(t *testing.T) {
	t.Helper()
	if pageURL == "" || len(pageEmails) == 0 {
		t.Skip("PLUCK_E2E_PAGE and PLUCK_E2E_PAGE_EMAILS not set")
	}
}

// ============================================================================
// CLI Execution Helpers
// ============================================================================

// runPluck executes the pluck CLI with given arguments and returns output.
// Each test gets an isolated config directory.
func runPluck(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	return runPluckWithConfig(t, t.TempDir(), args...)
}

// runPluckWithConfig executes the pluck CLI with a specific config directory.
func runPluckWithConfig(t *testing.T, configDir string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	return runPluckEnv(t, configDir, nil, args...)
}

// runPluckEnv executes the pluck CLI with extra environment variables.
func runPluckEnv(t *testing.T, configDir string, extraEnv []string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(pluckBinPath, args...)
	cmd.Dir = configDir // Run from the config directory for relative paths

	// Build environment, converting GOCOVERDIR to absolute path relative to project root
	env := make([]string, 0, len(os.Environ()))
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "PLUCK_") {
			continue
		}
		if strings.HasPrefix(e, "GOCOVERDIR=") {
			coverDir := strings.TrimPrefix(e, "GOCOVERDIR=")
			if !filepath.IsAbs(coverDir) {
				projectRoot := filepath.Dir(pluckBinPath)
				e = "GOCOVERDIR=" + filepath.Join(projectRoot, coverDir)
			}
		}
		env = append(env, e)
	}

	cmd.Env = append(env,
		"PLUCK_ENDPOINT="+endpoint,
		"PLUCK_CONFIG_DIR="+configDir,
		"PLUCK_CLIPBOARD=none",
		"NO_COLOR=1", // Disable color output for easier parsing
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode = 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		// Other error (e.g., binary not found)
		t.Logf("exec error: %v", err)
		exitCode = -1
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode
}

// Session mirrors one entry of 'pluck extract -o json'.
type Session struct {
	URL        string   `json:"url"`
	Status     string   `json:"status"`
	Emails     []string `json:"emails"`
	Count      int      `json:"count"`
	DurationMs int64    `json:"durationMs"`
	Message    string   `json:"message"`
	SavedTo    string   `json:"savedTo"`
}

// extractJSON runs 'pluck extract -o json' and parses the sessions.
func extractJSON(t *testing.T, args ...string) ([]Session, int) {
	t.Helper()
	args = append([]string{"extract", "--output", "json"}, args...)
	stdout, stderr, code := runPluck(t, args...)

	var sessions []Session
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions),
		"failed to parse JSON output: stdout=%s, stderr=%s", stdout, stderr)
	return sessions, code
}
