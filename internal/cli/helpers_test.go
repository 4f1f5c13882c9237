package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between in-process runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// isolate points pluck at an empty config directory and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLUCK_CONFIG_DIR", dir)
	for _, env := range []string{"PLUCK_ENDPOINT", "PLUCK_TIMEOUT", "PLUCK_CLIPBOARD", "PLUCK_OUTPUT",
		"PLUCK_RATE_LIMIT", "PLUCK_CONCURRENCY", "PLUCK_LOG_LEVEL", "PLUCK_LOG_FILE"} {
		t.Setenv(env, "")
	}
	return dir
}

// executeCommand runs pluck in-process and captures its output.
func executeCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	originalLogger := log.Logger
	t.Cleanup(func() {
		log.Logger = originalLogger
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	resetFlags(rootCmd)
	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

// fakeService is an extraction service keyed by the requested page URL.
type fakeService struct {
	mu       sync.Mutex
	pages    map[string][]string
	failures map[string]int
	requests []string
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{pages: map[string][]string{}, failures: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	t.Setenv("PLUCK_ENDPOINT", srv.URL+"/extract-emails")
	t.Setenv("PLUCK_CLIPBOARD", "none")
	return f
}

func (f *fakeService) serve(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")

	f.mu.Lock()
	f.requests = append(f.requests, target)
	status, failing := f.failures[target]
	emails := f.pages[target]
	f.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}
	if emails == nil {
		emails = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"emails": emails})
}

func (f *fakeService) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}
