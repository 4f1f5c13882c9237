package cliutil

import (
	"time"

	"github.com/mailpluck/pluck-cli/internal/workflow"
)

// SessionJSON converts a finished session to a map for JSON output.
func SessionJSON(st workflow.State, elapsed time.Duration) map[string]interface{} {
	emails := st.Emails
	if emails == nil {
		emails = []string{}
	}
	m := map[string]interface{}{
		"url":        st.URL,
		"status":     st.Status.String(),
		"emails":     emails,
		"count":      len(st.Emails),
		"durationMs": elapsed.Milliseconds(),
	}
	if st.ErrorMessage != "" {
		m["message"] = st.ErrorMessage
	}
	if !st.Copied.IsNone() {
		m["copied"] = true
	}
	return m
}
