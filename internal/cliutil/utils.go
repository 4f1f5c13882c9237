package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailpluck/pluck-cli/internal/config"
)

// GetOutput returns the output format with priority: flag > env > config > default.
func GetOutput(cmd *cobra.Command) string {
	if flag := cmd.Flag("output"); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return config.GetDefaultOutput()
}

// OutputJSON marshals v to indented JSON and prints it to w.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// SanitizeFilename replaces unsafe characters for use in filenames.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '@' || r == '.' || r == ':' {
			b.WriteByte('_')
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HostFilename returns "<host>.txt" for rawURL, falling back to "emails.txt".
func HostFilename(rawURL string) string {
	name := ""
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		name = SanitizeFilename(u.Host)
	}
	if name == "" {
		name = "emails"
	}
	return name + ".txt"
}

// FormatDuration formats an elapsed time as a short string (e.g., "850ms", "1.2s", "2m5s").
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
