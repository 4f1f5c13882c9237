package browser

import (
	"fmt"
	"net/mail"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Allowed URL schemes for security
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Hooks replaced in tests.
var (
	execCommand = exec.Command
	goos        = runtime.GOOS
	openURLFunc = openURLInternal
)

// OpenURL opens a URL in the default browser.
// Only http, https, and mailto schemes are allowed.
func OpenURL(rawURL string) error {
	return openURLFunc(rawURL)
}

// Mailto opens the default mail client with a new message to address.
func Mailto(address string) error {
	addr, err := mail.ParseAddress(address)
	if err != nil {
		return fmt.Errorf("invalid email address %q: %w", address, err)
	}
	u := url.URL{Scheme: "mailto", Opaque: addr.Address}
	return OpenURL(u.String())
}

func openURLInternal(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowedSchemes[scheme] {
		return fmt.Errorf("URL scheme %q not allowed", scheme)
	}

	var cmd *exec.Cmd

	switch goos {
	case "darwin":
		cmd = execCommand("open", rawURL)
	case "linux":
		cmd = execCommand("xdg-open", rawURL)
	case "windows":
		cmd = execCommand("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}

	return cmd.Start()
}
