package config

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mailpluck/pluck-cli/internal/clipboard"
	"github.com/mailpluck/pluck-cli/internal/extractor"
)

// NewExtractor creates an extraction client using current configuration
func NewExtractor(logger zerolog.Logger, userAgent string) (*extractor.Client, error) {
	opts := []extractor.Option{
		extractor.WithTimeout(GetTimeout()),
		extractor.WithRateLimit(GetRateLimit()),
		extractor.WithLogger(logger),
	}
	if userAgent != "" {
		opts = append(opts, extractor.WithUserAgent(userAgent))
	}

	client, err := extractor.New(GetEndpoint(), opts...)
	if err != nil {
		return nil, fmt.Errorf("endpoint %q: %w", GetEndpoint(), err)
	}
	return client, nil
}

// NewClipboard returns the configured clipboard backend. OSC 52 sequences go to out.
func NewClipboard(out io.Writer) (clipboard.Writer, error) {
	return clipboard.New(GetClipboard(), out)
}
