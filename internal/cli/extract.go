package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mailpluck/pluck-cli/internal/cliutil"
	"github.com/mailpluck/pluck-cli/internal/clipboard"
	"github.com/mailpluck/pluck-cli/internal/config"
	"github.com/mailpluck/pluck-cli/internal/files"
	"github.com/mailpluck/pluck-cli/internal/output"
	"github.com/mailpluck/pluck-cli/internal/styles"
	"github.com/mailpluck/pluck-cli/internal/workflow"
)

var (
	extractCopy        bool
	extractSave        string
	extractConcurrency int
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>...",
	Short: "Extract emails from one or more pages",
	Long: `Extract the email addresses found on each page and print them.

Pages are processed concurrently (see --concurrency). Each page is an
independent session: a failure on one page does not stop the others, but
the command exits non-zero if any page failed.

Examples:
  pluck extract https://example.com/contact
  pluck extract https://a.example https://b.example --save ./emails
  pluck extract https://example.com --copy
  pluck extract https://example.com -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVarP(&extractCopy, "copy", "c", false,
		"Copy every address found to the clipboard")
	extractCmd.Flags().StringVar(&extractSave, "save", "",
		"Write each page's addresses to <dir>/<host>.txt")
	extractCmd.Flags().IntVarP(&extractConcurrency, "concurrency", "n", 0,
		"Pages to extract at once (default from config)")
}

// sessionResult is the outcome of one page.
type sessionResult struct {
	State   workflow.State
	Elapsed time.Duration
	SavedTo string
}

func runExtract(cmd *cobra.Command, args []string) error {
	ex, err := config.NewExtractor(log.Logger, userAgent())
	if err != nil {
		return err
	}

	limit := config.GetConcurrency()
	if cmd.Flags().Changed("concurrency") {
		if extractConcurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}
		limit = extractConcurrency
	}

	results := make([]sessionResult, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)
	for i, target := range args {
		g.Go(func() error {
			// Clipboard writes happen once, after every page is done.
			ctrl := workflow.New(ex, clipboard.Disabled{},
				workflow.WithLogger(log.Logger),
				workflow.WithContext(ctx),
			)
			defer ctrl.Close()

			start := time.Now()
			ctrl.Await(ctrl.Submit(target))
			res := sessionResult{State: ctrl.State(), Elapsed: time.Since(start)}

			if extractSave != "" && res.State.Status == workflow.StatusSuccess {
				path, err := files.SaveEmails(extractSave, cliutil.HostFilename(target), res.State.Emails)
				if err != nil {
					return fmt.Errorf("failed to save %s: %w", target, err)
				}
				res.SavedTo = path
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var copyErr error
	copied := 0
	if extractCopy {
		copied, copyErr = copyAll(cmd, results)
	}

	out := cmd.OutOrStdout()
	if cliutil.GetOutput(cmd) == "json" {
		sessions := make([]map[string]interface{}, len(results))
		for i, r := range results {
			sessions[i] = cliutil.SessionJSON(r.State, r.Elapsed)
			if r.SavedTo != "" {
				sessions[i]["savedTo"] = r.SavedTo
			}
		}
		if err := cliutil.OutputJSON(out, sessions); err != nil {
			return err
		}
	} else {
		printResults(out, results)
		if extractCopy {
			if copyErr != nil {
				fmt.Fprintln(out, output.PrintWarning("Could not copy to clipboard: "+copyErr.Error()))
			} else if copied > 0 {
				fmt.Fprintln(out, output.PrintSuccess(fmt.Sprintf("Copied %s to clipboard", plural(copied, "email"))))
			}
		}
	}

	failed := 0
	for _, r := range results {
		if r.State.Status == workflow.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d extraction(s) failed", failed, len(results))
	}
	return nil
}

// copyAll writes the unique addresses from every page, in first-seen order.
func copyAll(cmd *cobra.Command, results []sessionResult) (int, error) {
	seen := make(map[string]bool)
	var all []string
	for _, r := range results {
		for _, e := range r.State.Emails {
			if !seen[e] {
				seen[e] = true
				all = append(all, e)
			}
		}
	}
	if len(all) == 0 {
		return 0, nil
	}

	cb, err := config.NewClipboard(cmd.ErrOrStderr())
	if err != nil {
		return 0, err
	}
	if err := cb.WriteText(cmd.Context(), strings.Join(all, "\n")); err != nil {
		log.Warn().Err(err).Msg("failed to copy")
		return 0, err
	}
	return len(all), nil
}

func printResults(w io.Writer, results []sessionResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s %s\n",
			styles.FormatStatus(r.State.Status.String()),
			output.TitleStyle.Render(r.State.URL),
			output.MutedStyle.Render("("+cliutil.FormatDuration(r.Elapsed)+")"))

		switch r.State.Status {
		case workflow.StatusSuccess:
			for _, e := range r.State.Emails {
				fmt.Fprintln(w, output.PrintEmail(e))
			}
		case workflow.StatusEmpty:
			fmt.Fprintln(w, output.PrintInfo(r.State.ErrorMessage))
		case workflow.StatusError:
			fmt.Fprintln(w, output.PrintError(r.State.ErrorMessage))
		}
		if r.SavedTo != "" {
			fmt.Fprintln(w, output.PrintInfo("Saved to "+r.SavedTo))
		}
	}

	if len(results) < 2 {
		return
	}
	table := cliutil.NewTable(
		cliutil.Column{Header: "STATUS", Width: 8},
		cliutil.Column{Header: "EMAILS", Width: 6},
		cliutil.Column{Header: "URL"},
	).WithOutput(w)
	table.PrintHeader()
	for _, r := range results {
		table.PrintRow(r.State.Status.String(), strconv.Itoa(len(r.State.Emails)), r.State.URL)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
