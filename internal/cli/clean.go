package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/clipscrub/clipscrub/internal/clipboard"
	"github.com/clipscrub/clipscrub/internal/report"
	"github.com/spf13/cobra"
)

// runClean performs a one-shot sanitize: clipboard in place by default, or
// file/stdin to stdout when those modes are enabled.
func runClean(cmd *cobra.Command, args []string) error {
	if flagStdin && flagFile != "" {
		return fmt.Errorf("--stdin and --file are mutually exclusive")
	}

	app, ok := newApp()
	if !ok {
		return nil
	}
	defer app.log.Sync()

	writer, err := report.NewWriter(app.cfg.Report.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	if flagStdin || flagFile != "" {
		return cleanStream(app, writer)
	}
	return cleanClipboard(app, writer)
}

func cleanClipboard(app *app, writer report.Writer) error {
	ctx := context.Background()

	board, err := clipboard.NewSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil
	}

	input, err := board.Read(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil
	}

	result := app.engine.Scrub(input, app.redactOptions())

	if err := board.Write(ctx, result.Text); err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil
	}

	if err := writer.Write(os.Stdout, report.FromResult(result)); err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
	}
	return nil
}

// cleanStream sanitizes stdin or a file and prints the result to stdout,
// with the report on stderr so the text stays pipeable.
func cleanStream(app *app, writer report.Writer) error {
	var input []byte
	var err error

	if flagStdin {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(flagFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil
	}

	result := app.engine.Scrub(string(input), app.redactOptions())
	fmt.Fprint(os.Stdout, result.Text)

	if err := writer.Write(os.Stderr, report.FromResult(result)); err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
	}
	return nil
}
