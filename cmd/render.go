package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JTMarcu/project-alanna/pkg/renderer"
	"github.com/JTMarcu/project-alanna/pkg/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var watchInput bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render <input.csv> <output.pdf>",
	Short: "Render a content table to a PDF résumé",
	Long: `Render a CSV content table with header section,subsection,content to a PDF.

personal_info must contain name and target_roles. Other personal_info rows form the
contact line, except portfolio which is printed at the bottom of the last page.
Wrap text in **double asterisks** to set it in bold.

Example:
  alanna render resume.csv resume.pdf
  alanna render resume.csv out/resume.pdf --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "Re-render whenever the input table changes")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	inputPath := args[0]
	outputPath := args[1]

	var logger *zap.Logger
	logger, err = newLogger(loggingFromConfig())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	r := renderer.New(logger)

	err = renderOnce(r, inputPath, outputPath)
	if !watchInput {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", inputPath)

	w := watch.New(inputPath, watch.DefaultDebounce, logger)
	err = w.Run(ctx, func(context.Context) (renderErr error) {
		renderErr = renderOnce(r, inputPath, outputPath)
		if renderErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", renderErr)
		}
		return renderErr
	})

	return err
}

// renderOnce renders inputPath and prints the confirmation line.
func renderOnce(r *renderer.Renderer, inputPath, outputPath string) (err error) {
	if getVerbose() {
		fmt.Printf("Rendering %s\n", inputPath)
	}

	var result renderer.Result
	result, err = r.RenderFile(inputPath, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Resume PDF saved to %s\n", result.Output)

	if getVerbose() {
		fmt.Printf("  Pages: %d\n", result.Pages)
		fmt.Printf("  Lines: %d\n", result.Lines)
	}
	if result.MalformedRows > 0 {
		fmt.Printf("Warning: %d row(s) have unbalanced ** markup\n", result.MalformedRows)
	}

	return err
}
