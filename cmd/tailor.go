package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/JTMarcu/project-alanna/pkg/config"
	"github.com/JTMarcu/project-alanna/pkg/jd"
	"github.com/JTMarcu/project-alanna/pkg/llm"
	"github.com/JTMarcu/project-alanna/pkg/renderer"
	"github.com/JTMarcu/project-alanna/pkg/resume"
	"github.com/JTMarcu/project-alanna/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var jobID string

//nolint:gochecknoglobals // Cobra boilerplate
var skipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var tailorCmd = &cobra.Command{
	Use:   "tailor <jd-file-or-url>",
	Short: "Tailor the master table to a job description",
	Long: `Ask an LLM to trim the master content table to a job description, then write
the tailored table, a cover letter, the job description and the rendered PDF.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)
- "-" to read it from standard input

Example:
  alanna tailor jd.txt --company "Acme Corp"
  alanna tailor https://example.com/jobs/123 --company "Acme" --job-id "req-12345"
  pbpaste | alanna tailor - --company "Acme" --skip-pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runTailor,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tailorCmd)
	tailorCmd.Flags().StringVar(&company, "company", "", "Company name (prompted for if not provided)")
	tailorCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	tailorCmd.Flags().StringVar(&jobID, "job-id", "", "Optional job/req ID to differentiate multiple applications (e.g., 'req-12345')")
	tailorCmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Skip PDF generation (useful for editing the table first)")
}

func runTailor(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Setup: load config, logger, JD and master table
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var logger *zap.Logger
	logger, err = newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var jobDescription string
	jobDescription, err = fetchAndLogJD(ctx, args[0])
	if err != nil {
		return err
	}

	var masterCSV string
	masterCSV, err = loadMasterTable(cfg.MasterTable)
	if err != nil {
		return err
	}

	var completer llm.Completer
	completer, err = llm.NewCompleter(cfg.Provider, cfg.APIKey(), cfg.GetModel())
	if err != nil {
		return err
	}

	// Tailor
	var result tailor.Result
	result, err = runTailorRequest(ctx, completer, cfg, jobDescription, masterCSV)
	if err != nil {
		return err
	}

	// Name output files after the applicant and company
	name := "resume"
	doc, buildErr := resume.Build(result.Rows)
	if buildErr == nil {
		name = doc.Name
	}

	finalCompany := company
	if finalCompany == "" {
		finalCompany = promptForInput("Company name")
	}

	outDir := getOutputDir(cfg, finalCompany)
	filenames := buildFilenames(outDir, name, finalCompany, jobID)

	err = writeTailoredFiles(result, jobDescription, filenames)
	if err != nil {
		return err
	}

	if result.Letter == "" {
		fmt.Println("Warning: no cover letter found in the response (expected a paragraph starting with \"Dear \")")
	}

	// Render PDF (unless --skip-pdf)
	if skipPDF {
		fmt.Println("\nTable saved (PDF generation skipped):")
		fmt.Printf("  Table: %s\n", filenames.tableCSV)
		fmt.Printf("  Cover letter: %s\n", filenames.coverTXT)
		fmt.Printf("Render later with: alanna render %s %s\n", filenames.tableCSV, filenames.resumePDF)
		return err
	}

	if buildErr != nil {
		err = errors.Wrapf(buildErr, "tailored table saved to %s but cannot be rendered", filenames.tableCSV)
		return err
	}

	var rendered renderer.Result
	rendered, err = renderer.New(logger).Render(result.Rows, filenames.resumePDF)
	if err != nil {
		err = errors.Wrap(err, "failed to render tailored resume")
		return err
	}

	fmt.Println("\n✓ Application files:")
	fmt.Printf("  Resume: %s (%d page(s))\n", rendered.Output, rendered.Pages)
	fmt.Printf("  Table: %s\n", filenames.tableCSV)
	fmt.Printf("  Cover letter: %s\n", filenames.coverTXT)
	fmt.Printf("  Job description: %s\n", filenames.jdTXT)

	return err
}

func runTailorRequest(ctx context.Context, completer llm.Completer, cfg config.Config, jobDescription, masterCSV string) (result tailor.Result, err error) {
	message := fmt.Sprintf("Tailoring resume with %s (%s)...", cfg.Provider, cfg.GetModel())

	// Show spinner unless in verbose mode
	var tailorSpinner *spinner
	if !getVerbose() {
		tailorSpinner = newSpinner(message)
		tailorSpinner.start()
	} else {
		fmt.Println(message)
	}

	result, err = tailor.Tailor(ctx, completer, jobDescription, masterCSV, personalDefaults(cfg))

	if tailorSpinner != nil {
		tailorSpinner.stopSpinner()
	}

	if err != nil {
		if getVerbose() && result.Raw != "" {
			fmt.Printf("Raw response:\n%s\n", result.Raw)
		}
		err = errors.Wrap(err, "tailoring failed")
		return result, err
	}

	fmt.Printf("✓ Tailored table has %d rows\n", len(result.Rows))

	return result, err
}

// personalDefaults converts configured personal_info fallbacks to rows.
func personalDefaults(cfg config.Config) (rows []resume.ContentRow) {
	for _, field := range cfg.PersonalInfoDefaults {
		rows = append(rows, resume.ContentRow{
			Section:    resume.SectionPersonalInfo,
			Subsection: field.Subsection,
			Content:    field.Content,
		})
	}
	return rows
}

func loadMasterTable(path string) (masterCSV string, err error) {
	if getVerbose() {
		fmt.Printf("Loading master table from: %s\n", path)
	}

	var rows []resume.ContentRow
	rows, err = resume.Load(path)
	if err != nil {
		err = errors.Wrap(err, "failed to load master table")
		return masterCSV, err
	}

	masterCSV, err = resume.Format(rows)
	if err != nil {
		return masterCSV, err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d master rows\n", len(rows))
	}

	return masterCSV, err
}

func fetchAndLogJD(ctx context.Context, jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	fetcher := jd.NewFetcher(os.Stdin)
	jobDescription, err = fetcher.Fetch(ctx, jdInput)
	if err != nil && jdInput != jd.Stdin {
		// If fetching failed, offer to accept manual input
		fmt.Printf("\nWarning: Failed to fetch job description: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages (Lever, Workable, etc.)")
		fmt.Println("\nPlease paste the job description text below.")
		fmt.Println("When finished, press Ctrl+D (Unix/Mac) or Ctrl+Z then Enter (Windows):")
		fmt.Println()

		jobDescription, err = fetcher.Fetch(ctx, jd.Stdin)
		if err != nil {
			err = errors.Wrap(err, "no job description provided")
			return jobDescription, err
		}

		fmt.Printf("\nJob description received (%d characters)\n", len(jobDescription))
		return jobDescription, err
	}
	if err != nil {
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

func promptForInput(fieldName string) (input string) {
	fmt.Printf("Please enter %s: ", strings.ToLower(fieldName))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		input = strings.TrimSpace(scanner.Text())
	}

	return input
}

// getOutputDir returns the application directory from flag or config.
func getOutputDir(cfg config.Config, company string) (outDir string) {
	outDir = outputDir
	if outDir == "" {
		outDir = filepath.Join(cfg.Defaults.OutputDir, sanitizeFilename(company))
	}
	return outDir
}

// outputFilenames holds all output file paths.
type outputFilenames struct {
	tableCSV  string
	resumePDF string
	coverTXT  string
	jdTXT     string
}

// buildFilenames generates all output file paths.
func buildFilenames(outDir, name, company, jobID string) (filenames outputFilenames) {
	baseFilename := sanitizeFilename(name)
	if sanitizedCompany := sanitizeFilename(company); sanitizedCompany != "" {
		baseFilename = baseFilename + "-" + sanitizedCompany
	}

	// Optional job ID
	if jobID != "" {
		baseFilename = baseFilename + "-" + sanitizeFilename(jobID)
	}

	filenames = outputFilenames{
		tableCSV:  filepath.Join(outDir, baseFilename+"-resume.csv"),
		resumePDF: filepath.Join(outDir, baseFilename+"-resume.pdf"),
		coverTXT:  filepath.Join(outDir, baseFilename+"-cover.txt"),
		jdTXT:     filepath.Join(outDir, baseFilename+"-jd.txt"),
	}

	return filenames
}

// writeTailoredFiles writes the table, cover letter and job description.
func writeTailoredFiles(result tailor.Result, jobDescription string, filenames outputFilenames) (err error) {
	err = renderer.WriteText(result.Table, filenames.tableCSV)
	if err != nil {
		err = errors.Wrap(err, "failed to write tailored table")
		return err
	}

	if result.Letter != "" {
		err = renderer.WriteText(result.Letter, filenames.coverTXT)
		if err != nil {
			err = errors.Wrap(err, "failed to write cover letter")
			return err
		}
	}

	err = renderer.WriteText(jobDescription, filenames.jdTXT)
	if err != nil {
		err = errors.Wrap(err, "failed to write job description file")
		return err
	}

	if getVerbose() {
		fmt.Printf("Wrote %s\n", filenames.tableCSV)
	}

	return err
}

func sanitizeFilename(name string) (sanitized string) {
	// Remove common company suffixes
	suffixes := []string{
		" LLC", " llc",
		" Inc.", " inc.",
		" Inc", " inc",
		" Corporation", " corporation",
		" Corp.", " corp.",
		" Corp", " corp",
		" Limited", " limited",
		" Ltd.", " ltd.",
		" Ltd", " ltd",
		", LLC", ", llc",
		", Inc.", ", inc.",
		", Inc", ", inc",
	}

	sanitized = name
	for _, suffix := range suffixes {
		sanitized = strings.TrimSuffix(sanitized, suffix)
	}

	// Convert to lowercase
	sanitized = strings.ToLower(sanitized)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// Trim hyphens from ends
	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
