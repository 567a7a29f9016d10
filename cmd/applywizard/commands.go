package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/talentdesk/applywizard/internal/config"
	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
	"github.com/talentdesk/applywizard/internal/logging"
	"github.com/talentdesk/applywizard/internal/paginate"
	"github.com/talentdesk/applywizard/internal/prompt"
	"github.com/talentdesk/applywizard/internal/ui"
	"github.com/talentdesk/applywizard/internal/wizard/tui"
)

// Command flags
var (
	configPath  string
	baseURL     string
	pageSize    int
	logLevel    string
	plainMode   bool
	outputPath  string
	browsePages int
	forceInit   bool
)

// settings is loaded once per invocation by loadSettings.
var settings *config.Settings

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <user config dir>/applywizard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Items per page (overrides api.page_size)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")

	addWizardFlags(rootCmd)
	addWizardFlags(wizardCmd)

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

func addWizardFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&plainMode, "plain", false, "Ask line by line instead of the full-screen wizard")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the submitted application to this file (.json for JSON, YAML otherwise)")
}

// loadSettings reads the config file, applies flag overrides and starts logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		s.API.BaseURL = baseURL
	}
	if flags.Changed("page-size") {
		s.API.PageSize = pageSize
	}
	if flags.Changed("log-level") {
		s.Logging.Level = logLevel
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logFile, err := s.ResolveLogFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	if err := logging.Initialize(s.Logging.Level, logFile); err != nil {
		return err
	}

	logging.Debug("Settings loaded",
		zap.String("base_url", s.API.BaseURL),
		zap.Int("page_size", s.API.PageSize),
		zap.Duration("fetch_timeout", s.API.FetchTimeout))

	settings = s
	return nil
}

// newLoaders builds the product and user loaders from settings.
func newLoaders(s *config.Settings) (*paginate.Loader[directory.Product], *paginate.Loader[directory.User]) {
	client := directory.NewClient(s.API.BaseURL)
	client.SetTimeout(s.API.FetchTimeout)
	client.SetRetry(s.API.MaxRetries, s.API.RetryDelay)

	products := paginate.New(paginate.Products(client),
		paginate.WithName(string(directory.KindProducts)),
		paginate.WithPageSize(s.API.PageSize),
		paginate.WithTimeout(s.API.FetchTimeout),
	)
	users := paginate.New(paginate.Users(client),
		paginate.WithName(string(directory.KindUsers)),
		paginate.WithPageSize(s.API.PageSize),
		paginate.WithTimeout(s.API.FetchTimeout),
	)
	return products, users
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// wizardCmd launches the wizard explicitly
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the application wizard",
	Long: `Launch the job application wizard.

The full-screen wizard supports keyboard and mouse: tab moves between
fields, enter opens a dropdown, and scrolling to the end of a dropdown
loads the next page. Use --plain for line-by-line prompts instead.`,
	Example: `  # Launch the full-screen wizard (also the default command)
  applywizard

  # Save the submitted application as JSON
  applywizard wizard --output application.json

  # Line-by-line prompts against a local mirror
  applywizard --plain --base-url http://localhost:8080`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("the wizard needs an interactive terminal")
	}

	products, users := newLoaders(settings)
	if plainMode {
		return runPlainWizard(cmd.Context(), cmd, products, users)
	}

	model := tui.NewAppModel(tui.Options{
		Products:             products,
		Users:                users,
		ShowFetchErrors:      settings.UI.ShowFetchErrors,
		ResetDropdownOnClose: settings.UI.ResetDropdownOnClose,
		OutputPath:           outputPath,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if settings.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("wizard error: %w", err)
	}

	m, ok := final.(tui.AppModel)
	if !ok || m.CurrentScreen != tui.ScreenSubmitted || m.Submitted == nil {
		return nil
	}
	if m.SubmitErr != nil {
		return fmt.Errorf("failed to save application: %w", m.SubmitErr)
	}
	printSubmitted(cmd, *m.Submitted, m.SavedTo)
	return nil
}

func runPlainWizard(ctx context.Context, cmd *cobra.Command, products *paginate.Loader[directory.Product], users *paginate.Loader[directory.User]) error {
	w := prompt.New(prompt.Config{
		Driver:          prompt.NewSurveyDriver(os.Stdin, os.Stdout),
		Out:             cmd.OutOrStdout(),
		Products:        products,
		Users:           users,
		ShowFetchErrors: settings.UI.ShowFetchErrors,
	})

	app, err := w.Run(ctx)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Application cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	savedTo := ""
	if outputPath != "" {
		if err := form.WriteFile(app, outputPath); err != nil {
			return fmt.Errorf("failed to save application: %w", err)
		}
		savedTo = outputPath
	}
	logging.Info("Application submitted", zap.String("email", app.Personal.Email))
	printSubmitted(cmd, app, savedTo)
	return nil
}

func printSubmitted(cmd *cobra.Command, app form.Application, savedTo string) {
	details := []ui.Param{
		{Key: "Applicant", Value: app.Personal.FirstName + " " + app.Personal.LastName},
		{Key: "Email", Value: app.Personal.Email},
	}
	if savedTo != "" {
		details = append(details, ui.Param{Key: "Saved To", Value: savedTo})
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Application submitted", details...)
}

// browseCmd lists remote entries without the wizard
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List the entries offered by the wizard's dropdowns",
	Long: `Fetch pages of the product catalog or the user directory and print them
as a table. Useful for checking connectivity and the configured base URL.`,
}

var browseProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products (experience levels)",
	Example: `  # First page
  applywizard browse products

  # First three pages of 20
  applywizard browse products --pages 3 --page-size 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, _ := newLoaders(settings)
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Product Catalog", "applywizard browse products", browseParams()...)

		items, err := browse(cmd.Context(), p, "Loading products...", products, browsePages)
		if len(items) > 0 {
			p.PrintProducts(items)
		}
		return browseResult(p, "products", err)
	},
}

var browseUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List directory users (departments)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, users := newLoaders(settings)
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("User Directory", "applywizard browse users", browseParams()...)

		items, err := browse(cmd.Context(), p, "Loading users...", users, browsePages)
		if len(items) > 0 {
			p.PrintUsers(items)
		}
		return browseResult(p, "users", err)
	},
}

func init() {
	browseCmd.PersistentFlags().IntVar(&browsePages, "pages", 1, "Number of pages to fetch")
	browseCmd.AddCommand(browseProductsCmd)
	browseCmd.AddCommand(browseUsersCmd)
}

func browseParams() []ui.Param {
	return []ui.Param{
		{Key: "Source", Value: settings.API.BaseURL},
		{Key: "Page Size", Value: strconv.Itoa(settings.API.PageSize)},
		{Key: "Pages", Value: strconv.Itoa(browsePages)},
	}
}

// browse loads up to pages pages and prints a progress summary. It stops at
// the first failure and returns what was loaded.
func browse[T any](ctx context.Context, p *ui.Printer, label string, l *paginate.Loader[T], pages int) ([]T, error) {
	if pages < 1 {
		pages = 1
	}
	progress := ui.NewProgress(label, pages)

	var fetchErr error
	for i := 1; i <= pages; i++ {
		before := l.Len()

		var err error
		if i == 1 {
			err = l.Load(ctx)
		} else {
			if !l.State().HasMore {
				progress.UpdateStep(i, ui.StepSkipped, "no more items")
				continue
			}
			err = l.RequestMore(ctx)
		}
		if err != nil {
			progress.UpdateStep(i, ui.StepFailed, directory.ShortMessage(err))
			fetchErr = err
			break
		}

		st := l.State()
		progress.UpdateStep(i, ui.StepComplete, fmt.Sprintf("%d items", len(st.Items)-before))
		progress.SetLoaded(len(st.Items), st.Total)
	}

	p.PrintProgress(progress)
	p.Newline()
	return l.State().Items, fetchErr
}

func browseResult(p *ui.Printer, kind string, err error) error {
	if err == nil {
		return nil
	}
	p.PrintError("Could not load "+kind, err, ui.FetchTroubleshooting(err)...)
	return fmt.Errorf("browse %s: %w", kind, err)
}

// configCmd manages the settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
	// Subcommands load settings themselves so a broken file can be replaced.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		if _, err := os.Stat(path); err == nil && !forceInit {
			if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), p.Width(), path) {
				return nil
			}
		}

		if err := config.NewSettings().Save(path); err != nil {
			return err
		}
		p.PrintSuccess("Settings written", ui.Param{Key: "Path", Value: path})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings (file plus flags)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(cmd, args); err != nil {
			return err
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		data, err := settings.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Settings", "applywizard config show", ui.Param{Key: "File", Value: path})
		p.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
