package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/ccauto/internal/config"
	"github.com/Makepad-fr/ccauto/internal/logging"
	"github.com/Makepad-fr/ccauto/internal/reviews"
	"github.com/Makepad-fr/ccauto/internal/store/catalog"
	"github.com/Makepad-fr/ccauto/internal/ui"
	"github.com/Makepad-fr/ccauto/internal/ui/tui"
)

// Version is stamped at build time.
var Version = "dev"

// errUsage marks errors that should exit with code 2.
var errUsage = errors.New("usage")

// app carries state shared by every subcommand.
type app struct {
	configPath string
	theme      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(root.ErrOrStderr(), err.Error())
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ccauto",
		Short: "CC Auto Repairs in your terminal",
		Long: `ccauto shows the workshop's services and customer reviews as
auto-rotating carousels.

Reviews are loaded from the review collector widget when
RC_REVIEW_COLLECTOR_BASE_URL and RC_REVIEW_WIDGET_ID are set,
otherwise the built-in reviews are shown.

Run without arguments to start the interactive view.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runInteractive,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./ccauto.yaml)")
	root.PersistentFlags().StringVar(&a.theme, "theme", "", "theme: classic, neon or mono")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.AddCommand(a.reviewsCmd(), a.servicesCmd(), a.catalogCmd(), versionCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.theme != "" {
		cfg.UI.Theme = a.theme
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)

	logger, err := logging.New(logTarget(cfg.Log.File, cmd.Root() == cmd), cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// logTarget picks where logs go. The interactive view owns the terminal, so
// by default it logs to a file in the user cache dir; other commands use stderr.
func logTarget(file string, interactive bool) string {
	switch file {
	case "off":
		return ""
	case "":
		if !interactive {
			return "-"
		}
		dir, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(dir, "ccauto")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ""
		}
		return filepath.Join(dir, "ccauto.log")
	}
	return file
}

func (a *app) source() *reviews.Source {
	return reviews.NewSource(
		reviews.Endpoint{BaseURL: a.cfg.Reviews.BaseURL, WidgetID: a.cfg.Reviews.WidgetID},
		reviews.WithHTTPClient(&http.Client{Timeout: a.cfg.Reviews.Timeout}),
		reviews.WithLogger(a.logger.Named("reviews")),
	)
}

func (a *app) loadCatalog() (catalog.Catalog, error) {
	c, err := catalog.Load(a.cfg.Catalog.Path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	c, err := a.loadCatalog()
	if err != nil {
		return err
	}
	a.logger.Info("starting interactive view",
		zap.Bool("remote_reviews", a.cfg.Reviews.BaseURL != "" && a.cfg.Reviews.WidgetID != ""))
	return tui.Run(cmd.Context(), tui.Options{
		Catalog: c,
		Source:  a.source(),
		Config:  a.cfg,
		Logger:  a.logger,
	})
}

func (a *app) reviewsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Resolve the review sequence once and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			items := a.source().Resolve(cmd.Context(), c.Reviews)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			for i, r := range items {
				fmt.Fprintf(out, "%s\n", ui.Current().Muted.Render(fmt.Sprintf("%d/%d", i+1, len(items))))
				fmt.Fprintln(out, ui.ReviewCard(r, 72))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of cards")
	return cmd
}

func (a *app) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "Print the service catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			t := ui.Current()
			lines := []string{t.Title.Render("Our Services"), ""}
			for _, s := range c.Services {
				title := s.Title
				if g, ok := ui.ServiceIcon(s.Icon); ok {
					title = g + "  " + title
				}
				lines = append(lines, t.Primary.Render(title), "  "+s.Description, "")
			}
			ui.Panel(cmd.OutOrStdout(), lines[:len(lines)-1])
			return nil
		},
	}
}

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the fallback content file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in reviews and services to a JSON file for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Catalog.Path
			if len(args) == 1 {
				path = args[0]
			}
			if strings.TrimSpace(path) == "" {
				path = catalog.DefaultFileName
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s already exists (use --force to overwrite)", errUsage, path)
			}
			if err := catalog.Save(path, catalog.Default()); err != nil {
				return fmt.Errorf("save catalog: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ccauto", Version)
		},
	}
}
