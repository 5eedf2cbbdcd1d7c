package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/repoforge/internal/config"
	"github.com/sevigo/repoforge/internal/github"
	"github.com/sevigo/repoforge/internal/gitignore"
	"github.com/sevigo/repoforge/internal/gitutil"
	"github.com/sevigo/repoforge/internal/logger"
	"github.com/sevigo/repoforge/internal/provision"
)

var (
	configPath  string
	directory   string
	verbose     bool
	githubToken string
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "repoforge",
	Short: "repoforge creates a GitHub repository from a config file and seeds its .gitignore.",
	Long: `repoforge reads a YAML config file, creates the described GitHub repository,
clones it locally, fetches a .gitignore template by name from the
github/gitignore collection, and commits the file back to the remote.

Examples:
  repoforge
  repoforge -c myproject.yml -d ~/src/myproject -v`,
	SilenceUsage: true,
	RunE:         runProvision,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "repoforge.yml", "Path to config file")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory to clone the repo into (default: repo name)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub Token (overrides the config file)")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("REPOFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// stepTimer tracks timing for verbose output. It implements
// provision.Reporter.
type stepTimer struct {
	stepNum int
	start   time.Time
	verbose bool
}

func (t *stepTimer) Step(name string) {
	t.stepNum++
	t.start = time.Now()
	if t.verbose {
		titleColor.Printf("\nStep %d: %s...\n", t.stepNum, name)
	} else {
		fmt.Printf("%s...\n", name)
	}
}

func (t *stepTimer) Done(details ...string) {
	if t.verbose {
		elapsed := time.Since(t.start).Round(time.Millisecond)
		successColor.Printf("   ✓ Done (%s)\n", elapsed)
		for _, d := range details {
			dimColor.Printf("   └── %s\n", d)
		}
	}
}

func runProvision(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	log := logger.New(nil, verbose, "text")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// The token may come from the config file, the --github-token flag, or
	// the REPOFORGE_GITHUB_TOKEN environment variable. Flag and env win.
	if token := viper.GetString("GITHUB_TOKEN"); token != "" {
		cfg.GitHubToken = token
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if verbose {
		echoConfig(cfg)
	}

	timer := &stepTimer{verbose: verbose}
	svc := provision.NewService(
		github.NewPATClient(ctx, cfg.GitHubToken, log),
		gitutil.NewClient(log),
		gitignore.NewFetcher(log),
		log,
		timer,
	)

	result, err := svc.Run(ctx, cfg, directory)
	if err != nil {
		return err
	}

	fmt.Println()
	successColor.Println("Repository setup completed successfully!")
	fmt.Printf("You can now work with your repo at: %s\n", result.ClonePath)
	if result.GitignoreCommitted {
		detail := result.TemplateName
		if result.UsedFallback {
			detail += ", built-in fallback"
		}
		dimColor.Printf("   .gitignore (%s) pushed in commit %s\n", detail, result.CommitSHA)
	}
	return nil
}

// echoConfig prints the loaded configuration. The token is always masked.
func echoConfig(cfg *config.Config) {
	dimColor.Println("Configuration loaded:")
	dimColor.Printf("   github_token: %s\n", strings.Repeat("*", 10))
	dimColor.Printf("   repo_name: %s\n", cfg.RepoName)
	dimColor.Printf("   private: %t\n", cfg.Private)
	dimColor.Printf("   description: %s\n", cfg.Description)
	dimColor.Printf("   homepage: %s\n", cfg.Homepage)
	dimColor.Printf("   has_issues: %t\n", cfg.HasIssues)
	dimColor.Printf("   has_wiki: %t\n", cfg.HasWiki)
	dimColor.Printf("   auto_init: %t\n", cfg.AutoInit)
	dimColor.Printf("   gitignore_template: %s\n", cfg.GitignoreTemplate)
	dimColor.Printf("   fallback_gitignore: %t\n", cfg.FallbackGitignore)
}
