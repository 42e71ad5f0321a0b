package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/spf13/cobra"
)

// Set by the linker at build time.
var (
	version = "dev"
	commit  = "none"
)

// token is the GitHub token shared by every command
var token string

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "gitmentor",
	Short: "Developer feedback from your GitHub activity.",
	Long: `gitmentor reads your GitHub profile, repositories, events and recent commits,
and asks a language model for structured feedback on them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		logger.Init(config.AppConfig.Log.Level, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GITHUB_TOKEN"), "GitHub access token (defaults to $GITHUB_TOKEN)")
	rootCmd.AddCommand(runCmd, profileCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newCollector builds the GitHub side of the pipeline from the loaded configuration
func newCollector() (*services.GitHubClient, *services.ProfileCollector, error) {
	client, err := services.NewGitHubClient(config.AppConfig.GitHub.APIURL)
	if err != nil {
		return nil, nil, err
	}
	return client, services.NewProfileCollector(client, nil), nil
}

// resolveIdentity looks up the login behind token
func resolveIdentity(ctx context.Context, client services.GitHubFetcher) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("a GitHub token is required: pass --token or set GITHUB_TOKEN")
	}

	user, err := client.FetchUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GitHub user: %w", err)
	}
	return &models.Identity{AccessToken: token, Username: user.Login}, nil
}

func newActionService(collector *services.ProfileCollector) (*services.ActionService, error) {
	llm := config.AppConfig.LLM
	inference, err := services.NewOpenAIInferenceClient(services.InferenceConfig{
		APIKey:      llm.APIKey,
		BaseURL:     llm.BaseURL,
		Model:       llm.Model,
		Temperature: llm.Temperature,
	})
	if err != nil {
		return nil, err
	}

	cache := services.NewMemoryInferenceCache(time.Duration(config.AppConfig.Cache.TTLMinutes)*time.Minute, nil)
	return services.NewActionService(collector, inference, cache), nil
}
