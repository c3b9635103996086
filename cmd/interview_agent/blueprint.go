package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/observability"
)

var blueprintCommand = &cobra.Command{
	Use:   "blueprint",
	Short: "Generate an interview blueprint from a resume and job description",
	Long: `Reads a resume and a job description from text files, asks the model for a
structured interview blueprint, and prints it as JSON.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runBlueprintCmd,
}

var (
	bpConfigPath string
	bpResume     string
	bpJob        string
	bpCompany    string
	bpAPIKey     string
	bpVerbose    bool
)

func init() {
	blueprintCommand.Flags().StringVar(&bpConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	blueprintCommand.Flags().StringVarP(&bpResume, "resume", "r", "", "Path to resume text file")
	blueprintCommand.Flags().StringVarP(&bpJob, "job", "j", "", "Path to job description text file")
	blueprintCommand.Flags().StringVarP(&bpCompany, "company", "c", "", "Company the interview targets")
	blueprintCommand.Flags().StringVar(&bpAPIKey, "api-key", "", fmt.Sprintf("Model API key (optional, defaults to %s env var)", llm.EnvAPIKey))
	blueprintCommand.Flags().BoolVarP(&bpVerbose, "verbose", "v", false, "Print a formatted blueprint summary")

	rootCmd.AddCommand(blueprintCommand)
}

func runBlueprintCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if bpConfigPath != "" {
		loaded, err := config.LoadConfig(bpConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	flags := config.Config{
		Resume:  bpResume,
		Job:     bpJob,
		Company: bpCompany,
		APIKey:  bpAPIKey,
	}
	cfg = flags.MergeWithDefaults(cfg)

	if cfg.Resume == "" || cfg.Job == "" || cfg.Company == "" {
		return fmt.Errorf("--resume, --job and --company are required (via flags or config file)")
	}

	if cfg.APIKey == "" {
		resolved, err := llm.ResolveAPIKey()
		if err != nil {
			return err
		}
		cfg.APIKey = resolved
	}

	resumeText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobText, err := os.ReadFile(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	llmCfg := llm.DefaultConfig().WithAPIKey(cfg.APIKey)
	if len(cfg.Models) > 0 {
		llmCfg.Models = cfg.Models
	}

	gateway, err := llm.NewGateway(ctx, llmCfg)
	if err != nil {
		return err
	}
	defer gateway.Close()

	bp, err := blueprint.NewGenerator(gateway, llmCfg.Models).
		Generate(ctx, cfg.Company, string(resumeText), string(jobText))
	if err != nil {
		var parseErr *blueprint.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(os.Stderr, "Model output could not be parsed; raw output follows:\n%s\n", parseErr.Raw)
		}
		return err
	}

	if bpVerbose {
		observability.NewPrinter(os.Stdout).PrintBlueprint(bp)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(bp)
}
