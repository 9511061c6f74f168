package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fehbgo/internal/calculation"
	"github.com/rgehrsitz/fehbgo/internal/config"
	"github.com/rgehrsitz/fehbgo/internal/domain"
	"github.com/rgehrsitz/fehbgo/internal/output"
	"github.com/rgehrsitz/fehbgo/internal/plans"
	"github.com/rgehrsitz/fehbgo/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fehbgo",
	Short: "FEHB Plan Cost Analyzer",
	Long:  "Estimates total annual healthcare cost per FEHB plan for a personal usage profile and ranks all plans by cost",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.Debug("debug mode enabled")
		}
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank all plans by total annual cost and export the results",
	Run: func(cmd *cobra.Command, args []string) {
		results, appCfg := runPipeline(cmd)

		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			if err := os.MkdirAll(appCfg.OutputDirectory, 0o755); err != nil {
				logrus.Fatalf("could not create output directory: %v", err)
			}
			outputPath = filepath.Join(appCfg.OutputDirectory, "ranked_plans.csv")
		}

		data, err := (output.CSVFormatter{}).Format(results)
		if err != nil {
			logrus.Fatalf("could not format results: %v", err)
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			logrus.Fatalf("could not write results: %v", err)
		}
		logrus.Infof("results saved to %s", outputPath)

		format, _ := cmd.Flags().GetString("format")
		if format == "console" {
			console := output.ConsoleFormatter{TopN: appCfg.TopN}
			report, err := console.Format(results)
			if err != nil {
				logrus.Fatalf("could not render report: %v", err)
			}
			fmt.Print(string(report))
		} else if f := output.GetFormatterByName(format); f != nil && format != "csv" {
			rendered, err := f.Format(results)
			if err != nil {
				logrus.Fatalf("could not render %s output: %v", format, err)
			}
			fmt.Print(string(rendered))
		}
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse ranked plans interactively",
	Run: func(cmd *cobra.Command, args []string) {
		results, _ := runPipeline(cmd)

		p := tea.NewProgram(tui.NewModel(results), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logrus.Fatalf("tui error: %v", err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fehbgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// runPipeline loads configuration and plan data, augments tier-4 rules
// from brochure text, and ranks every plan. Configuration problems are
// fatal; individual plan problems are logged and skipped inside the batch.
func runPipeline(cmd *cobra.Command) ([]domain.PlanResult, *config.AppConfig) {
	parser := config.NewInputParser()

	appCfg := config.DefaultAppConfig()
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		loaded, err := parser.LoadAppConfig(configPath)
		if err != nil {
			logrus.Fatal(err)
		}
		appCfg = *loaded
	}

	needsPath, _ := cmd.Flags().GetString("user-needs")
	needs, err := parser.LoadUserNeeds(needsPath)
	if err != nil {
		logrus.Fatal(err)
	}

	for _, service := range needs.UsageProfile.Keys() {
		if quantity, _ := needs.UsageProfile.Get(service); quantity > 0 {
			logrus.Infof("usage: %s = %d", service, quantity)
		}
	}

	plansPath, _ := cmd.Flags().GetString("plans")
	if plansPath == "" {
		plansPath = appCfg.PlansFile
	}
	records, err := plans.LoadPlans(plansPath)
	if err != nil {
		logrus.Fatal(err)
	}
	if len(records) == 0 {
		logrus.Fatal("no plans found in plans file")
	}

	plans.AugmentPlansWithTier4(records, func(plan *domain.PlanRecord) string {
		if plan.Tier4RawText != "" {
			return plan.Tier4RawText
		}
		return plans.LoadBrochureText(appCfg.BrochureTextDir, plan.PlanCode)
	})

	results := calculation.RankAllPlans(records, needs)
	logrus.Infof("cost calculation complete: %d plans ranked", len(results))

	return results, &appCfg
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("user-needs", "data/user_needs.yaml", "path to the usage/cost configuration file")
	cmd.Flags().String("config", "", "path to the application configuration file")
	cmd.Flags().String("plans", "", "path to the scraped plans file (overrides config)")
}

func main() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addPipelineFlags(analyzeCmd)
	analyzeCmd.Flags().String("output", "", "path to the output CSV file (default: <output_directory>/ranked_plans.csv)")
	analyzeCmd.Flags().String("format", "console", "additional report format: console, json, or none")

	addPipelineFlags(tuiCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
