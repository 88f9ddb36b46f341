package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags, resolvable from env via viper (ABYSS_DATA, ABYSS_WEIGHTS).
	verbose     bool
	dataDir     string
	weightsPath string

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abyssgpt",
		Short: "Seafloor spatial query engine: scoring, routing, and zone analysis",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "dataset directory containing the CSV tables")
	rootCmd.PersistentFlags().StringVar(&weightsPath, "weights", "", "optional YAML weight table (defaults built in)")

	viper.SetEnvPrefix("abyss")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("weights", rootCmd.PersistentFlags().Lookup("weights"))

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(heatmapCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [query...]",
		Short: "Run a free-text query against the loaded dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func scoreCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "score [row] [col]",
		Short: "Score a single cell and explain it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			return runScore(cmd.Context(), row, col, profile)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "balanced", "objective profile: mining, conservation, safe_route, balanced")
	return cmd
}

func routeCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "route [from-row] [from-col] [to-row] [to-col]",
		Short: "Find the least-cost route between two cells",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fr, fc, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			tr, tc, err := parseCoord(args[2], args[3])
			if err != nil {
				return err
			}
			return runRoute(cmd.Context(), fr, fc, tr, tc, profile)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "safe_route", "objective profile for edge costs")
	return cmd
}

func heatmapCmd() *cobra.Command {
	var profile string
	var top int
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Score the whole grid and list the top zones for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHeatmap(cmd.Context(), profile, top)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "mining", "objective profile to rank by")
	cmd.Flags().IntVarP(&top, "top", "n", 5, "number of zones to list")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the weight table and audit the dataset without querying",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate()
		},
	}
}

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func parseCoord(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("row must be an integer: %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("col must be an integer: %q", colArg)
	}
	return row, col, nil
}
