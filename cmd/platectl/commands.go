package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/MoosaTae/license-plate-ocr/internal/logger"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/MoosaTae/license-plate-ocr/pkg/utils"
	"github.com/MoosaTae/license-plate-ocr/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	useHeuristic bool
	vehicleType  string
	plateStatus  string
)

var rootCmd = &cobra.Command{
	Use:     "platectl",
	Short:   "Manage and validate Thai license plate records",
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// CLI runs quiet; only warnings and worse reach the console
		if _, err := logger.Setup(logger.WARNING); err != nil {
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")

	validateCmd.Flags().BoolVar(&useHeuristic, "heuristic", false, "use province heuristics instead of the registry")

	addCmd.Flags().StringVar(&vehicleType, "vehicle-type", "", "vehicle type (defaults to private)")
	addCmd.Flags().StringVar(&plateStatus, "status", "", "registration status (defaults to active)")

	rootCmd.AddCommand(validateCmd, addCmd, searchCmd, statsCmd, demoCmd)
}

func loadEnvironment() (*config.Config, *plate.Registry, *plate.ProvinceList, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	registry, err := plate.LoadRegistry(utils.GetDataPath(cfg.Data.Registry))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load registry: %w", err)
	}
	provinces, err := plate.LoadProvinceList(utils.GetDataPath(cfg.Data.ProvinceList))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load province list: %w", err)
	}
	return cfg, registry, provinces, nil
}

func buildPolicy(cfg *config.Config, registry *plate.Registry, provinces *plate.ProvinceList) plate.Policy {
	if !useHeuristic && registry.Len() > 0 {
		return &plate.RegistryPolicy{
			Registry:            registry,
			ConfidenceThreshold: cfg.Validation.ConfidenceThreshold,
			FuzzyThreshold:      cfg.Validation.FuzzyThreshold,
		}
	}
	return &plate.HeuristicPolicy{
		Provinces:           provinces,
		ConfidenceThreshold: cfg.Validation.ConfidenceThreshold,
		FuzzyThreshold:      cfg.Validation.FuzzyThreshold,
	}
}

func printResult(res plate.Result) {
	fmt.Printf("Plate:      %q\n", res.DetectedPlate)
	fmt.Printf("Confidence: %.3f\n", res.Confidence)
	fmt.Printf("Status:     %s\n", res.Status)
	fmt.Printf("Reason:     %s\n", res.Reason)
	if res.Match != nil {
		fmt.Printf("Match:      %s / %s / %s / %s (%s, score %.2f)\n",
			res.Match.PlateNumber, res.Match.Province, res.Match.VehicleType,
			res.Match.Status, res.MatchType, res.MatchScore)
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate <text> <confidence>",
	Short: "Validate a detected plate text against the registry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		confidence, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid confidence %q: %w", args[1], err)
		}

		cfg, registry, provinces, err := loadEnvironment()
		if err != nil {
			return err
		}

		policy := buildPolicy(cfg, registry, provinces)
		printResult(policy.Validate(args[0], confidence))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <plate> <province>",
	Short: "Add a plate record to the registry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		rec, err := registry.Add(plate.Record{
			PlateNumber: args[0],
			Province:    args[1],
			VehicleType: vehicleType,
			Status:      plateStatus,
		})
		if err != nil {
			return fmt.Errorf("add record: %w", err)
		}

		fmt.Printf("Added %s (%s, %s, %s), registry now has %d records\n",
			rec.PlateNumber, rec.Province, rec.VehicleType, rec.Status, registry.Len())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <province>",
	Short: "List registry records for a province",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		records := registry.SearchByProvince(args[0])
		if len(records) == 0 {
			fmt.Printf("No records found for province %q\n", args[0])
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%-12s %-20s %-12s %s\n", rec.PlateNumber, rec.Province, rec.VehicleType, rec.Status)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show registry statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		stats := registry.Stats()
		fmt.Printf("Total plates: %d\n", stats.Total)
		printBreakdown("By province", stats.ByProvince)
		printBreakdown("By vehicle type", stats.ByVehicleType)
		printBreakdown("By status", stats.ByStatus)
		return nil
	},
}

func printBreakdown(title string, counts map[string]int) {
	fmt.Printf("%s:\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the validation policy against sample detections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, registry, provinces, err := loadEnvironment()
		if err != nil {
			return err
		}

		policy := buildPolicy(cfg, registry, provinces)

		samples := []struct {
			text       string
			confidence float64
		}{
			{"กก 555", 0.95},
			{"กก555", 0.90},
			{"ซค 5", 0.88},
			{"กท 2058", 0.92},
			{"กข 999", 0.85},
			{"abc 123", 0.70},
		}

		for i, s := range samples {
			fmt.Printf("--- Sample %d ---\n", i+1)
			printResult(policy.Validate(s.text, s.confidence))
			fmt.Println()
		}
		return nil
	},
}
