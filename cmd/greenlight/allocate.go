package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/source"
	"github.com/arloliu/greenlight/strategy"
	"github.com/arloliu/greenlight/types"
)

// referenceDensities is the four-lane example used when no densities are given.
var referenceDensities = []float64{10, 30, 20, 40}

func newAllocateCmd(flags *globalFlags) *cobra.Command {
	var (
		total        int
		minGreen     int
		strategyName string
		lanesPath    string
	)

	cmd := &cobra.Command{
		Use:   "allocate [densities...]",
		Short: "Compute the green time of each lane for one cycle.",
		Long: "`allocate 10 30 20 40` prints the green time of four lanes with " +
			"the given densities. Densities can also be read from a YAML lanes " +
			"file with --lanes. Without either, the four-lane reference example is used.",
		Example: "  greenlight allocate 10 30 20 40\n" +
			"  greenlight allocate --total 60 --min 10 0 0\n" +
			"  greenlight allocate --lanes lanes.yaml --strategy largest-remainder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("total") {
				cfg.TotalCycleTime = total
			}
			if cmd.Flags().Changed("min") {
				cfg.MinGreenTime = minGreen
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Strategy = strategyName
			}

			logger, err := flags.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			alloc, err := greenlight.NewAllocator(&cfg, greenlight.WithLogger(logger))
			if err != nil {
				return err
			}

			src, err := densitySource(args, lanesPath)
			if err != nil {
				return err
			}

			plan, err := alloc.AllocateFrom(cmd.Context(), src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, lane := range plan.Lanes() {
				fmt.Fprintln(out, lane)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", types.DefaultTotalCycleTime, "total cycle time in seconds")
	cmd.Flags().IntVar(&minGreen, "min", types.DefaultMinGreenTime, "minimum green time per lane in seconds")
	cmd.Flags().StringVar(&strategyName, "strategy", strategy.NameProportional,
		fmt.Sprintf("allocation strategy %v", strategy.Names()))
	cmd.Flags().StringVar(&lanesPath, "lanes", "", "YAML lanes file (lanes: [{name, density}])")

	return cmd
}

// densitySource picks the lanes file, the positional densities or the reference example.
func densitySource(args []string, lanesPath string) (types.DensitySource, error) {
	if lanesPath != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("densities and --lanes are mutually exclusive")
		}

		return source.NewFile(lanesPath), nil
	}

	if len(args) == 0 {
		return source.NewStatic(referenceDensities), nil
	}

	densities := make([]float64, len(args))
	for i, arg := range args {
		d, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: lane %d: %q is not a number", greenlight.ErrInvalidDensity, i+1, arg)
		}
		densities[i] = d
	}

	return source.NewStatic(densities), nil
}
