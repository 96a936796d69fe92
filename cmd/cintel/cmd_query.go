package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"cintel/internal/analytics"
	"cintel/internal/metricindex"
	"cintel/internal/ranking"
)

func (a *app) topCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top <metric>",
		Short: "Rank companies by the largest values of a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := metricindex.ParseMetricType(args[0])
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.cfg.TopK
			}
			top, err := a.engine.TopPerformers(cmd.Context(), mt, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), top)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of results (defaults to CI_TOP_K)")
	return cmd
}

func (a *app) screenCmd() *cobra.Command {
	var (
		revenueMin, revenueMax float64
		mcapMin, mcapMax       float64
		category, sortBy, dir  string
		limit                  int
	)
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Filter companies by revenue, market cap and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := analytics.Filters{Category: category, Limit: limit}
			flags := cmd.Flags()
			f.RevenueRange = rangeFlag(flags.Changed("revenue-min"), flags.Changed("revenue-max"), revenueMin, revenueMax)
			f.MarketCapRange = rangeFlag(flags.Changed("mcap-min"), flags.Changed("mcap-max"), mcapMin, mcapMax)

			if sortBy != "" {
				mt, err := metricindex.ParseMetricType(sortBy)
				if err != nil {
					return err
				}
				f.SortBy = mt
			}
			d, err := ranking.ParseDirection(dir)
			if err != nil {
				return err
			}
			f.Direction = d

			list, err := a.engine.AdvancedSearch(cmd.Context(), f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().Float64Var(&revenueMin, "revenue-min", 0, "minimum revenue (inclusive)")
	cmd.Flags().Float64Var(&revenueMax, "revenue-max", 0, "maximum revenue (inclusive)")
	cmd.Flags().Float64Var(&mcapMin, "mcap-min", 0, "minimum market cap (inclusive)")
	cmd.Flags().Float64Var(&mcapMax, "mcap-max", 0, "maximum market cap (inclusive)")
	cmd.Flags().StringVar(&category, "category", "", "category to keep (case-insensitive)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "metric to sort by (default revenue)")
	cmd.Flags().StringVar(&dir, "dir", "desc", "sort direction: asc or desc")
	cmd.Flags().IntVar(&limit, "limit", 0, fmt.Sprintf("maximum results (default %d)", analytics.DefaultSearchLimit))
	return cmd
}

// rangeFlag builds a range when at least one bound was given; the missing
// bound is left open.
func rangeFlag(hasMin, hasMax bool, min, max float64) *analytics.Range {
	if !hasMin && !hasMax {
		return nil
	}
	if !hasMin {
		min = math.Inf(-1)
	}
	if !hasMax {
		max = math.Inf(1)
	}
	return &analytics.Range{Min: min, Max: max}
}

func (a *app) aboveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "above <metric> <threshold>",
		Short: "List metric entries strictly above a threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := metricindex.ParseMetricType(args[0])
			if err != nil {
				return err
			}
			threshold, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse threshold %q: %w", args[1], err)
			}
			nodes, err := a.engine.CompaniesAboveThreshold(cmd.Context(), mt, threshold)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), nodes)
		},
	}
}

func (a *app) analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Print the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.engine.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <prefix>",
		Short: "Autocomplete company names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.engine.SearchCompanies(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum suggestions")
	return cmd
}
