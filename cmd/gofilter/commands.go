package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/gofilter"
)

type filterFlags struct {
	name  string
	group string
	min   int
	max   int
}

func newRootCmd() *cobra.Command {
	var (
		filters     filterFlags
		showMetrics bool
		a           *app
	)

	root := &cobra.Command{
		Use:           "gofilter",
		Short:         "Search members with dynamic filters and offset or keyset pagination",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a == nil {
				return
			}
			if showMetrics {
				a.logMetrics()
			}
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&filters.name, "name", "", "exact member name")
	pf.StringVar(&filters.group, "group", "", "exact team name")
	pf.IntVar(&filters.min, "min", 0, "minimum value (inclusive)")
	pf.IntVar(&filters.max, "max", 0, "maximum value (inclusive)")
	pf.BoolVar(&showMetrics, "metrics", false, "log record store metrics on exit")

	criteria := func(cmd *cobra.Command) gofilter.Criteria {
		return criteriaFromFlags(cmd, filters)
	}
	service := func() *gofilter.Service { return a.service }

	root.AddCommand(
		newOffsetCmd(criteria, service),
		newKeysetCmd(criteria, service),
		newCoveringCmd(criteria, service),
		newExistsCmd(service),
		newTotalsCmd(criteria, service),
	)

	return root
}

// criteriaFromFlags turns only explicitly set flags into criteria, so that
// "--min 0" filters while an absent --min does not.
func criteriaFromFlags(cmd *cobra.Command, f filterFlags) gofilter.Criteria {
	var c gofilter.Criteria

	flags := cmd.Flags()
	if flags.Changed("name") {
		c = c.WithName(f.name)
	}
	if flags.Changed("group") {
		c = c.WithGroup(f.group)
	}
	if flags.Changed("min") {
		c = c.WithMinValue(f.min)
	}
	if flags.Changed("max") {
		c = c.WithMaxValue(f.max)
	}

	return c
}

type (
	criteriaFn func(cmd *cobra.Command) gofilter.Criteria
	serviceFn  func() *gofilter.Service
)

func newOffsetCmd(criteria criteriaFn, service serviceFn) *cobra.Command {
	var (
		page  int
		size  int
		sort  []string
		token string
	)

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Page by number with a total count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orderings, err := gofilter.ParseSort(sort, gofilter.DefaultFieldMapping())
			if err != nil {
				return err
			}

			var result *gofilter.Page
			if cmd.Flags().Changed("token") {
				result, err = service().SearchOffsetToken(cmd.Context(), criteria(cmd), token, size, orderings...)
			} else {
				result, err = service().SearchOffset(cmd.Context(), criteria(cmd), page, size, orderings...)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero based page number")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	cmd.Flags().StringSliceVar(&sort, "sort", nil, `orderings such as "value desc"`)
	cmd.Flags().StringVar(&token, "token", "", "next page token from a previous call")
	cmd.MarkFlagsMutuallyExclusive("token", "page")

	return cmd
}

func newKeysetCmd(criteria criteriaFn, service serviceFn) *cobra.Command {
	var (
		last  int64
		limit int
		asc   bool
		token string
	)

	cmd := &cobra.Command{
		Use:   "keyset",
		Short: "Page after the last seen id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				result *gofilter.Page
				err    error
			)

			switch {
			case cmd.Flags().Changed("token"):
				result, err = service().SearchKeysetToken(cmd.Context(), criteria(cmd), token, limit)
			default:
				var lastSeenID *int64
				if cmd.Flags().Changed("last") {
					lastSeenID = &last
				}
				direction := gofilter.DirectionDESC
				if asc {
					direction = gofilter.DirectionASC
				}
				result, err = service().SearchKeysetDirection(cmd.Context(), criteria(cmd), lastSeenID, limit, direction)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().Int64Var(&last, "last", 0, "last seen id; omit for the first page")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().BoolVar(&asc, "asc", false, "order by id ascending")
	cmd.Flags().StringVar(&token, "token", "", "next page token from a previous call")
	cmd.MarkFlagsMutuallyExclusive("token", "last")
	cmd.MarkFlagsMutuallyExclusive("token", "asc")

	return cmd
}

func newCoveringCmd(criteria criteriaFn, service serviceFn) *cobra.Command {
	var (
		page  int
		size  int
		token string
	)

	cmd := &cobra.Command{
		Use:   "covering",
		Short: "Page through ids first, then load the rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				result *gofilter.Page
				err    error
			)
			if cmd.Flags().Changed("token") {
				result, err = service().SearchCoveringToken(cmd.Context(), criteria(cmd), token, size)
			} else {
				result, err = service().SearchCovering(cmd.Context(), criteria(cmd), page, size)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero based page number")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	cmd.Flags().StringVar(&token, "token", "", "next page token from a previous call")
	cmd.MarkFlagsMutuallyExclusive("token", "page")

	return cmd
}

func newExistsCmd(service serviceFn) *cobra.Command {
	return &cobra.Command{
		Use:   "exists ID",
		Short: "Check whether a member exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id '%s': %w", args[0], err)
			}

			ok, err := service().Exists(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{"id": id, "exists": ok})
		},
	}
}

func newTotalsCmd(criteria criteriaFn, service serviceFn) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Sum member values per team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			totals, err := service().GroupTotals(cmd.Context(), criteria(cmd))
			if err != nil {
				return err
			}

			return printJSON(cmd, totals)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
