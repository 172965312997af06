package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rewrite every hotel record into the search index",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := newApp(c.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.close()

			rep, err := a.indexing.Reindex(c.Context())
			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(rep); encErr != nil {
				opts.logger.Warn("Failed to write report", zap.Error(encErr))
			}
			if err != nil {
				return fmt.Errorf("reindex: %w", err)
			}
			return nil
		},
	}
}

func newIndexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index <hotel-id>",
		Short: "Index a single hotel record",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseHotelID(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(c.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.indexing.IndexByID(c.Context(), id); err != nil {
				return fmt.Errorf("index hotel: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "indexed hotel %d\n", id)
			return nil
		},
	}
}

func newUnindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unindex <hotel-id>",
		Short: "Remove a hotel from the search index",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseHotelID(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(c.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.indexing.DeleteByID(c.Context(), id); err != nil {
				return fmt.Errorf("unindex hotel: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "removed hotel %d\n", id)
			return nil
		},
	}
}

func parseHotelID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid hotel id %q", s)
	}
	return id, nil
}
