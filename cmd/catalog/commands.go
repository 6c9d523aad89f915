package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Sternrassler/vod-catalog-client/pkg/catalog"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/logging"
	"github.com/Sternrassler/vod-catalog-client/pkg/pagination"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCatalog(v *viper.Viper) (*catalog.Catalog, func(), error) {
	c, cleanup, err := newClient(v)
	if err != nil {
		return nil, nil, err
	}
	return catalog.New(c, catalog.WithLogger(logging.NewLogger("catalog"))), cleanup, nil
}

func newBrowseCommand(v *viper.Viper) *cobra.Command {
	var (
		p     browseParams
		limit int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List catalog entries matching a filter set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("dubbed") {
				dubbed, _ := flags.GetBool("dubbed")
				p.Dubbed = mo.Some(dubbed)
			}
			if flags.Changed("subbed") {
				subbed, _ := flags.GetBool("subbed")
				p.Subbed = mo.Some(subbed)
			}

			opts, err := p.options()
			if err != nil {
				return err
			}

			cat, cleanup, err := newCatalog(v)
			if err != nil {
				return err
			}
			defer cleanup()

			engine := cat.Browse(opts, pagination.WithPageSize(v.GetInt(keyPageSize)))
			items, err := take(cmd.Context(), engine, limit)
			if werr := writeJSONLines(cmd.OutOrStdout(), items); werr != nil {
				return werr
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&p.Categories, "category", nil, "category filter (repeatable)")
	flags.Bool("dubbed", false, "only dubbed entries (unset: no filter)")
	flags.Bool("subbed", false, "only subbed entries (unset: no filter)")
	flags.StringVar(&p.Season, "season", "", "simulcast season id (see 'seasons')")
	flags.StringVar(&p.Sort, "sort", "", "sort order: popularity, newly_added, alphabetical (default newly_added)")
	flags.StringVar(&p.MediaType, "type", "", "media type: series, movie_listing")
	flags.StringVar(&p.Audio, "audio-language", "", "preferred audio language")
	flags.IntVar(&limit, "limit", 0, "maximum number of entries (0: all)")
	return cmd
}

func newSearchCommand(v *viper.Viper) *cobra.Command {
	var (
		facetName string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search the catalog",
		Long: "Search the catalog. Without --facet the first page of every facet is printed;\n" +
			"with --facet the chosen facet is paged up to --limit entries.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if facetName != "" && !validFacet(facetName) {
				return fmt.Errorf("%w: facet %q", filter.ErrUnknownValue, facetName)
			}

			cat, cleanup, err := newCatalog(v)
			if err != nil {
				return err
			}
			defer cleanup()

			results := cat.Query(strings.Join(args, " "), pagination.WithPageSize(v.GetInt(keyPageSize)))
			ctx := cmd.Context()

			if facetName == "" {
				preview, err := results.Preview(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), preview)
			}

			items, err := facetItems(ctx, results, facetName, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().StringVar(&facetName, "facet", "", "facet to page: "+strings.Join(searchFacets, ", "))
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries with --facet (0: all)")
	return cmd
}

func newSeasonsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List simulcast seasons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := filter.ParseLocale(v.GetString(keyLocale))
			if err != nil {
				return err
			}

			cat, cleanup, err := newCatalog(v)
			if err != nil {
				return err
			}
			defer cleanup()

			seasons, err := cat.SimulcastSeasons(cmd.Context(), locale)
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), seasons)
		},
	}
}

func writeJSONLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
