package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/plantdex/internal/config"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
	plantrepo "github.com/kailas-cloud/plantdex/internal/repository/plant"
)

type indexDropper interface {
	DropIndex(ctx context.Context) error
}

func newIndexCmd(root *rootOptions) *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Create the catalog search index if it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if drop {
				d, ok := s.deps.Catalog.(indexDropper)
				if !ok || s.cfg.Database.Driver != config.DriverRedis {
					return errors.New("--drop needs the redis driver")
				}
				if err := d.DropIndex(cmd.Context()); err != nil {
					return err //nolint:wrapcheck // repository error names the operation
				}
				fmt.Fprintln(s.out, "index dropped")
			}

			created, err := s.deps.CatalogService(&s.cfg, s.logger).EnsureIndex(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // service error names the operation
			}
			if created {
				fmt.Fprintln(s.out, "index created")
			} else {
				fmt.Fprintln(s.out, "index already exists")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop the index first (documents are kept)")
	return cmd
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <plants.json>",
		Short: "Write plants from a JSON array file into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plants, err := plantrepo.LoadFile(args[0])
			if err != nil {
				return err //nolint:wrapcheck // names the file
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			svc := s.deps.CatalogService(&s.cfg, s.logger)
			if _, err := svc.EnsureIndex(cmd.Context()); err != nil {
				return err //nolint:wrapcheck // service error names the operation
			}
			r, err := svc.Seed(cmd.Context(), plants)
			if err != nil {
				return err //nolint:wrapcheck // service error names the operation
			}
			fmt.Fprintf(s.out, "seeded %d plants (%d new, %d updated)\n", r.Total, r.Created, r.Updated)
			return nil
		},
	}
}

func newEmbedCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Generate embeddings for plants that lack one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			r, err := s.deps.CatalogService(&s.cfg, s.logger).EmbedMissing(cmd.Context(), force)
			fmt.Fprintf(s.out, "scanned %d, skipped %d, embedded %d, failed %d, tokens %d\n",
				r.Scanned, r.Skipped, r.Embedded, len(r.Failed), r.Tokens)
			for _, f := range r.Failed {
				fmt.Fprintf(s.out, "  %s: %v\n", f.ID, f.Err)
			}
			return err //nolint:wrapcheck // service error names the operation
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "re-embed plants that already have an embedding")
	return cmd
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var (
		page    int
		sort    string
		filters []string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a listing query and print the results",
		Example: `  plantctl search "shade tolerant native flowers"
  plantctl search --filter "States=NJ" --filter "Height (feet)[max]=3" --sort "Sort by Height (Low to High)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := searchParams(args, page, sort, filters)
			if err != nil {
				return err
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			req, err := request.Parse(params, s.cfg.Search.MaxQueryLength)
			if err != nil {
				return err //nolint:wrapcheck // names the parameter
			}
			resp, err := s.deps.PlantService(&s.cfg).List(cmd.Context(), &req)
			if err != nil {
				return err //nolint:wrapcheck // service error names the operation
			}

			if asJSON {
				enc := json.NewEncoder(s.out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp) //nolint:wrapcheck // stdout write
			}
			printResults(s, &resp)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, 1-based")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "sort label, e.g. \"Sort by Common Name (A-Z)\"")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as name=value, repeatable; ranges use name[min]=v")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full response envelope as JSON")
	return cmd
}

// searchParams encodes CLI input the way the HTTP listing endpoint receives it.
func searchParams(args []string, page int, sort string, filters []string) (url.Values, error) {
	params := url.Values{}
	if len(args) > 0 {
		params.Set(request.ParamQuery, args[0])
	}
	if page > 1 {
		params.Set(request.ParamPage, strconv.Itoa(page))
	}
	if sort != "" {
		params.Set(request.ParamSort, sort)
	}
	for _, f := range filters {
		name, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("filter %q must look like name=value", f)
		}
		params.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return params, nil
}

func printResults(s *session, resp *result.Response) {
	if resp.Total != nil {
		fmt.Fprintf(s.out, "%d plants\n", *resp.Total)
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCIENTIFIC NAME\tCOMMON NAME\tHEIGHT\tSCORE")
	for _, h := range resp.Results {
		height := "-"
		if h.Height != nil {
			height = strconv.FormatFloat(*h.Height, 'f', -1, 64)
		}
		score := ""
		if h.Score != nil {
			score = strconv.FormatFloat(*h.Score, 'f', 3, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.ScientificName, h.CommonName, height, score)
	}
	_ = tw.Flush()
}
