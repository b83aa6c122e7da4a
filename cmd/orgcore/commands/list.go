package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/object"
	"github.com/orgbase/orgcore/paging"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/transport"
)

// NewListCommand creates the context listing command
func NewListCommand() *cobra.Command {
	var (
		pageSize    int
		pagingField string
		inverse     bool
		all         bool
		whereJSON   string
	)

	cmd := &cobra.Command{
		Use:   "list <context>",
		Args:  cobra.ExactArgs(1),
		Short: "Page through the objects of a context",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, reg, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, flt := loadDefinitions(cmd, reg); flt != nil {
				return flt
			}

			var params *query.Parameters
			if whereJSON != "" {
				var where map[string]any
				if err := json.Unmarshal([]byte(whereJSON), &where); err != nil {
					return fmt.Errorf("bad --where filter: %w", err)
				}
				params = query.WithWhere(where, "")
			}

			type page struct {
				items   []*object.Instance
				hasMore bool
				flt     *fault.Fault
			}
			pages := make(chan page, 1)

			p, flt := paging.New(cmd.Context(), client, reg, paging.Options{
				Target:       transport.Target{Context: args[0]},
				PagingField:  pagingField,
				PageSize:     pageSize,
				InverseOrder: inverse,
				Parameters:   params,
				OnPage: func(items []*object.Instance, hasMore bool, flt *fault.Fault) {
					pages <- page{items: items, hasMore: hasMore, flt: flt}
				},
			})
			if flt != nil {
				return flt
			}
			defer p.Destroy()

			for {
				p.LoadNextPage()
				pg := <-pages
				if pg.flt != nil {
					return pg.flt
				}
				for _, inst := range pg.items {
					out, err := json.Marshal(render(inst))
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(out))
				}
				if !pg.hasMore || !all {
					return nil
				}
			}
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 25, "objects per page (1-100)")
	cmd.Flags().StringVar(&pagingField, "paging-field", "_id", "cursor property")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "page in descending order")
	cmd.Flags().BoolVar(&all, "all", false, "keep fetching until exhausted")
	cmd.Flags().StringVar(&whereJSON, "where", "", "JSON filter merged into every page request")
	return cmd
}

// render flattens an instance back to plain attributes for output.
func render(inst *object.Instance) map[string]any {
	out := map[string]any{
		"_id":    inst.ID.String(),
		"object": inst.Definition.Name,
	}
	for name, pi := range inst.BaseProperties() {
		out[name] = pi.Value.Raw()
	}
	for name, pi := range inst.CustomProperties() {
		out[name] = pi.Value.Raw()
	}
	return out
}
