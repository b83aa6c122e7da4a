package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/schema"
)

type propertySummary struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Array bool   `json:"array,omitempty"`
}

type definitionSummary struct {
	Name       string            `json:"name"`
	PluralName string            `json:"pluralName"`
	Label      string            `json:"label,omitempty"`
	Custom     bool              `json:"custom"`
	Properties []propertySummary `json:"properties"`
}

// NewSchemaCommand creates the schema dump command
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Args:  cobra.NoArgs,
		Short: "Dump the org's object definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			defs, flt := loadDefinitions(cmd, reg)
			if flt != nil {
				return flt
			}

			summaries := make([]definitionSummary, 0, len(defs))
			for _, d := range defs {
				summaries = append(summaries, summarize(d))
			}
			out, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func loadDefinitions(cmd *cobra.Command, reg *schema.Registry) ([]*schema.ObjectDefinition, *fault.Fault) {
	type result struct {
		defs []*schema.ObjectDefinition
		flt  *fault.Fault
	}
	done := make(chan result, 1)
	reg.Load(cmd.Context(), func(defs []*schema.ObjectDefinition, flt *fault.Fault) {
		done <- result{defs: defs, flt: flt}
	})
	r := <-done
	return r.defs, r.flt
}

func summarize(d *schema.ObjectDefinition) definitionSummary {
	s := definitionSummary{
		Name:       d.Name,
		PluralName: d.PluralName,
		Label:      d.Label,
		Custom:     d.IsCustom,
	}
	for _, list := range [][]*schema.PropertyDefinition{d.BaseProperties, d.CustomProperties} {
		for _, p := range list {
			s.Properties = append(s.Properties, propertySummary{
				Name:  p.Name,
				Type:  p.Type.String(),
				Array: p.IsArray,
			})
		}
	}
	return s
}
