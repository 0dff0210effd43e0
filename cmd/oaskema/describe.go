package main

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/openapi"
)

func lookupSchema(name string) (oaskema.Node, error) {
	mk, ok := schemas[name]
	if !ok {
		names := lo.Keys(schemas)
		sort.Strings(names)
		return nil, errors.Newf("unknown schema %q (available: %s)", name, strings.Join(names, ", "))
	}
	return mk(), nil
}

func newDescribeCmd(a *app) *cobra.Command {
	var format, name string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the JSON Schema description of a built-in schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := lookupSchema(name)
			if err != nil {
				return err
			}
			a.logger.Debug("describe", "schema", name, "kind", n.Kind().String())
			return render(cmd.OutOrStdout(), format, openapi.Convert(n))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&name, "schema", "profile", "built-in schema to describe")
	return cmd
}

func newLocationCmd(a *app) *cobra.Command {
	var format, name, in string
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Print the OpenAPI fragment of a built-in schema for one request location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := lookupSchema(name)
			if err != nil {
				return err
			}
			frag, diags := openapi.BuildLocationSchema(openapi.Location(in), n)
			for _, d := range diags {
				a.logger.Warn("location not described", "location", in, "code", d.Code, "warning", d.Message)
			}
			if frag == nil {
				return errors.Newf("no description for location %q", in)
			}
			return render(cmd.OutOrStdout(), format, frag.Value())
		},
	}
	cmd.Flags().StringVar(&in, "in", string(openapi.LocationJSON), "request location: json, form, query, header, cookie or param")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&name, "schema", "profile", "built-in schema to describe")
	return cmd
}
