package main

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/reoring/oaskema/internal/config"
	"github.com/reoring/oaskema/openapi"
)

func newDocCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Render the OpenAPI document for the routes in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := buildDocument(a.cfg, a.logger)
			if err != nil {
				return err
			}
			var b []byte
			switch format {
			case formatJSON:
				b, err = doc.JSON()
				b = append(b, '\n')
			case formatYAML:
				b, err = doc.YAML()
			default:
				return errors.Newf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", out)
			}
			a.logger.Info("document written", "path", out, "routes", len(a.cfg.Routes))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newDocument(cfg *config.Config) *openapi.Document {
	servers := lo.Map(cfg.Servers, func(s config.Server, _ int) openapi.Server {
		return openapi.Server{URL: s.URL, Description: s.Description}
	})
	info := openapi.Info{Title: cfg.Info.Title, Version: cfg.Info.Version, Description: cfg.Info.Description}
	return openapi.NewDocument(info, servers...)
}

func routeOperation(r config.Route) openapi.Operation {
	return openapi.Operation{OperationID: r.OperationID, Summary: r.Summary, Tags: r.Tags}
}

// buildDocument converts every configured route. Inputs that cannot be
// described are logged and left out.
func buildDocument(cfg *config.Config, logger *slog.Logger) (*openapi.Document, error) {
	doc := newDocument(cfg)
	cache := openapi.NewCache()
	for _, r := range cfg.Routes {
		var frags []*openapi.Fragment
		for _, in := range r.Inputs {
			n, err := in.Schema.Node()
			if err != nil {
				return nil, errors.Wrapf(err, "%s %s", r.Method, r.Path)
			}
			frag, diags := cache.BuildLocationSchema(openapi.Location(in.In), n)
			for _, d := range diags {
				logger.Warn("input not described", "method", r.Method, "path", r.Path, "code", d.Code, "warning", d.Message)
			}
			frags = append(frags, frag)
		}
		if err := doc.AddOperation(r.Method, r.Path, routeOperation(r), frags...); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
