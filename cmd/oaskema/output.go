package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func render(w io.Writer, format string, v any) error {
	var (
		b   []byte
		err error
	)
	switch format {
	case formatJSON, "":
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	case formatYAML:
		b, err = yaml.Marshal(v)
	default:
		return errors.Newf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "render %s", format)
	}
	_, err = w.Write(b)
	return err
}
