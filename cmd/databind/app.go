// This file contains the commands of the databind tool.

package main

import (
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.dedis.ch/databind/format"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"

	// Static registration of the format adapters.
	_ "go.dedis.ch/databind/format/json"
	_ "go.dedis.ch/databind/format/toml"
	_ "go.dedis.ch/databind/format/yaml"
)

func makeTranscodeCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "transcode",
		Usage:     "read a document in one format and write it in another",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "format of the input, detected from the extension when empty",
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "format of the output",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			return transcode(c, out)
		},
	}
}

func makeCheckCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "parse a document and report the shape of its root value",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "format of the input, detected from the extension when empty",
			},
		},
		Action: func(c *cli.Context) error {
			return check(c, out)
		},
	}
}

func transcode(c *cli.Context, out io.Writer) error {
	v, err := loadDocument(c)
	if err != nil {
		return err
	}

	target, found := format.Get(c.String("to"))
	if !found {
		return xerrors.Errorf("unknown format '%s', expected one of %s",
			c.String("to"), strings.Join(format.Names(), ", "))
	}

	data, err := target.Dump(v)
	if err != nil {
		return xerrors.Errorf("couldn't dump the document: %v", err)
	}

	_, err = out.Write(data)
	if err != nil {
		return xerrors.Errorf("couldn't write the output: %v", err)
	}

	return nil
}

func check(c *cli.Context, out io.Writer) error {
	v, err := loadDocument(c)
	if err != nil {
		return err
	}

	io.WriteString(out, value.Shape(v)+"\n")

	return nil
}

func loadDocument(c *cli.Context) (value.Value, error) {
	if c.NArg() != 1 {
		return nil, xerrors.New("expected exactly one file argument")
	}

	path := c.Args().First()

	name := c.String("from")
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
		if name == "yml" {
			name = "yaml"
		}
	}

	adapter, found := format.Get(name)
	if !found {
		return nil, xerrors.Errorf("unknown format '%s', expected one of %s",
			name, strings.Join(format.Names(), ", "))
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read the file: %v", err)
	}

	v, err := adapter.Load(data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't load the document: %v", err)
	}

	return v, nil
}
