// Package main implements the databind command line tool, which loads
// payload documents through the format adapters and the value model.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := run(os.Args, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	app := makeApp(out)

	return app.Run(args)
}

func makeApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "databind",
		Usage: "inspect and transcode payload documents",
		Commands: []*cli.Command{
			makeTranscodeCommand(out),
			makeCheckCommand(out),
		},
	}
}
