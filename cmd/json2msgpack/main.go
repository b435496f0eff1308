// Command json2msgpack is a one-shot filter: it reads a JSON document from
// standard input and writes MessagePack bytes to standard output. Blob and
// Ext are never reconstructed on this direction — a JSON string always
// decodes to a Str node, even one that happens to look like hex (see
// DESIGN.md for the documented hex round-trip limitation).
package main

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scigolib/msgpack/internal/jsonbridge"
	"github.com/scigolib/msgpack/msgpack"
)

var warn = color.New(color.FgHiYellow).SprintFunc()

func main() {
	app := &cli.App{
		Name:  "json2msgpack",
		Usage: "convert a JSON document on stdin to MessagePack bytes on stdout",
		Action: func(c *cli.Context) error {
			return run(os.Stdin, os.Stdout)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("json2msgpack: %v", err)
	}
}

func run(in io.Reader, out io.Writer) error {
	dec := json.NewDecoder(in)
	v, err := jsonbridge.DecodeOrdered(dec)
	if err != nil {
		os.Stderr.WriteString(warn("json2msgpack: decoding JSON: " + err.Error() + "\n"))
		return nil
	}

	root, err := jsonbridge.FromJSON(v)
	if err != nil {
		os.Stderr.WriteString(warn("json2msgpack: " + err.Error() + "\n"))
		return nil
	}

	data, err := msgpack.Pack(root)
	if err != nil {
		os.Stderr.WriteString(warn("json2msgpack: " + err.Error() + "\n"))
		return nil
	}

	if _, err := out.Write(data); err != nil {
		os.Stderr.WriteString(warn("json2msgpack: writing stdout: " + err.Error() + "\n"))
	}
	return nil
}
