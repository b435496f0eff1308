// Command msgpack2json is a one-shot filter: it reads a MessagePack byte
// stream from standard input and writes a pretty-printed JSON document to
// standard output. Per the bridge's documented contract it exits 0 on
// unparsable input, having written nothing to stdout — diagnostics go to
// stderr only, so stdout always stays pure JSON or empty.
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
		Name:  "msgpack2json",
		Usage: "convert a MessagePack byte stream on stdin to pretty-printed JSON on stdout",
		Action: func(c *cli.Context) error {
			return run(os.Stdin, os.Stdout)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("msgpack2json: %v", err)
	}
}

func run(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		os.Stderr.WriteString(warn("msgpack2json: reading stdin: " + err.Error() + "\n"))
		return nil
	}

	root, count, err := msgpack.Unpack(data)
	if err != nil {
		os.Stderr.WriteString(warn("msgpack2json: " + err.Error() + "\n"))
		return nil
	}

	asJSON, err := jsonbridge.WrapRoots(root, count)
	if err != nil {
		os.Stderr.WriteString(warn("msgpack2json: " + err.Error() + "\n"))
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(asJSON); err != nil {
		os.Stderr.WriteString(warn("msgpack2json: encoding JSON: " + err.Error() + "\n"))
	}
	return nil
}
