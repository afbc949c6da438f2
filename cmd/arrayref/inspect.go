package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/arrayref/pkg/frame"
)

var InspectCommand *cli.Command

func init() {
	InspectCommand = &cli.Command{
		Name:  "inspect",
		Usage: "prints the header of every frame without opening it",
		Flags: []cli.Flag{_FlagIn},
		Action: func(ctx *cli.Context) error {
			in, err := openInput(ctx)
			if err != nil {
				return err
			}
			defer in.Close()
			buf, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			for i := 0; len(buf) > 0; i++ {
				_, h, err := frame.Next(&buf)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				_, _ = fmt.Fprintf(ctx.App.Writer, "frame=%d seq=%d version=%d flags=%04x schema=%d length=%d nonce=%x\n",
					i, h.Seq, h.Version, h.Flags, h.SchemaID, h.Length, h.Nonce)
			}
			return nil
		},
	}
}
