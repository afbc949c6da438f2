package main

import (
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/arrayref/pkg/frame"
)

var _FlagSchema = &cli.Uint64Flag{
	Name:  "schema",
	Usage: "overrides schema_id from the config",
}

var _FlagCompress = &cli.BoolFlag{
	Name:  "compress",
	Usage: "zstd-compress payloads before sealing",
}

var SealCommand *cli.Command

func init() {
	SealCommand = &cli.Command{
		Name:  "seal",
		Usage: "splits the input into chunks and writes each as a sealed frame",
		Flags: []cli.Flag{_FlagKey, _FlagIn, _FlagOut, _FlagSchema, _FlagCompress},
		Action: func(ctx *cli.Context) error {
			cfg := appConfig(ctx)
			opts := cfg.FrameOptions()
			if ctx.IsSet("schema") {
				opts.SchemaID = ctx.Uint64("schema")
			}
			if ctx.IsSet("compress") {
				opts.Compress = ctx.Bool("compress")
				cfg.Compress = opts.Compress
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			s, err := loadSealer(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			in, err := openInput(ctx)
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := createOutput(ctx)
			if err != nil {
				return err
			}
			defer out.Close()

			w := frame.NewWriter(out, s)
			chunk := make([]byte, cfg.ChunkSize)
			var frames, total int
			for {
				n, err := io.ReadFull(in, chunk)
				if n > 0 {
					if werr := w.WriteFrame(chunk[:n]); werr != nil {
						return werr
					}
					frames++
					total += n
				}
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					break
				}
				if err != nil {
					return err
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			frames++
			log.WithFields(log.Fields{
				"frames":   frames,
				"bytes":    total,
				"schema":   opts.SchemaID,
				"compress": opts.Compress,
			}).Info("sealed")
			return out.Close()
		},
	}
}
