package main

import (
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/arrayref/pkg/frame"
)

var OpenCommand *cli.Command

func init() {
	OpenCommand = &cli.Command{
		Name:  "open",
		Usage: "authenticates sealed frames and writes their payloads",
		Flags: []cli.Flag{_FlagKey, _FlagIn, _FlagOut},
		Action: func(ctx *cli.Context) error {
			cfg := appConfig(ctx)
			s, err := loadSealer(ctx, cfg.FrameOptions())
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

			r := frame.NewReader(in, s)
			r.MaxFrame = cfg.MaxFrame
			for i := 0; ; i++ {
				payload, h, err := r.ReadFrame()
				if errors.Is(err, io.EOF) {
					log.WithField("frames", i).Info("opened")
					return out.Close()
				}
				if err != nil {
					return err
				}
				log.WithFields(log.Fields{"frame": i, "schema": h.SchemaID, "bytes": len(payload)}).Debug("frame")
				if _, err := out.Write(payload); err != nil {
					return err
				}
			}
		},
	}
}
