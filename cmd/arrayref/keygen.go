package main

import (
	"crypto/rand"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/arrayref/pkg/frame"
)

var _FlagKeyOut = &cli.StringFlag{
	Name:     "out",
	Usage:    "where to write the key",
	Required: true,
}

var KeygenCommand *cli.Command

func init() {
	KeygenCommand = &cli.Command{
		Name:  "keygen",
		Usage: "writes a random frame key",
		Flags: []cli.Flag{_FlagKeyOut},
		Action: func(ctx *cli.Context) error {
			var key frame.Key
			if _, err := rand.Read(key[:]); err != nil {
				return err
			}
			path := ctx.String("out")
			if err := os.WriteFile(path, key[:], 0o600); err != nil {
				return err
			}
			log.WithField("path", path).Info("key written")
			return nil
		},
	}
}
