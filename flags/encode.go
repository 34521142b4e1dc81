package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// EncodeFlags holds the knobs of the encode command. Unset flags fall back
// to the configuration file.
func EncodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "kind",
			Usage: "Element kind (int|long)",
			Value: "long",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "List encoding (parcel|cser|rlp)",
			Value: "parcel",
		},
		cli.StringFlag{
			Name:  "compress",
			Usage: "Payload compression (none|lz4|zstd)",
			Value: "none",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "Write the snapshot to this file instead of printing it as hex",
		},
	}
}
