package launcher

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-primlist/flags"
	"github.com/rony4d/go-primlist/primlist"
	"github.com/rony4d/go-primlist/snapshot"
)

var errNoInput = errors.New("expected exactly one snapshot file or 0x-prefixed hex string")

func (l *launcher) encodeCommand() cli.Command {
	return cli.Command{
		Name:      "encode",
		Usage:     "Build a list from the given values and write it as a snapshot",
		ArgsUsage: "<value>...",
		Flags:     flags.EncodeFlags(),
		Action:    l.logged("encode", l.encode),
	}
}

func (l *launcher) decodeCommand() cli.Command {
	return cli.Command{
		Name:      "decode",
		Usage:     "Print the contents of a snapshot",
		ArgsUsage: "<file|0xhex>",
		Action:    l.logged("decode", l.decode),
	}
}

func (l *launcher) inspectCommand() cli.Command {
	return cli.Command{
		Name:      "inspect",
		Usage:     "Print snapshot metadata, length, capacity, hash and digest",
		ArgsUsage: "<file|0xhex>",
		Action:    l.logged("inspect", l.inspect),
	}
}

func (l *launcher) encode(ctx *cli.Context) error {
	cfg := l.cfg.Encode
	if err := applyEncodeOverrides(ctx, &cfg); err != nil {
		return err
	}
	enc, err := snapshot.ParseEncoding(cfg.Format)
	if err != nil {
		return err
	}
	comp, err := snapshot.ParseCompression(cfg.Compress)
	if err != nil {
		return err
	}

	args := []string(ctx.Args())
	var data []byte
	if cfg.Kind == "int" {
		data, err = encodeValues[int32](args, 32, enc, comp)
	} else {
		data, err = encodeValues[int64](args, 64, enc, comp)
	}
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"kind":     cfg.Kind,
		"format":   enc,
		"compress": comp,
		"values":   len(args),
		"bytes":    len(data),
	}
	if out := ctx.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		l.log.WithFields(fields).WithField("file", out).Info("snapshot written")
		return nil
	}
	l.log.WithFields(fields).Debug("snapshot encoded")
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return err
}

func encodeValues[T primlist.Element](args []string, bitSize int, enc snapshot.Encoding, comp snapshot.Compression) ([]byte, error) {
	l := primlist.New[T]()
	for _, a := range args {
		v, err := strconv.ParseInt(a, 0, bitSize)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", a, err)
		}
		l.Add(T(v))
	}
	return snapshot.Encode(l, enc, comp)
}

func (l *launcher) decode(ctx *cli.Context) error {
	s, err := l.load(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, s.text)
	return err
}

func (l *launcher) inspect(ctx *cli.Context) error {
	s, err := l.load(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "kind:        %s\n", s.header.Kind)
	fmt.Fprintf(w, "encoding:    %s\n", s.header.Encoding)
	fmt.Fprintf(w, "compression: %s\n", s.header.Compression)
	fmt.Fprintf(w, "payload:     %d bytes\n", s.header.Size)
	fmt.Fprintf(w, "length:      %d\n", s.length)
	fmt.Fprintf(w, "capacity:    %d\n", s.capacity)
	fmt.Fprintf(w, "hash:        %d\n", s.hash)
	_, err = fmt.Fprintf(w, "digest:      %s\n", hexutil.Encode(s.digest.Bytes()))
	return err
}

// summary is the kind-independent view of a decoded snapshot.
type summary struct {
	header   snapshot.Header
	text     string
	length   int
	capacity int
	hash     int32
	digest   hash.Hash
}

func (l *launcher) load(ctx *cli.Context) (summary, error) {
	if ctx.NArg() != 1 {
		return summary{}, errNoInput
	}
	data, err := readInput(ctx.Args().First())
	if err != nil {
		return summary{}, err
	}

	h, err := snapshot.ReadHeader(data)
	if err != nil {
		return summary{}, err
	}
	l.log.WithFields(logrus.Fields{
		"kind":     h.Kind,
		"format":   h.Encoding,
		"compress": h.Compression,
		"bytes":    len(data),
	}).Debug("snapshot header")

	if h.Kind == primlist.KindInt {
		return summarize[int32](snapshot.Decode[int32](data))
	}
	return summarize[int64](snapshot.Decode[int64](data))
}

func summarize[T primlist.Element](l *primlist.List[T], h snapshot.Header, err error) (summary, error) {
	if err != nil {
		return summary{}, err
	}
	return summary{
		header:   h,
		text:     l.String(),
		length:   l.Len(),
		capacity: l.Cap(),
		hash:     l.Hash(),
		digest:   l.Digest(),
	}, nil
}

func readInput(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "0x") {
		return hexutil.Decode(arg)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}
	return data, nil
}
