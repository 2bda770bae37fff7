package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/folio/cmd/folio/internal/cache"
	"github.com/go-drift/folio/pkg/figure"
	"github.com/go-drift/folio/pkg/ito"
)

func init() {
	RegisterCommand(&Command{
		Name:  "figure",
		Short: "Generate the Itô calculus figure",
		Long: `Generate the four-panel figure shown in the interactive demo: sample
paths, quadratic variation, Itô versus standard transforms and local time.

Seed, path count, steps and size come from the figure section of folio.yaml.

Flags:
  -o FILE        Write the PNG to FILE (default: ito-plot.png)
  --seed N       Override the random seed
  --prune        Remove cached figures of other CLI versions`,
		Usage: "folio figure [-o FILE] [--seed N] [--prune]",
		Run:   runFigure,
	})
}

type figureFlags struct {
	out   string
	seed  *uint64
	prune bool
}

func parseFigureArgs(args []string) (figureFlags, error) {
	flags := figureFlags{out: string(ito.ImageRef)}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o", "--out":
			if i+1 >= len(args) {
				return flags, fmt.Errorf("%s requires a file path", arg)
			}
			flags.out = args[i+1]
			i++
		case "--seed":
			if i+1 >= len(args) {
				return flags, fmt.Errorf("--seed requires a number")
			}
			seed, err := strconv.ParseUint(args[i+1], 10, 64)
			if err != nil {
				return flags, fmt.Errorf("invalid --seed %q: %w", args[i+1], err)
			}
			flags.seed = &seed
			i++
		case "--prune":
			flags.prune = true
		default:
			return flags, fmt.Errorf("unknown flag %q\n\nUsage: folio figure [-o FILE] [--seed N] [--prune]", arg)
		}
	}
	if strings.TrimSpace(flags.out) == "" {
		return flags, fmt.Errorf("output file cannot be empty")
	}
	return flags, nil
}

func runFigure(args []string) error {
	flags, err := parseFigureArgs(args)
	if err != nil {
		return err
	}
	res, err := loadProject()
	if err != nil {
		return err
	}

	if flags.prune {
		removed, err := cache.Prune(cache.Version())
		if err != nil {
			return err
		}
		for _, v := range removed {
			logger.WithField("version", v).Info("pruned figure cache")
		}
	}

	opts := res.Figure
	if flags.seed != nil {
		opts.Seed = *flags.seed
	}

	var buf bytes.Buffer
	if err := figure.WritePNG(&buf, opts); err != nil {
		return err
	}
	if err := cache.WriteFileAtomic(flags.out, buf.Bytes()); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"file": flags.out, "seed": opts.Seed, "bytes": buf.Len()}).Info("figure written")
	return nil
}

// copyFigure places the cached figure for opts at dest.
func copyFigure(opts figure.Options, dest string) error {
	src, rendered, err := cache.EnsureFigure(opts)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read cached figure: %w", err)
	}
	if err := cache.WriteFileAtomic(dest, data); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"figure": dest, "rendered": rendered}).Debug("figure ready")
	return nil
}
