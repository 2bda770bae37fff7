package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/folio/cmd/folio/internal/cache"
	"github.com/go-drift/folio/cmd/folio/internal/config"
	"github.com/go-drift/folio/cmd/folio/internal/server"
	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/pagecache"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve the article over HTTP",
		Long: `Serve the rendered article, its stylesheet and figure.

Routes:
  /             the article (page-cached)
  /style.css    the theme stylesheet
  /assets/      the generated figure
  /healthz      liveness check

Rendered pages are cached in memory, or in Redis when server.redis_addr
is set in folio.yaml. Requests are rate limited per client.

Flags:
  --addr ADDR     Listen address (default: 127.0.0.1:8080)
  --redis ADDR    Cache pages in Redis at ADDR
  --no-figure     Serve without generating the figure`,
		Usage: "folio serve [--addr ADDR] [--redis ADDR] [--no-figure]",
		Run:   runServe,
	})
}

type serveFlags struct {
	addr     string
	redis    string
	noFigure bool
}

func parseServeArgs(args []string) (serveFlags, error) {
	var flags serveFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--addr", "--redis":
			if i+1 >= len(args) {
				return flags, fmt.Errorf("%s requires an address", arg)
			}
			if arg == "--addr" {
				flags.addr = args[i+1]
			} else {
				flags.redis = args[i+1]
			}
			i++
		case "--no-figure":
			flags.noFigure = true
		default:
			return flags, fmt.Errorf("unknown flag %q\n\nUsage: folio serve [--addr ADDR] [--redis ADDR] [--no-figure]", arg)
		}
	}
	return flags, nil
}

func runServe(args []string) error {
	flags, err := parseServeArgs(args)
	if err != nil {
		return err
	}
	res, err := loadProject()
	if err != nil {
		return err
	}
	if flags.addr != "" {
		res.Server.Addr = flags.addr
	}
	if flags.redis != "" {
		res.Server.RedisAddr = flags.redis
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, closeCache, err := serverOptions(ctx, res, flags.noFigure)
	if err != nil {
		return err
	}
	defer closeCache()

	logger.WithFields(logrus.Fields{
		"addr":       res.Server.Addr,
		"rate_limit": res.Server.RateLimit,
		"cache_ttl":  res.Server.CacheTTL.String(),
	}).Info("starting server")
	return server.New(opts).Run(ctx)
}

// serverOptions wires the figure, page cache and renderer for res.
func serverOptions(ctx context.Context, res *config.Resolved, noFigure bool) (server.Options, func(), error) {
	var assetFS fs.FS
	var resolver assets.Resolver = assets.ResolverFunc(assets.MissingHandle)
	refresh := func() error { return nil }
	if !noFigure {
		path, rendered, err := cache.EnsureFigure(res.Figure)
		if err != nil {
			return server.Options{}, nil, err
		}
		logger.WithFields(logrus.Fields{"figure": path, "rendered": rendered}).Debug("figure ready")
		assetFS = os.DirFS(filepath.Dir(path))
		fsResolver := assets.NewFSResolver(assetFS, "assets")
		fsResolver.Placeholders = true
		resolver = fsResolver
		refresh = func() error {
			path, rendered, err := cache.EnsureFigure(res.Figure)
			if err != nil {
				return err
			}
			if rendered {
				logger.WithField("figure", path).Info("figure re-rendered")
				fsResolver.Forget()
			}
			return nil
		}
	}

	var pages pagecache.Cache
	closeCache := func() {}
	if res.Server.RedisAddr != "" {
		r, err := pagecache.NewRedis(ctx, pagecache.RedisOptions{Addr: res.Server.RedisAddr, TTL: res.Server.CacheTTL})
		if err != nil {
			return server.Options{}, nil, err
		}
		pages = r
		closeCache = func() { r.Close() }
	} else {
		pages = pagecache.NewMemory(res.Server.CacheTTL, 2*res.Server.CacheTTL)
	}

	return server.Options{
		Addr:        res.Server.Addr,
		RateLimit:   res.Server.RateLimit,
		Burst:       res.Server.Burst,
		CORSOrigins: res.Server.CORSOrigins,

		TrustedProxies: res.Server.TrustedProxies,

		// Every render re-checks the cached figure so a pruned or damaged
		// file is regenerated before the page references it.
		Page: func(ctx context.Context) ([]byte, error) {
			if err := refresh(); err != nil {
				return nil, err
			}
			page, _, err := renderSite(res, resolver)
			return page, err
		},
		Cache:      pages,
		PageKey:    pageKey(res, noFigure),
		Stylesheet: res.Theme().Stylesheet(),
		Assets:     assetFS,
		Logger:     logger,
	}, closeCache, nil
}

// pageKey identifies the inputs that change the rendered page.
func pageKey(res *config.Resolved, noFigure bool) string {
	parts := []string{
		cache.Version(),
		res.Title,
		res.Lang,
		res.Brightness.String(),
		fmt.Sprint(res.Breakpoint),
		res.KaTeX.Version,
		res.KaTeX.CDN,
		cache.FigureKey(res.Figure),
		fmt.Sprint(noFigure),
	}
	return strings.Join(parts, "|")
}
