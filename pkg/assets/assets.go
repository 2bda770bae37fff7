// Package assets resolves static asset references for the document.
package assets

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/folio/pkg/graphics"
)

// ErrMissing is matched by resolution failures for assets that do not exist.
var ErrMissing = errors.New("assets: missing asset")

// Ref names an asset relative to the asset root, e.g. "ito-plot.png".
type Ref string

// Handle is a resolved asset.
type Handle struct {
	Ref Ref
	// URL is the address the display layer loads the asset from.
	URL string
	// MediaType is the asset's MIME type.
	MediaType string
	// Width and Height are the intrinsic image size, zero when unknown.
	Width, Height int
	// Digest is the hex SHA-256 of the content.
	Digest string
	// Placeholder is the dominant color, valid when HasPlaceholder is set.
	Placeholder    graphics.Color
	HasPlaceholder bool
	// Missing is set when the asset could not be found.
	Missing bool
}

// Resolver resolves asset references. Implementations must be safe for
// concurrent use.
type Resolver interface {
	Resolve(ref Ref) (Handle, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ref Ref) (Handle, error)

// Resolve calls f(ref).
func (f ResolverFunc) Resolve(ref Ref) (Handle, error) { return f(ref) }

// MissingHandle returns the handle and error resolvers report for an absent
// asset.
func MissingHandle(ref Ref) (Handle, error) {
	return Handle{Ref: ref, Missing: true}, fmt.Errorf("resolve %s: %w", ref, ErrMissing)
}

// FSResolver resolves references against a filesystem. Results are cached
// per reference for the resolver's lifetime.
type FSResolver struct {
	// FS holds the assets.
	FS fs.FS
	// BaseURL is prepended to the reference to form Handle.URL.
	BaseURL string
	// Placeholders enables dominant color extraction for images.
	Placeholders bool

	mu    sync.Mutex
	cache map[Ref]cached
}

type cached struct {
	handle Handle
	err    error
}

// NewFSResolver returns a resolver over fsys serving under baseURL.
func NewFSResolver(fsys fs.FS, baseURL string) *FSResolver {
	return &FSResolver{FS: fsys, BaseURL: baseURL}
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(ref Ref) (Handle, error) {
	r.mu.Lock()
	if c, ok := r.cache[ref]; ok {
		r.mu.Unlock()
		return c.handle, c.err
	}
	r.mu.Unlock()

	handle, err := r.resolve(ref)

	r.mu.Lock()
	if r.cache == nil {
		r.cache = make(map[Ref]cached)
	}
	r.cache[ref] = cached{handle: handle, err: err}
	r.mu.Unlock()
	return handle, err
}

// Forget drops cached results so the next Resolve reads the filesystem.
func (r *FSResolver) Forget() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}

func (r *FSResolver) resolve(ref Ref) (Handle, error) {
	name := strings.TrimPrefix(string(ref), "/")
	if r.FS == nil || !fs.ValidPath(name) || name == "." {
		return MissingHandle(ref)
	}
	data, err := fs.ReadFile(r.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MissingHandle(ref)
		}
		return Handle{Ref: ref, Missing: true}, fmt.Errorf("resolve %s: %w", ref, err)
	}

	sum := sha256.Sum256(data)
	handle := Handle{
		Ref:       ref,
		URL:       joinURL(r.BaseURL, name),
		MediaType: mediaType(name, data),
		Digest:    hex.EncodeToString(sum[:]),
	}
	if !strings.HasPrefix(handle.MediaType, "image/") {
		return handle, nil
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		handle.Width, handle.Height = cfg.Width, cfg.Height
	}
	if r.Placeholders {
		if c, err := DominantColor(data); err == nil {
			handle.Placeholder = c
			handle.HasPlaceholder = true
		}
	}
	return handle, nil
}

// DominantColor decodes an image and returns its most prominent color,
// ignoring white, black and green-screen backgrounds when possible.
func DominantColor(data []byte) (c graphics.Color, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("dominant color: panic recovered: %v", rec)
		}
	}()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("dominant color: decode: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, fmt.Errorf("dominant color: image has empty bounds")
	}
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.DefaultK,
		nrgba,
		prominentcolor.ArgumentDefault,
		prominentcolor.DefaultSize,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.DefaultK,
			nrgba,
			prominentcolor.ArgumentDefault,
			prominentcolor.DefaultSize,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return 0, fmt.Errorf("dominant color: no colors extracted")
		}
	}
	top := colors[0].Color
	return graphics.RGB(uint8(top.R), uint8(top.G), uint8(top.B)), nil
}

func mediaType(name string, data []byte) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimRight(base, "/") + "/" + name
}
