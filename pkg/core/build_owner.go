package core

import (
	"sync"

	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
)

// BuildOwner inflates a widget tree and keeps per-render statistics.
// Create one per render; it is safe to read the statistics from another
// goroutine while the mount runs.
type BuildOwner struct {
	mu          sync.Mutex
	elements    int
	buildErrors []*errors.BuildError
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// Mount inflates root and mounts the whole tree synchronously. It returns
// nil when root is nil.
func (b *BuildOwner) Mount(root Widget) Element {
	element := inflateWidget(root, b)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}

// Render mounts root and returns the root element together with the host
// nodes the tree produced.
func (b *BuildOwner) Render(root Widget) (Element, []*markup.Node) {
	element := b.Mount(root)
	if element == nil {
		return nil, nil
	}
	return element, element.HostNodes()
}

// ElementCount returns the number of elements mounted by this owner.
func (b *BuildOwner) ElementCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.elements
}

// BuildErrors returns the build errors seen by this owner, including those
// absorbed by error boundaries.
func (b *BuildOwner) BuildErrors() []*errors.BuildError {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*errors.BuildError(nil), b.buildErrors...)
}

func (b *BuildOwner) elementMounted() {
	b.mu.Lock()
	b.elements++
	b.mu.Unlock()
}

func (b *BuildOwner) recordBuildError(err *errors.BuildError) {
	b.mu.Lock()
	b.buildErrors = append(b.buildErrors, err)
	b.mu.Unlock()
}
