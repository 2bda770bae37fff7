package core

import (
	"reflect"

	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
)

// Widget is an immutable description of part of the document.
type Widget interface {
	// CreateElement returns the element that hosts this widget.
	CreateElement() Element
	// Key identifies the widget among its siblings. Nil means no key.
	Key() any
}

// StatelessWidget composes other widgets.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// NodeWidget produces a host node. When the widget also implements
// [ChildrenWidget], the host nodes of its children are appended to the
// returned node in order. A nil node makes the widget transparent: its
// children's host nodes are passed up to the parent unchanged.
type NodeWidget interface {
	Widget
	CreateNode(ctx BuildContext) *markup.Node
}

// ChildrenWidget is implemented by widgets with an ordered child sequence.
type ChildrenWidget interface {
	ChildWidgets() []Widget
}

// InheritedWidget exposes a value to its descendants.
type InheritedWidget interface {
	Widget
	ChildWidget() Widget
}

// BoundaryWidget catches build failures in its subtree and substitutes a
// fallback.
type BoundaryWidget interface {
	Widget
	ChildWidget() Widget
	// Fallback returns the widget shown in place of the failed subtree.
	Fallback(err *errors.BuildError) Widget
	// ErrorCaptured observes the captured error. It may be a no-op.
	ErrorCaptured(err *errors.BuildError)
}

// BuildContext is the view of the element tree a widget sees while it builds.
type BuildContext interface {
	// Widget returns the widget being built.
	Widget() Widget
	// FindAncestor walks up the tree and returns the first element matching predicate.
	FindAncestor(predicate func(Element) bool) Element
	// DependOnInherited returns the nearest ancestor InheritedWidget of the
	// given type, or nil.
	DependOnInherited(inheritedType reflect.Type) any
}

// Element is a mounted widget.
type Element interface {
	BuildContext
	// Depth is the distance from the root element (root is 0).
	Depth() int
	// Mount attaches the element under parent and builds its subtree.
	Mount(parent Element, slot any)
	// Unmount detaches the subtree.
	Unmount()
	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
	// HostNodes returns the host nodes this subtree contributes to its parent.
	HostNodes() []*markup.Node
}

// InheritedOf looks up the nearest ancestor inherited widget of type T.
func InheritedOf[T InheritedWidget](ctx BuildContext) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.DependOnInherited(reflect.TypeFor[T]()).(T)
	return v, ok
}
