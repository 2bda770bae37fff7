package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
)

type elementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	self       Element
	mounted    bool
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

// attach records the element's position. Every Mount starts here.
func (e *elementBase) attach(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	e.depth = 0
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	if e.buildOwner != nil {
		e.buildOwner.elementMounted()
	}
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		current = parentOf(current)
	}
	return nil
}

func (e *elementBase) DependOnInherited(inheritedType reflect.Type) any {
	found := e.FindAncestor(func(el Element) bool {
		ie, ok := el.(*InheritedElement)
		return ok && reflect.TypeOf(ie.widget) == inheritedType
	})
	if found == nil {
		return nil
	}
	return found.Widget()
}

// mountChild inflates widget and mounts it under this element.
func (e *elementBase) mountChild(widget Widget, slot any) Element {
	if widget == nil {
		return nil
	}
	child := inflateWidget(widget, e.buildOwner)
	if child == nil {
		return nil
	}
	child.Mount(e.self, slot)
	return child
}

// guard runs fn with panic recovery. A recovered panic is converted into a
// BuildError naming this element's widget.
func (e *elementBase) guard(fn func()) (buildErr *errors.BuildError) {
	defer func() {
		if r := recover(); r != nil {
			buildErr = &errors.BuildError{
				Widget:     typeName(e.widget),
				Element:    typeName(e.self),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
		}
	}()
	fn()
	return nil
}

// safeBuild executes a build function with panic recovery.
// If the build panics, it reports the error and returns the replacement
// widget: nil when an error boundary takes over, otherwise the registered
// error widget.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	if buildErr := e.guard(func() { built = buildFn() }); buildErr != nil {
		return e.handleBuildError(buildErr)
	}
	return built
}

func (e *elementBase) handleBuildError(buildErr *errors.BuildError) Widget {
	errors.ReportBuildError(buildErr)
	if e.buildOwner != nil {
		e.buildOwner.recordBuildError(buildErr)
	}

	if e.captureInBoundary(buildErr) {
		return nil
	}

	if builder := GetErrorWidgetBuilder(); builder != nil {
		if errWidget := builder(buildErr); errWidget != nil {
			return errWidget
		}
	}
	return nil
}

// captureInBoundary offers the error to each ancestor error boundary,
// nearest first, until one accepts it.
func (e *elementBase) captureInBoundary(buildErr *errors.BuildError) bool {
	accepted := e.FindAncestor(func(el Element) bool {
		capture, ok := el.(ErrorBoundaryCapture)
		return ok && capture.CaptureError(buildErr)
	})
	return accepted != nil
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement returns an unmounted StatelessElement.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	widget, ok := e.widget.(StatelessWidget)
	if !ok {
		e.child = e.mountChild(e.handleBuildError(notBuildable(e.widget, e.self, "StatelessWidget")), nil)
		return
	}
	built := e.safeBuild(func() Widget {
		return widget.Build(e.self)
	})
	e.child = e.mountChild(built, nil)
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatelessElement) HostNodes() []*markup.Node {
	if e.child == nil || !e.mounted {
		return nil
	}
	return e.child.HostNodes()
}

// NodeElement hosts a NodeWidget and its ordered children.
type NodeElement struct {
	elementBase
	node     *markup.Node
	children []Element
	host     []*markup.Node
}

// NewNodeElement returns an unmounted NodeElement.
func NewNodeElement() *NodeElement {
	element := &NodeElement{}
	element.setSelf(element)
	return element
}

func (e *NodeElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	widget, ok := e.widget.(NodeWidget)
	if !ok {
		e.mountFallback(notBuildable(e.widget, e.self, "NodeWidget"))
		return
	}

	if buildErr := e.guard(func() { e.node = widget.CreateNode(e.self) }); buildErr != nil {
		e.mountFallback(buildErr)
		return
	}

	if parentWidget, ok := e.widget.(ChildrenWidget); ok {
		for index, childWidget := range parentWidget.ChildWidgets() {
			if child := e.mountChild(childWidget, index); child != nil {
				e.children = append(e.children, child)
			}
		}
	}

	var childNodes []*markup.Node
	for _, child := range e.children {
		childNodes = append(childNodes, child.HostNodes()...)
	}
	if e.node == nil {
		e.host = childNodes
		return
	}
	e.node.Append(childNodes...)
	e.host = []*markup.Node{e.node}
}

func (e *NodeElement) mountFallback(buildErr *errors.BuildError) {
	e.node = nil
	if child := e.mountChild(e.handleBuildError(buildErr), 0); child != nil {
		e.children = []Element{child}
		e.host = child.HostNodes()
	}
}

func (e *NodeElement) Unmount() {
	e.mounted = false
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
	e.node = nil
	e.host = nil
}

func (e *NodeElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

func (e *NodeElement) HostNodes() []*markup.Node {
	if !e.mounted {
		return nil
	}
	return e.host
}

// Node returns the host node created by the widget, or nil for transparent
// widgets and failed builds.
func (e *NodeElement) Node() *markup.Node {
	return e.node
}

// BoundaryElement hosts a BoundaryWidget. Build failures reported by
// descendants while the child subtree mounts replace that subtree with the
// widget's fallback.
type BoundaryElement struct {
	elementBase
	child     Element
	captured  *errors.BuildError
	capturing bool
}

// NewBoundaryElement returns an unmounted BoundaryElement.
func NewBoundaryElement() *BoundaryElement {
	element := &BoundaryElement{}
	element.setSelf(element)
	return element
}

func (e *BoundaryElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	widget, ok := e.widget.(BoundaryWidget)
	if !ok {
		e.child = e.mountChild(e.handleBuildError(notBuildable(e.widget, e.self, "BoundaryWidget")), nil)
		return
	}

	e.capturing = true
	e.child = e.mountChild(widget.ChildWidget(), nil)
	e.capturing = false

	if e.captured == nil {
		return
	}
	if e.child != nil {
		e.child.Unmount()
	}
	widget.ErrorCaptured(e.captured)
	// Failures inside the fallback propagate to outer boundaries.
	e.child = e.mountChild(e.safeBuild(func() Widget { return widget.Fallback(e.captured) }), nil)
}

// CaptureError implements ErrorBoundaryCapture. Only the first error is
// kept; later errors from the same subtree are absorbed.
func (e *BoundaryElement) CaptureError(err *errors.BuildError) bool {
	if !e.capturing {
		return false
	}
	if e.captured == nil {
		e.captured = err
	}
	return true
}

// Captured returns the error that replaced the subtree, or nil.
func (e *BoundaryElement) Captured() *errors.BuildError {
	return e.captured
}

func (e *BoundaryElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *BoundaryElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *BoundaryElement) HostNodes() []*markup.Node {
	if e.child == nil || !e.mounted {
		return nil
	}
	return e.child.HostNodes()
}

func parentOf(element Element) Element {
	if base, ok := element.(interface{ parentElement() Element }); ok {
		return base.parentElement()
	}
	return nil
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if element == nil {
		return nil
	}
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}

func notBuildable(widget Widget, element Element, want string) *errors.BuildError {
	return &errors.BuildError{
		Widget:    typeName(widget),
		Element:   typeName(element),
		Err:       fmt.Errorf("widget does not implement %s", want),
		Timestamp: time.Now(),
	}
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
