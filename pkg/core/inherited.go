package core

import (
	"github.com/go-drift/folio/pkg/markup"
)

// InheritedElement hosts an InheritedWidget. Descendants find it through
// [BuildContext.DependOnInherited]; it contributes its child's host nodes
// unchanged.
type InheritedElement struct {
	elementBase
	child Element
}

// NewInheritedElement returns an unmounted InheritedElement.
func NewInheritedElement() *InheritedElement {
	element := &InheritedElement{}
	element.setSelf(element)
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	widget, ok := e.widget.(InheritedWidget)
	if !ok {
		e.child = e.mountChild(e.handleBuildError(notBuildable(e.widget, e.self, "InheritedWidget")), nil)
		return
	}
	e.child = e.mountChild(widget.ChildWidget(), nil)
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *InheritedElement) HostNodes() []*markup.Node {
	if e.child == nil || !e.mounted {
		return nil
	}
	return e.child.HostNodes()
}
