package core

// StatelessBase provides default CreateElement and Key implementations for
// stateless widgets. Embed it in your widget struct to satisfy the Widget
// interface without boilerplate:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
//
//	func (g Greeting) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: "Hello, " + g.Name}
//	}
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return NewStatelessElement() }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// NodeBase provides default CreateElement and Key implementations for node
// widgets:
//
//	type Rule struct {
//	    core.NodeBase
//	}
//
//	func (Rule) CreateNode(ctx core.BuildContext) *markup.Node {
//	    return markup.Element("hr")
//	}
type NodeBase struct{}

// CreateElement returns a new NodeElement.
func (NodeBase) CreateElement() Element { return NewNodeElement() }

// Key returns nil (no key).
func (NodeBase) Key() any { return nil }

// InheritedBase provides default CreateElement and Key implementations for
// inherited widgets. Embed it in your widget struct along with a Child field
// and implement [InheritedWidget.ChildWidget]:
//
//	type AuthorScope struct {
//	    core.InheritedBase
//	    Author string
//	    Child  core.Widget
//	}
//
//	func (a AuthorScope) ChildWidget() core.Widget { return a.Child }
type InheritedBase struct{}

// CreateElement returns a new InheritedElement.
func (InheritedBase) CreateElement() Element { return NewInheritedElement() }

// Key returns nil (no key).
func (InheritedBase) Key() any { return nil }

// BoundaryBase provides default CreateElement and Key implementations for
// boundary widgets.
type BoundaryBase struct{}

// CreateElement returns a new BoundaryElement.
func (BoundaryBase) CreateElement() Element { return NewBoundaryElement() }

// Key returns nil (no key).
func (BoundaryBase) Key() any { return nil }

// Builder creates an inline stateless widget from a closure. Use it for
// small fragments that need the BuildContext but do not deserve a named type:
//
//	core.Builder(func(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: theme.ThemeOf(ctx).Brightness.String()}
//	})
func Builder(build func(ctx BuildContext) Widget) Widget {
	return builderWidget{build: build}
}

type builderWidget struct {
	StatelessBase
	build func(ctx BuildContext) Widget
}

func (b builderWidget) Build(ctx BuildContext) Widget {
	if b.build == nil {
		return nil
	}
	return b.build(ctx)
}
