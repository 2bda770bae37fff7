// Package core provides the widget and element framework interfaces and the
// single-pass mount lifecycle.
//
// This package defines the foundational types for describing documents
// declaratively: Widget, Element and BuildContext. Widgets describe what the
// document should contain; a BuildOwner inflates them into an element tree
// and collects the host nodes (see pkg/markup) the display layer serializes.
//
// # Core Types
//
// Widget is an immutable description of part of the document. Widgets are
// lightweight configuration values built from struct literals.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. The element tree is what finders in pkg/testing walk.
//
// # Widget Kinds
//
//   - StatelessWidget composes other widgets in Build.
//   - NodeWidget produces a host node; the host nodes of its ChildWidgets are
//     appended to it in order.
//   - InheritedWidget exposes configuration (theme, math renderer, asset
//     resolver) to descendants through DependOnInherited.
//   - BoundaryWidget isolates build failures of its subtree.
//
// # Rendering Model
//
// A render is a single synchronous pass: Mount inflates the whole tree, each
// element finishes its host node before returning, and the tree is discarded
// afterwards. There is no rebuild scheduling; a new render builds a new tree.
//
// # Constructor Conventions
//
// Widgets are struct literals. Embed StatelessBase, NodeBase or
// InheritedBase to satisfy the Widget interface without boilerplate.
package core
