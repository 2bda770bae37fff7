// Package widgets provides the document components used to build articles.
//
// This package contains the concrete widget implementations: text and
// structure (Text, Strong, Paragraph, Heading, Section, Header), math
// (InlineMath, LatexBlock), framed containers (Theorem, Note, CodeWindow),
// media (Image, Figure), lists and responsive columns, plus the scopes that
// provide the math renderer and asset resolver to a subtree.
//
// # Widget Construction
//
// Widgets are struct literals:
//
//	widgets.Theorem{
//	    Title: "The Geometric Form of Itô's Lemma",
//	    Children: []core.Widget{
//	        widgets.ParagraphOf(widgets.Text{Content: "Let "}, widgets.InlineMath{TeX: "X_t"}),
//	        widgets.LatexBlock{Equation: `dX_t = \mu_t dt + \sigma_t dW_t`},
//	    },
//	}
//
// ParagraphOf, SectionOf and T exist for ergonomics in long literal trees.
//
// # Styling
//
// No widget emits presentation. Each host node is tagged with a
// [theme.StyleRole] and the class comes from the StyleResolver in scope, so
// swapping the theme restyles the document without touching content.
//
// # Degradation
//
// Failures never halt a render:
//
//   - Malformed math renders the raw source in a math-error code element.
//   - A missing image renders a broken-image indicator in its place.
//   - A panicking widget is replaced by the nearest ErrorBoundary fallback,
//     or by an ErrorWidget when no boundary is in scope.
//
// Each case is reported to the handler in pkg/errors.
package widgets
