// Package mathtex hands TeX markup to the math typesetting collaborator.
//
// Glyph layout is not done here. A [Renderer] turns an [Expression] into a
// host node carrying delimited markup that KaTeX typesets in the browser.
// Markup that fails the structural check in [Validate] is never passed on;
// renderers return a visible fallback holding the raw source instead.
package mathtex
