// The font subpackage contains helper functions to parse vector fonts
// and obtain information from them (name, family, coverage, etc.),
// alongside a [Library] type that keeps parsed fonts accessible by
// name.
//
// The glyph caches resolve their configured interface and fallback
// fonts through a [Library]; everything here is independent of the
// sprite pipeline and can be used on its own.
package font
