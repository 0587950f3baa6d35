// The fontcache subpackage implements the glyph side of the engine:
// per-size font caches that map characters to glyph payloads, either
// backed by the built-in bitmap font sprites or by rasterizing a
// vector font, plus a [Registry] that decides which cache owns each
// character.
//
// Ownership follows an explicit priority order per font size: when
// several caches cover the same character, the one registered with
// higher priority claims it. This is what makes fallback fonts work,
// since a fallback only ever serves the characters the primary font
// lacks.
package fontcache
