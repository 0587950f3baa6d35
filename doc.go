// gfxcache provides the asset side of a classic 2D game engine: a
// bounded sprite cache with lazy decode and multi-zoom resolution
// synthesis, a glyph and font subsystem with fallback support, shared
// asset container access and best-effort sound resampling.
//
// Main packages:
//   - gfxcache (this package): the [Engine] facade wiring everything
//     together from a [config.Settings] value.
//   - gfxcache/cache: the sprite cache itself, usable standalone.
//   - gfxcache/fontcache: per-size glyph caches and the character
//     ownership registry.
//   - gfxcache/asset: shared asset container files.
//   - gfxcache/loader: the decode-side contract container format
//     parsers implement.
//   - gfxcache/resample: sound rate conversion.
//
// The engine follows a cooperative single-writer model: all sprite and
// font operations happen from one goroutine, the way a game loop works.
// Construction, rendering backends and container parsers are injected,
// so every piece can be tested in isolation.
package gfxcache
