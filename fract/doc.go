// The fract subpackage defines a compact 26.6 fixed-point type used
// across gfxcache for fractional sprite scales and font metrics.
//
// Zoom levels only cover power-of-two resolutions; whenever a sprite
// is requested at an intermediate scale (say, 1.25x for a UI that sits
// between two zoom tiers), that scale travels through the cache as a
// [Unit]. Using a fixed-point key instead of a float keeps scale
// comparison exact, which matters because the fractional buffer of a
// cache entry is invalidated by scale identity, not by closeness.
package fract
