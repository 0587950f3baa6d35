// The cache subpackage implements the sprite cache: a growable table
// mapping sprite identifiers to entries that remember where on disk
// their data lives and, optionally, hold the decoded renderer-native
// payload.
//
// Decoding is lazy: an entry's payload is only produced on the first
// request after registration or after eviction, by running the decoded
// frames through the resolution pipeline (deriving missing zoom levels
// and padding all of them to a shared aligned bounding box) and then
// through the renderer's encoder. Payloads are evicted in strict
// least-recently-used order whenever a periodic budget check finds the
// cache over its byte budget; location metadata always survives
// eviction, so any sprite can be transparently reloaded.
//
// Sizing advice is simpler here than for most caches: the budget is
// the amount of decoded sprite data you can afford to keep around, and
// anything evicted merely costs a re-decode on next use. A few MiB per
// 8 bits of renderer depth is the traditional default. Undersizing the
// cache never breaks correctness, it only converts memory into disk
// reads and decode work.
//
// The cache follows the engine's cooperative single-writer model and
// must not be used concurrently.
package cache
