// Package imaging implements garment recoloring: the per-pixel color
// transformation, the palette of named adjustments, variant generation with
// optional overlays, and the image loading and inspection helpers used by
// the batch runner and the MCP server.
//
// # Recolor Model
//
// A ColorAdjustment replaces the hue and saturation of every visible pixel
// and scales its lightness by a percentage. The source lightness is the only
// property carried over, so shading and highlights drawn into the sprite
// survive while its original color does not. Fully transparent pixels are
// copied through untouched and alpha is never modified.
//
// Channel values are converted back to 8 bits by truncation. Output pixel
// values are therefore stable across runs and match previously generated art.
//
// # Image Types
//
// Transform accepts any image.Image and always returns a new *image.NRGBA
// (straight alpha) with its origin at (0,0). Sources are never mutated, so
// every palette entry starts from the same pixels.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Transform, CompositeOver and
// GenerateVariants hold no shared state; CompositeOver mutates only its dst.
//
// # Error Handling
//
// The transformation itself cannot fail. Errors come from file I/O (Open,
// ImageCache.Load, LoadImageInfo), from invalid inspection arguments
// (SampleColor, DominantColorsBy), and from EachVariant callbacks, which are
// wrapped with the adjustment name.
package imaging
