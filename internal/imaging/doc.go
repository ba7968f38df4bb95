// Package imaging provides the image handling around line detection:
// loading and caching source images, producing the binary edge mask the
// detector consumes, cropping regions of interest, and rendering results
// (segment overlays and accumulator heat maps) as PNG.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Edge Masks
//
// Canny returns an *image.Gray with edges at 255 and background at 0, the
// form hough.Detect requires. Images that already are edge masks can be
// binarized with BinaryMask instead.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and never modify their inputs.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or with x1 >= x2 or y1 >= y2
//   - Canny thresholds that are negative or inverted
//   - File I/O and decoding errors during image loading
//   - Encoding errors during PNG output
package imaging
