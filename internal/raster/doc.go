// Package raster converts between encoded image bytes and the pixel
// grids the steg package operates on.
//
// Ingestion accepts PNG, JPEG, GIF, and BMP buffers and normalizes them:
// grayscale images become single-channel grids, everything else becomes
// three-channel RGB grids with alpha discarded. Malformed buffers are
// rejected here so the core never sees them.
//
// Emission is lossless only. Channel values are written verbatim as PNG
// or BMP; JPEG output is deliberately unsupported, since lossy
// compression resamples channel values and destroys the embedded LSBs.
package raster
