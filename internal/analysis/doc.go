// Package analysis provides local heuristics for judging whether an
// image carries an LSB-embedded payload, and for measuring the visual
// cost of embedding one.
//
// The heuristics are statistical, not proof: natural images tend to
// have biased LSB planes and uneven value-pair histograms, while LSB
// embedding pushes the ones-ratio toward 0.5 and evens out adjacent
// value pairs. Inspect reports both signals per channel. LSBPlane
// renders the amplified bit plane for visual review, and Distortion
// quantifies the perceptual difference between a cover and its stego
// counterpart.
//
// All functions are stateless and safe for concurrent use on
// independent images.
package analysis
