// Package hist provides symbol histograms and the bijective remaps derived
// from them.
//
// Sorting a histogram ranks symbols by descending frequency. The resulting
// Remap relabels frequent symbols to small values so that a single fixed shape
// entropy coder, such as a Golomb-Rice code, behaves as if it were tailored to
// the observed distribution.
package hist
