// Package abspl parses text exports from the absolute photoluminescence
// instrument into structured settings, results, and spectral arrays.
//
// An export is a Windows-1252 text file with a tab-separated key/value header,
// a dashed separator line, one column-header line, and whitespace-separated
// numeric rows:
//
//	Laser intensity (suns)	0.91
//	LuQY (%)	0.0677
//	-----------------------
//	Wavelength LumFlux RawCounts DarkCounts
//	500.0 1.0e12 100 5
//
// Parsing is best-effort. Undecodable bytes become U+FFFD, header values that
// fail numeric conversion are left unset, and malformed rows are dropped from
// all four arrays at once. Each of these events is logged and recorded as an
// Anomaly on the Result. Only I/O failures while reading the source are
// returned as errors.
//
// Parse, ParseReader, and ParseFile keep no state between calls and may be
// used concurrently on independent inputs.
package abspl
