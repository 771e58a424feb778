// Package measurement is the entry model that absolute PL exports are
// normalized into.
//
// A Measurement carries typed, unit-tagged settings and one or more results.
// Normalize reads the attached data file through an fs.FS, runs the abspl
// parser, and copies recognised values into the entry. Parse problems never
// abort normalization: an unreadable file leaves the entry as it was, and a
// partially malformed file contributes whatever was recovered.
package measurement
