// Package textutil sanitizes free text (sample names, data file stems) into
// tokens that are safe to use in entry and export file names.
package textutil
