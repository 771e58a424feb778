// Package main hosts the luqy CLI entrypoint and command graph.
//
// Commands parse absolute photoluminescence exports, print what was
// recovered, and write normalized entries as JSON or Excel workbooks.
// Configuration resolution and logger setup live in commandContext so
// subcommands only deal with their own flags.
package main
