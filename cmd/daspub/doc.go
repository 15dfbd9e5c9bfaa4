// Package main hosts the daspub CLI entrypoint and command graph.
//
// The Cobra-based command tree reads the configured archives through the
// internal archive model and renders statuses, hierarchy listings,
// submission tables, and catalog exports. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on
// output instead of wiring.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
