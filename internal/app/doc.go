// Package app wires the wizard's collaborators for the CLI and the TUI.
//
// It loads the project configuration, opens the journey logbook and builds
// controllers with the stub wallet, the in-memory registry and the proof
// package loader attached.
package app
