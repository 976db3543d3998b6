// Package diag defines the diagnostics produced while replaying generator
// scripts against the scope tracker.
//
// A Diagnostic carries a Severity, a stable Code, a short message and the
// 1-based script line it refers to. Bag collects diagnostics up to a limit
// and sorts them deterministically; Fprint renders them, optionally in
// colour.
package diag
