// Package filesystem provides the filesystem abstraction used by macstage.
//
// Every component that touches disk (layout materialization, the defaults
// document writer, the application scanner and the stager) goes through the
// FS interface so tests can point them at a temporary directory tree.
package filesystem
