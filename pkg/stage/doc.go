// Package stage copies files into the staging layout.
//
// Every operation is skip-if-exists: a destination that is already staged is
// left untouched, and a missing source is reported rather than treated as an
// error. File writes run as a synthfs pipeline.
package stage
