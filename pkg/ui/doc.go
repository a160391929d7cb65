// Package ui renders macstage's user-facing output: one styled line per
// staging step, notices, the interactive base-path prompt and the closing
// Markdown summary.
//
// Styling is applied only when the output is a colour-capable terminal and
// NO_COLOR is unset; otherwise the same text is printed plain.
package ui
