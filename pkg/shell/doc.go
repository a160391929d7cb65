// Package shell identifies the user's interactive shell and the run-control
// and login-profile files it reads.
//
// Only bash, zsh and fish are recognised. Anything else is Unsupported and
// has no files to stage.
package shell
