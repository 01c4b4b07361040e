// Package app wires the loaders, the build model and the resolver together
// and renders resolved link lines for the command line.
package app
