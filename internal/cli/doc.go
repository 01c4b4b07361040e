// Package cli turns command-line arguments into a validated app.Config.
package cli
