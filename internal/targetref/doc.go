// Package targetref parses the references a user passes on the command line
// to name a target and, optionally, the configuration to resolve it for.
//
// The canonical form is `name` or `name@Config`. A reference without a
// configuration stands for every configuration the project declares.
package targetref
