// Package app wires application dependencies for the CLI and the server.
//
// It loads Config from the environment, builds the concrete stores and
// services from it (Wire), and exposes the collaborator-facing surface as App.
package app
