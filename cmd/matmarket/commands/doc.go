// Package commands defines the matmarket CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register   Create an account (email, password, confirmation, terms)
//   - login      Check an email and password pair
//   - sell       Publish a material listing with up to five images
//   - listings   Print every published listing
//
// # Implementation
//
// The root command loads MATMARKET_* configuration, applies flag overrides and
// builds the app before any subcommand runs. With --server (or
// MATMARKET_SERVER_URL) the same commands talk to a running marketd over HTTP
// instead of the local JSON files.
package commands
