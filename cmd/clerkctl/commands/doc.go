// Package commands defines the clerkctl CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - load        Load the client and print what was loaded
//   - whoami      Print the active user, session and organization
//   - sessions    List the sessions of the client
//   - token       Print a session token for the active session
//   - sign-in     Sign in with a password, an email code or a ticket
//   - sign-out    Sign out of the active session, one session or all
//   - set-active  Switch the active session or organization
//   - watch       Refresh the client periodically and print every change
//   - fake        Serve the fake Frontend API with a demo account
//   - version     Print build information
//
// # Implementation
//
// The root command resolves the configuration (flags, CLERK_* variables, the
// JSON file and defaults) and the logger before any subcommand runs.
// Subcommands that talk to the Frontend API open a client.App, load it and
// close it when they return.
package commands
