// Package cli provides the interactive airctl command-line client.
//
// It wires configuration, the local session database, the booking API and
// an interactive REPL. A session remembered from an earlier run is resumed
// on start, so a signed-in traveller can go straight to booking.
//
// Commands:
//   - register / login / logout
//   - search (by departure, destination or both)
//   - book / tickets / cancel
//   - addflight / profile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
