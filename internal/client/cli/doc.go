// Package cli implements the interactive terminal client for UF MarketPlace.
//
// The App type wires the session store, the REST gateway and the services
// together; runREPL dispatches user commands onto it. Input helpers and the
// wall clock sit behind package-level function variables so tests can script
// whole flows without a terminal.
package cli
