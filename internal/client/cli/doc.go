// Package cli provides the interactive classifieds command-line client.
//
// It wires configuration, the local session database, the backend HTTP
// client and the services into a REPL. The command set follows the session:
// guests can register, log in and recover a password; logged-in users manage
// their ads and use the contact form; administrators additionally moderate
// users and ads through the admin panel.
//
// The REPL is started via App.Run(ctx), which restores the saved session and
// blocks until the user exits. See App, Root and runREPL for details.
package cli
