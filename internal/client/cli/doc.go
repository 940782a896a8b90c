// Package cli provides the journal command-line client.
//
// Every invocation loads configuration, opens the local SQLite store and
// builds the engine and API services before running a single cobra command.
// Content passed to encrypt, entry add and task add is read from the
// arguments, from a hidden prompt when stdin is a terminal, or from stdin
// otherwise:
//
//	journal encrypt -u user-1 "dear diary"
//	journal decrypt -u user-1 'enc2:...'
//	journal salt -u user-1
//	journal signin -u user-1 -t $TOKEN
//	journal entry add -u user-1 -t $TOKEN --mood calm "today was quiet"
//	journal task list -u user-1 -t $TOKEN
package cli
