// Package logging builds the zap logger shared by the CLI, the admin server
// and the terminal UI.
package logging
