// Package outpost holds shared metadata for the Outpost capability server.
package outpost

// Version is the current Outpost release.
const Version = "0.2.0"
