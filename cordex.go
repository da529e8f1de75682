// Package cordex contains small tools to clean, derive and aggregate
// CORD-19 style bibliographic metadata tables.
package cordex

// Version of the toolkit.
const Version = "0.1.0"
