// Package util provides generic slice, map and pointer helpers used across
// the resolver library.
package util
