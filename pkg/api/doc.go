// Package api defines the request and response messages of the godutch
// RPC services.
//
// Messages are plain Go structs carried over Connect with the JSON codec in
// this package. Money amounts travel as decimal strings ("12.50") so no
// precision is lost on the wire.
package api
