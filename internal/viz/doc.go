// Package viz provides the live terminal view of a propagating wave packet.
//
// [Model] is a bubbletea program model. Each tick advances its propagator by
// a fixed number of dt steps in place and redraws |psi|² with asciigraph,
// alongside the elapsed time (in units of the period T), the norm and a norm
// sparkline.
//
// Keys: space pauses, r restarts from the initial packet, + and - change the
// steps per tick, q quits.
package viz
