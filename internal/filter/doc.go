// Package filter implements the stateful block filters applied during
// playback: an arbitrary-order, multi-channel IIR filter in direct form II
// transposed, and a feedforward/feedback comb delay. Both are reachable
// through the tagged Filter variant, which the playback loop drives without
// inspecting concrete types.
//
// All sample arithmetic is single precision. Filter state is carried across
// block boundaries, so filtering a signal in one call or split into several
// consecutive calls yields identical output.
package filter
