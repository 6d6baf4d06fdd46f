// Package playback drives a block-streaming session from a sample source
// through an optional filter to a meter and an output sink.
//
// A Session is synchronous: each iteration performs one read, one filter
// pass, one meter update and one blocking sink write, in that order. The
// user toggle is polled between blocks to pause and resume. The session ends
// when the source delivers a short block, when the sink rejects a write, or
// when the context is cancelled. In every case the sink is stopped and
// closed and the source is rewound so it can be played again.
package playback
