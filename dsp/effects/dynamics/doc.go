// Package dynamics provides the offline dynamics processors of the
// mastering chain.
//
// Included processors:
//   - EnvelopeFollower: one-pole peak follower with separate attack and
//     release time constants.
//   - Compressor: soft-knee downward compressor whose gain curve is
//     evaluated in the linear domain, followed by makeup gain.
//   - LookaheadLimiter: brickwall peak limiter that scans a bounded future
//     window with a monotonic deque, attacks instantly and releases with a
//     one-pole smoother.
//
// Processors operate on complete, resident buffers. Each value keeps
// per-buffer state and is not safe for concurrent use; create one per
// buffer.
package dynamics
