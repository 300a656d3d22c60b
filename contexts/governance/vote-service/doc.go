// Package voteservice implements the formal vote engine inside the
// governance context: a vote is a multi-round decision where each round is a
// numbered ballot wrapping one poll question. The module owns the
// not_started/open/done state machine, contiguous ballot numbering, and the
// winning-option computation under acceptance criteria and quorum. Closed
// rounds are immutable; reopening a done vote is rejected.
package voteservice
