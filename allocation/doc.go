// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation turns a session's votes into shares of the stake.

# Completion

A session with N participants is complete once it holds N×(N−1) vote rows:

	done := allocation.Complete(len(participants), len(votes))

Until then Pending builds the restricted view, masking descriptions as
"Submitted" unless every participant has one or the caller is the admin.

# Scoring Methods

Compute dispatches on the session's method. Methods are never mixed within a
session.

Weighted: each recipient's received shares are averaged, weighted by the
voter's role weight, then multiplied by the recipient's ppp weight:

	score    = avg × pppWeight
	final    = floor(score / Σ scores × stake)

Mean: the sum of received shares divided by the participant count, floored.

Flooring means the allocated total can fall short of the stake. Unallocated
reports the difference.
*/
package allocation
