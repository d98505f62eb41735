// Package layout places influence-graph nodes into four fixed lanes.
//
// # Lanes
//
// Nodes are partitioned by category in the fixed order input, policy,
// sector, enterprise. Each category owns one lane:
//
//   - Normal mode: lanes are columns laid out left to right; nodes within a
//     lane are spread along the vertical axis.
//   - Compact mode: lanes are rows stacked top to bottom; nodes within a lane
//     are spread along the horizontal axis.
//
// Within a lane, n nodes divide the full span into n+1 equal segments and
// node i (1-indexed) sits on segment boundary i, giving a one-segment margin
// at both ends. The input lane is the exception: every input node is centred
// on the off-axis, so several inputs share a single slot.
//
// The lane axis is inset by a fixed padding (80 normal, 40 compact) and
// divided into four equal bands; lane k sits in the middle of band k.
//
// # Responsiveness
//
// [IsCompact] derives the mode from the viewport width with a single
// breakpoint, and [Canvas] derives the drawing size from the container width
// and viewport height. A change to either is a reason to call [Compute]
// again; positions are always recomputed wholesale.
//
// # Geometry
//
// [Shorten] trims an edge so that its arrowhead stops at the target's
// boundary instead of its centre, using the approximate node radius from
// [NodeRadius].
//
// All functions are pure and safe for concurrent use.
package layout
