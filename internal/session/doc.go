// Package session keeps a coloring page in sync with its adjustment
// parameters.
//
// A Converter models the interactive flow of picking a photo, moving the
// brightness and contrast sliders, and downloading the result. Slider moves
// arrive faster than pages can be rendered, so recomputation is driven by an
// explicit state machine:
//
//	Idle ──Open──▶ Processing ──done──▶ Ready
//	                  ▲   │                │
//	                  │   └─change─▶ (rerun queued)
//	                  │                    │
//	              timer fires       change │
//	                  │                    ▼
//	                  └──────────── PendingDebounce ◀─┐
//	                                       │  change  │
//	                                       └──────────┘
//
// Reset returns to Idle from any state.
package session
