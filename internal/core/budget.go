// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// Budget bundles every configured cap. A zero value field means unlimited,
// matching spec.md §4.3's "all optional caps; None = unlimited". The
// alias/anchor ratio gate follows the same rule: a MinAliasesForRatioGate
// of zero (or below) disables it.
type Budget struct {
	MaxReaderInputBytes int

	MaxEvents    int
	MaxNodes     int
	MaxDepth     int
	MaxDocuments int

	MaxAnchors          int
	MaxAliases          int
	MaxTotalScalarBytes int
	MaxMergeKeys        int

	MaxAliasExpansionsPerAnchor int
	MaxTotalReplayedEvents      int
	MaxReplayStackDepth         int

	// Alias/anchor ratio gate: once Aliases >= MinAliasesForRatioGate,
	// require Aliases <= Anchors * RatioMultiplier. MinAliasesForRatioGate
	// <= 0 disables the gate.
	MinAliasesForRatioGate int
	RatioMultiplier        int
}

// DefaultBudget matches the conservative defaults the reference
// implementation ships, sized to stop pathological (alias-bomb) inputs
// while comfortably accommodating realistic documents.
func DefaultBudget() Budget {
	return Budget{
		MaxReaderInputBytes: 64 << 20,

		MaxEvents:    2_000_000,
		MaxNodes:     1_000_000,
		MaxDepth:     512,
		MaxDocuments: 100_000,

		MaxAnchors:          100_000,
		MaxAliases:          1_000_000,
		MaxTotalScalarBytes: 256 << 20,
		MaxMergeKeys:        100_000,

		MaxAliasExpansionsPerAnchor: 100_000,
		MaxTotalReplayedEvents:      4_000_000,
		MaxReplayStackDepth:         256,

		MinAliasesForRatioGate: 16,
		RatioMultiplier:        32,
	}
}

// BudgetMonitor tracks running totals for one document tree (it is reset,
// along with the rest of DocumentContext, on DocumentEnd) and enforces the
// configured Budget.
type BudgetMonitor struct {
	cfg Budget

	events           int
	nodes            int
	depth            int
	documents        int
	anchors          int
	aliases          int
	totalScalarBytes int
	mergeKeys        int
	replayedEvents   int
	replayStackDepth int

	perAnchorExpansions map[int]int
}

// NewBudgetMonitor builds a monitor for the configured caps. It persists
// across documents for the counters spec.md marks document-scoped
// (MaxDocuments) and is otherwise reset per document by the caller.
func NewBudgetMonitor(cfg Budget) *BudgetMonitor {
	return &BudgetMonitor{cfg: cfg, perAnchorExpansions: map[int]int{}}
}

// ResetForDocument clears per-document counters while keeping the document
// count itself (I1/I7 lifecycle: "Cleared on DocumentEnd").
func (b *BudgetMonitor) ResetForDocument() {
	b.events = 0
	b.nodes = 0
	b.totalScalarBytes = 0
	b.replayedEvents = 0
	b.anchors = 0
	b.aliases = 0
	b.mergeKeys = 0
	b.depth = 0
	b.replayStackDepth = 0
	b.perAnchorExpansions = map[int]int{}
}

func (b *BudgetMonitor) check(cap int, observed int, name string, loc Location) error {
	if cap > 0 && observed > cap {
		return errBudget(loc, BudgetBreach{Cap: name, Limit: cap, Observed: observed})
	}
	return nil
}

// Event must be called for every event the Event Queue hands to the
// consumer (I5: "breach is reported before the offending event is
// consumed").
func (b *BudgetMonitor) Event(loc Location) error {
	b.events++
	return b.check(b.cfg.MaxEvents, b.events, "max_events", loc)
}

func (b *BudgetMonitor) Node(loc Location) error {
	b.nodes++
	return b.check(b.cfg.MaxNodes, b.nodes, "max_nodes", loc)
}

func (b *BudgetMonitor) EnterDepth(loc Location) error {
	b.depth++
	return b.check(b.cfg.MaxDepth, b.depth, "max_depth", loc)
}

func (b *BudgetMonitor) LeaveDepth() {
	if b.depth > 0 {
		b.depth--
	}
}

func (b *BudgetMonitor) Document(loc Location) error {
	b.documents++
	return b.check(b.cfg.MaxDocuments, b.documents, "max_documents", loc)
}

func (b *BudgetMonitor) Anchor(loc Location) error {
	b.anchors++
	return b.check(b.cfg.MaxAnchors, b.anchors, "max_anchors", loc)
}

// Alias accounts one alias reference and enforces the ratio gate (P9).
func (b *BudgetMonitor) Alias(loc Location) error {
	b.aliases++
	if err := b.check(b.cfg.MaxAliases, b.aliases, "max_aliases", loc); err != nil {
		return err
	}
	if b.cfg.MinAliasesForRatioGate > 0 && b.aliases >= b.cfg.MinAliasesForRatioGate {
		mult := b.cfg.RatioMultiplier
		if mult <= 0 {
			mult = 1
		}
		if b.aliases > b.anchors*mult {
			return errBudget(loc, BudgetBreach{Cap: "alias_anchor_ratio", Limit: b.anchors * mult, Observed: b.aliases})
		}
	}
	return nil
}

func (b *BudgetMonitor) ScalarBytes(loc Location, n int) error {
	b.totalScalarBytes += n
	return b.check(b.cfg.MaxTotalScalarBytes, b.totalScalarBytes, "max_total_scalar_bytes", loc)
}

func (b *BudgetMonitor) MergeKey(loc Location) error {
	b.mergeKeys++
	return b.check(b.cfg.MaxMergeKeys, b.mergeKeys, "max_merge_keys", loc)
}

func (b *BudgetMonitor) AliasExpansion(loc Location, anchorID int) error {
	b.perAnchorExpansions[anchorID]++
	return b.check(b.cfg.MaxAliasExpansionsPerAnchor, b.perAnchorExpansions[anchorID], "max_alias_expansions_per_anchor", loc)
}

func (b *BudgetMonitor) ReplayedEvent(loc Location) error {
	b.replayedEvents++
	return b.check(b.cfg.MaxTotalReplayedEvents, b.replayedEvents, "max_total_replayed_events", loc)
}

func (b *BudgetMonitor) EnterReplay(loc Location) error {
	b.replayStackDepth++
	return b.check(b.cfg.MaxReplayStackDepth, b.replayStackDepth, "max_replay_stack_depth", loc)
}

func (b *BudgetMonitor) LeaveReplay() {
	if b.replayStackDepth > 0 {
		b.replayStackDepth--
	}
}
