package risk

import "fmt"

// Verdict is the Governor's ruling on a candidate signal.
type Verdict string

const (
	Enter   Verdict = "ENTER"
	NoTrade Verdict = "NO_TRADE"
	Exit    Verdict = "EXIT"
)

// SignalType classifies a candidate signal.
type SignalType string

const (
	Entry      SignalType = "ENTRY"
	ExitSignal SignalType = "EXIT"
)

// PositionRef is the caller's snapshot of one open position, used for
// sector-exposure accounting. The Governor owns no position state: callers
// issuing a batch of dependent entries must feed each accepted ENTER back
// into Existing before the next Run.
type PositionRef struct {
	Symbol string
	Sector string
}

// Request carries everything the Governor needs to rule on one signal.
// PnLPct and DecayedConfidence are optional and only consulted for exits.
type Request struct {
	Type        SignalType
	Symbol      string
	Price       float64
	Confidence  float64
	Size        int
	Sector      string
	DailyVolume float64

	Existing          []PositionRef
	PnLPct            *float64
	DecayedConfidence *float64
}

// Governor is the final decision authority over every trade: it validates
// inputs, then applies entry/exit rules, and can veto any signal. It holds
// only the immutable Limits, so Run is reentrant and side-effect-free.
type Governor struct {
	Limits Limits
}

func NewGovernor(lim Limits) Governor {
	return Governor{Limits: lim}
}

// Run rules on a single candidate signal and returns the verdict with a
// human-readable reason for the audit trail.
func (g Governor) Run(req Request) (Verdict, string) {
	if reason := g.validate(req); reason != "" {
		return NoTrade, fmt.Sprintf("input validation failed: %s", reason)
	}

	switch req.Type {
	case Entry:
		return g.ruleOnEntry(req)
	case ExitSignal:
		return g.ruleOnExit(req)
	default:
		return NoTrade, fmt.Sprintf("unknown signal type: %s", req.Type)
	}
}

// validate performs the stage-one sanity checks. The size check is skipped
// for exits, which close whatever is held.
func (g Governor) validate(req Request) string {
	if req.Price < g.Limits.MinPrice || req.Price > g.Limits.MaxPrice {
		return fmt.Sprintf("price $%.2f outside valid range", req.Price)
	}
	if req.Confidence < 0 || req.Confidence > 100 {
		return fmt.Sprintf("confidence %.1f%% outside valid range", req.Confidence)
	}
	if req.Size <= 0 && req.Type == Entry {
		return fmt.Sprintf("invalid position size: %d", req.Size)
	}
	if req.DailyVolume < g.Limits.MinLiquidity {
		return fmt.Sprintf("insufficient liquidity: %.0f shares", req.DailyVolume)
	}
	return ""
}

func (g Governor) ruleOnEntry(req Request) (Verdict, string) {
	if req.Confidence < g.Limits.MinConfidence {
		return NoTrade, fmt.Sprintf("confidence %.1f%% below minimum %.1f%%",
			req.Confidence, g.Limits.MinConfidence)
	}

	if req.Size > g.Limits.MaxPositionSize {
		return NoTrade, fmt.Sprintf("position size %d exceeds maximum %d",
			req.Size, g.Limits.MaxPositionSize)
	}

	if reason := g.checkSectorExposure(req.Sector, req.Existing); reason != "" {
		return NoTrade, fmt.Sprintf("sector exposure violation: %s", reason)
	}

	return Enter, fmt.Sprintf("entry approved: confidence %.1f%%, size %d shares",
		req.Confidence, req.Size)
}

// ruleOnExit always returns Exit; only the reason distinguishes a forced
// exit from a normal one. Confidence decay is checked before drawdown.
func (g Governor) ruleOnExit(req Request) (Verdict, string) {
	if req.DecayedConfidence != nil && *req.DecayedConfidence < g.Limits.ForceExitConfidence {
		return Exit, fmt.Sprintf("force exit: confidence decayed to %.1f%%", *req.DecayedConfidence)
	}

	if req.PnLPct != nil && *req.PnLPct < -g.Limits.MaxDrawdown*100 {
		return Exit, fmt.Sprintf("force exit: drawdown %.1f%% exceeds limit", *req.PnLPct)
	}

	return Exit, "normal exit"
}

// checkSectorExposure rejects an entry that would push the candidate's
// sector above the exposure cap, counting the candidate itself.
func (g Governor) checkSectorExposure(sector string, existing []PositionRef) string {
	if len(existing) == 0 {
		return ""
	}

	sectorCount := 0
	for _, p := range existing {
		if p.Sector == sector {
			sectorCount++
		}
	}

	exposure := float64(sectorCount+1) / float64(len(existing)+1)
	if exposure > g.Limits.MaxSectorExposure {
		return fmt.Sprintf("%s exposure would be %.0f%% (max %.0f%%)",
			sector, exposure*100, g.Limits.MaxSectorExposure*100)
	}
	return ""
}
