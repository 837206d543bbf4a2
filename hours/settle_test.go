package hours_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
)

func breakdown(normal, overtime, night, holiday float64) hours.HourBreakdown {
	return hours.HourBreakdown{
		Normal:   dec(normal),
		Overtime: dec(overtime),
		Night:    dec(night),
		Holiday:  dec(holiday),
	}
}

// =============================================================================
// NEGATIVE-HOUR SETTLEMENT
// =============================================================================

func TestSettle_DebtExceedsOvertime(t *testing.T) {
	// GIVEN: 3h overtime, 5h debt
	// THEN: Overtime is wiped, 2h debt remains

	result := hours.Settle(breakdown(8, 3, 0, 0), dec(5))
	assertBreakdown(t, result.Breakdown, 8, 0, 0, 0)
	if !result.DebtRemaining.Equal(dec(2)) {
		t.Errorf("expected 2h debt remaining, got %v", result.DebtRemaining)
	}
}

func TestSettle_OvertimeCoversDebt(t *testing.T) {
	result := hours.Settle(breakdown(8, 3, 0, 0), dec(2))
	assertBreakdown(t, result.Breakdown, 8, 1, 0, 0)
	if !result.DebtRemaining.IsZero() {
		t.Errorf("expected no debt remaining, got %v", result.DebtRemaining)
	}
}

func TestSettle_ZeroDebtIsNoOp(t *testing.T) {
	result := hours.Settle(breakdown(8, 3, 1, 0), decimal.Zero)
	assertBreakdown(t, result.Breakdown, 8, 3, 1, 0)
	if !result.DebtRemaining.IsZero() {
		t.Errorf("expected no debt remaining, got %v", result.DebtRemaining)
	}
}

func TestSettle_OnlyOvertimeIsDrawn(t *testing.T) {
	// Normal, night, and holiday buckets never pay down debt.
	result := hours.Settle(breakdown(8, 0, 2, 4), dec(3))
	assertBreakdown(t, result.Breakdown, 8, 0, 2, 4)
	if !result.DebtRemaining.Equal(dec(3)) {
		t.Errorf("expected full 3h debt remaining, got %v", result.DebtRemaining)
	}
}

func TestSettle_NegativeInputClampedToZero(t *testing.T) {
	// Callers are expected to clamp; the core defends anyway.
	result := hours.Settle(breakdown(8, 3, 0, 0), dec(-2))
	assertBreakdown(t, result.Breakdown, 8, 3, 0, 0)
	if !result.DebtRemaining.IsZero() {
		t.Errorf("expected no debt remaining, got %v", result.DebtRemaining)
	}
}

// =============================================================================
// PAID-HOUR ALLOCATION
// =============================================================================

func TestAllocate_ExplicitTarget(t *testing.T) {
	// GIVEN: Target bucket "overtime" with 2h held, 1h requested
	// THEN: Only overtime is drawn, normal untouched

	result := hours.Allocate(breakdown(8, 2, 0, 0), dec(1), hours.BucketOvertime)
	assertBreakdown(t, result.Breakdown, 8, 1, 0, 0)
	if !result.HoursApplied.Equal(dec(1)) {
		t.Errorf("expected 1h applied, got %v", result.HoursApplied)
	}
}

func TestAllocate_TargetShortfallDoesNotSpill(t *testing.T) {
	// GIVEN: 3h requested against a night bucket holding only 1h
	// THEN: 1h applied, the other buckets keep their hours

	result := hours.Allocate(breakdown(8, 2, 1, 0), dec(3), hours.BucketNight)
	assertBreakdown(t, result.Breakdown, 8, 2, 0, 0)
	if !result.HoursApplied.Equal(dec(1)) {
		t.Errorf("expected 1h applied from night only, got %v", result.HoursApplied)
	}
}

func TestAllocate_NoTarget_GreedyPriorityOrder(t *testing.T) {
	// GIVEN: No target, 2h requested, normal holds 2h
	// THEN: Normal is consumed first and fully covers the request

	result := hours.Allocate(breakdown(2, 1, 0, 0), dec(2), "")
	assertBreakdown(t, result.Breakdown, 0, 1, 0, 0)
	if !result.HoursApplied.Equal(dec(2)) {
		t.Errorf("expected 2h applied, got %v", result.HoursApplied)
	}
}

func TestAllocate_NoTarget_SpansBuckets(t *testing.T) {
	// 5h requested drains normal (2) then overtime (1) then night (1.5),
	// leaving 0.5h of the request unmet; holiday is empty.
	result := hours.Allocate(breakdown(2, 1, 1.5, 0), dec(5), "")
	assertBreakdown(t, result.Breakdown, 0, 0, 0, 0)
	if !result.HoursApplied.Equal(dec(4.5)) {
		t.Errorf("expected 4.5h applied, got %v", result.HoursApplied)
	}
}

func TestAllocate_UnrecognizedTargetFallsBackToPriorityOrder(t *testing.T) {
	result := hours.Allocate(breakdown(2, 1, 0, 0), dec(1), "weekend")
	assertBreakdown(t, result.Breakdown, 1, 1, 0, 0)
	if !result.HoursApplied.Equal(dec(1)) {
		t.Errorf("expected 1h applied from normal, got %v", result.HoursApplied)
	}
}

func TestAllocate_NonPositiveRequestIsNoOp(t *testing.T) {
	for _, requested := range []decimal.Decimal{decimal.Zero, dec(-1)} {
		result := hours.Allocate(breakdown(8, 2, 1, 0), requested, hours.BucketNormal)
		assertBreakdown(t, result.Breakdown, 8, 2, 1, 0)
		if !result.HoursApplied.IsZero() {
			t.Errorf("expected nothing applied for request %v, got %v", requested, result.HoursApplied)
		}
	}
}

func TestAllocate_NeverExceedsRequested(t *testing.T) {
	result := hours.Allocate(breakdown(8, 4, 2, 2), dec(3), "")
	if result.HoursApplied.GreaterThan(dec(3)) {
		t.Errorf("applied %v exceeds requested 3", result.HoursApplied)
	}
}
