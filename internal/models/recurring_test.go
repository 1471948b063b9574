package models

import "testing"

func TestObligationAppliesTo(t *testing.T) {
	months := func(ms ...int) []ObligationMonth {
		rows := make([]ObligationMonth, 0, len(ms))
		for _, m := range ms {
			rows = append(rows, ObligationMonth{Month: m})
		}
		return rows
	}

	cases := []struct {
		name       string
		obligation RecurringObligation
		month      int
		want       bool
	}{
		{
			"all_months_always_applies",
			RecurringObligation{Frequency: FrequencyAllMonths},
			7, true,
		},
		{
			"all_months_ignores_selection",
			RecurringObligation{Frequency: FrequencyAllMonths, Months: months(1)},
			7, true,
		},
		{
			"specific_months_selected",
			RecurringObligation{Frequency: FrequencySpecificMonths, Months: months(3, 6, 9)},
			6, true,
		},
		{
			"specific_months_not_selected",
			RecurringObligation{Frequency: FrequencySpecificMonths, Months: months(3, 6, 9)},
			7, false,
		},
		{
			"specific_months_empty_never_applies",
			RecurringObligation{Frequency: FrequencySpecificMonths},
			1, false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.obligation.AppliesTo(tc.month); got != tc.want {
				t.Errorf("AppliesTo(%d) = %v, want %v", tc.month, got, tc.want)
			}
		})
	}
}
