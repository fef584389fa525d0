// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package whiputil_test

import (
	"testing"

	. "github.com/whippetcoin/whippetd/whiputil"
)

func TestAmountUnitConversions(t *testing.T) {
	tests := []struct {
		name      string
		amount    Amount
		unit      AmountUnit
		converted float64
		s         string
	}{
		{
			name:      "MWHP",
			amount:    Amount(MaxAtoms),
			unit:      AmountMegaCoin,
			converted: 10000,
			s:         "10000 MWHP",
		},
		{
			name:      "WHP",
			amount:    Coins(50000),
			unit:      AmountCoin,
			converted: 50000,
			s:         "50000 WHP",
		},
		{
			name:      "atom",
			amount:    123,
			unit:      AmountAtom,
			converted: 123,
			s:         "123 Atom",
		},
		{
			name:      "non-standard unit",
			amount:    123456789,
			unit:      AmountUnit(-1),
			converted: 12.3456789,
			s:         "12.3456789 1e-1 WHP",
		},
	}

	for _, test := range tests {
		f := test.amount.ToUnit(test.unit)
		if f != test.converted {
			t.Errorf("%v: converted value %v does not match expected %v", test.name, f, test.converted)
			continue
		}

		s := test.amount.Format(test.unit)
		if s != test.s {
			t.Errorf("%v: format '%v' does not match expected '%v'", test.name, s, test.s)
		}
	}
}

func TestMoneyRange(t *testing.T) {
	tests := []struct {
		amount Amount
		want   bool
	}{
		{0, true},
		{1, true},
		{Coins(1000000), true},
		{Amount(MaxAtoms - 1), true},
		{Amount(MaxAtoms), false},
		{-1, false},
	}

	for _, test := range tests {
		if got := MoneyRange(test.amount); got != test.want {
			t.Errorf("MoneyRange(%d) = %v, want %v", int64(test.amount), got, test.want)
		}
	}
}
