// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package whiputil

import (
	"math"
	"strconv"
)

// AmountUnit describes a method of converting an Amount to something
// other than the base unit of a whippet.  The value of the AmountUnit
// is the exponent component of the decadic multiple to convert from
// an amount in whippet to an amount counted in units.
type AmountUnit int

// These constants define the various standard units used when describing
// a whippet monetary amount.
const (
	AmountMegaCoin  AmountUnit = 6
	AmountKiloCoin  AmountUnit = 3
	AmountCoin      AmountUnit = 0
	AmountMilliCoin AmountUnit = -3
	AmountMicroCoin AmountUnit = -6
	AmountAtom      AmountUnit = -8
)

// String returns the unit as a string.  For recognized units, the SI
// prefix is used, or "Atom" for the base unit.  For all unrecognized
// units, "1eN WHP" is returned, where N is the AmountUnit.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaCoin:
		return "MWHP"
	case AmountKiloCoin:
		return "kWHP"
	case AmountCoin:
		return "WHP"
	case AmountMilliCoin:
		return "mWHP"
	case AmountMicroCoin:
		return "μWHP"
	case AmountAtom:
		return "Atom"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " WHP"
	}
}

// Amount represents the base whippet monetary unit (colloquially referred
// to as an `Atom').  A single Amount is equal to 1e-8 of a whippet.
type Amount int64

// Coins returns n whole coins as an Amount.
func Coins(n int64) Amount {
	return Amount(n * AtomsPerCoin)
}

// ToUnit converts a monetary amount counted in whippet base units to a
// floating point value representing an amount of whippet.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u+8))
}

// Format formats a monetary amount counted in whippet base units as a
// string for a given unit.  The conversion will succeed for any unit,
// however, known units will be formatted with an appended label describing
// the units with SI notation.
func (a Amount) Format(u AmountUnit) string {
	units := " " + u.String()
	return strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+8), 64) + units
}

// String is the equivalent of calling Format with AmountCoin.
func (a Amount) String() string {
	return a.Format(AmountCoin)
}

// MoneyRange reports whether the amount is a legal quantity of money:
// non-negative and strictly below MaxAtoms.
func MoneyRange(a Amount) bool {
	return a >= 0 && int64(a) < MaxAtoms
}
