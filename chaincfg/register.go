// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"sync"
)

// ErrDuplicateNet describes an error where the parameters for a whippet
// network could not be set due to the network already being a standard
// network or previously-registered into this package.
var ErrDuplicateNet = errors.New("duplicate whippet network")

var (
	registerMtx    sync.RWMutex
	registeredNets = make(map[WhippetNet]*Params)
)

// Register registers the network parameters for a whippet network.  This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks), or with ErrInvalidRuleSets when the hard fork table is malformed.
//
// Network parameters should be registered into this package by a main package
// as early as possible.  Once registered, a Params value and its rule-sets are
// treated as immutable.
func Register(params *Params) error {
	if err := ValidateRuleSets(params.RuleSets); err != nil {
		return err
	}

	registerMtx.Lock()
	defer registerMtx.Unlock()

	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// IsRegistered returns whether parameters for the network have been
// registered.
func IsRegistered(net WhippetNet) bool {
	registerMtx.RLock()
	_, ok := registeredNets[net]
	registerMtx.RUnlock()
	return ok
}

// ParamsForNet returns the registered parameters for the network, if any.
func ParamsForNet(net WhippetNet) (*Params, bool) {
	registerMtx.RLock()
	params, ok := registeredNets[net]
	registerMtx.RUnlock()
	return params, ok
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&RegressionNetParams)
}
