// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Driver defines a structure for backends to use when they register
// themselves as an implementation of the Engine interface.
type Driver struct {
	// DbType is the identifier used to select the backend.
	DbType string

	// Open opens the database at path, creating it when create is set.
	// Creating over an existing database is an error.
	Open func(path string, create bool) (Engine, error)
}

var (
	driversMtx sync.RWMutex
	drivers    = make(map[string]Driver)
)

// RegisterDriver adds a backend to the available engines.  It returns an
// error if a driver with the same type is already registered.
func RegisterDriver(driver Driver) error {
	driversMtx.Lock()
	defer driversMtx.Unlock()

	if _, exists := drivers[driver.DbType]; exists {
		return fmt.Errorf("engine: driver %q is already registered",
			driver.DbType)
	}
	drivers[driver.DbType] = driver
	return nil
}

// Open opens, or creates when create is set, a database of the passed type.
func Open(dbType, path string, create bool) (Engine, error) {
	driversMtx.RLock()
	driver, exists := drivers[dbType]
	driversMtx.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, dbType)
	}
	return driver.Open(path, create)
}

// SupportedDrivers returns the registered backend types in sorted order.
func SupportedDrivers() []string {
	driversMtx.RLock()
	defer driversMtx.RUnlock()

	types := make([]string, 0, len(drivers))
	for dbType := range drivers {
		types = append(types, dbType)
	}
	sort.Strings(types)
	return types
}
