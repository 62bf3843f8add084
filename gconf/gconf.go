// Package gconf provides a toolset for managing an extension
// configuration. Each extension defines its own configuration structure
// and stores it under a key derived from the package name.
package gconf

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Store is a subset of a key value store functionality needed by this
// package to write data.
type Store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
}

// ReadStore is a subset of a key value store functionality needed by this
// package to read data.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Marshaler is implemented by configuration structures.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is implemented by configuration structures.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// ValidMarshaler is a configuration that can be validated and persisted.
type ValidMarshaler interface {
	Marshaler
	Validate() error
}

// Save validates and persists given configuration structure under the
// namespace of given package.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := []byte("_c:" + pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "configuration %q is invalid", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal configuration %q", pkg)
	}
	return db.Set(key, raw)
}

// Load copies the configuration stored under the namespace of given
// package into dst. It fails with ErrNotFound if no configuration was
// initialized.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := []byte("_c:" + pkg)
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrapf(err, "cannot load configuration %q", pkg)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "configuration %q not initialized", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal configuration %q", pkg)
	}
	return nil
}

// InitConfig reads the configuration declared in the genesis under the
// "conf" section for given package and saves it in the database. Config
// destination must be a pointer to a configuration structure.
func InitConfig(db Store, opts paysplit.Options, pkg string, conf ValidMarshaler) error {
	var confOpts paysplit.Options
	if err := opts.ReadOptions("conf", &confOpts); err != nil {
		return errors.Wrap(err, "cannot load conf section")
	}
	if err := confOpts.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "cannot load %q configuration", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "cannot save %q configuration", pkg)
	}
	return nil
}
