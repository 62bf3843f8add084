package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ paysplit.Initializer = (*Initializer)(nil)

// FromGenesis initializes the fee configuration from the genesis "conf"
// section.
func (*Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	return gconf.InitConfig(db, opts, configName, &Configuration{})
}
