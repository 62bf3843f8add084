/*
Package splitter implements an on-ledger payment splitter.

A splitter is an account-like object that accumulates incoming payments
and redistributes its balance to a fixed list of weighted targets,
proportionally to each target's weight. Targets are either plain account
addresses that get credited directly, or market buyback descriptors that
convert the allocated share into a limit order on an asset market.

Distribution is exact: integer arithmetic over the coin's fractional
units, with the rounding remainder handed out one unit at a time in
target list order. Given the same pre-state and operation, every node
computes bit-identical disbursements.

A payout is triggered either explicitly by the owner, or automatically
when an accepted payment lifts the balance to the configured threshold.
*/
package splitter
