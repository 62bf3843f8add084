/*
Package paysplit defines all common interfaces that tie the subpackages
together, as well as implementations of some of the simpler components
(when interfaces would be too much overhead).

The ledger engine that orders and commits transactions is an external
collaborator. This package only describes the seam: a transaction (Tx)
wraps a message (Msg), a Handler applies a message as a synchronous,
deterministic state transition against a KVStore, and a Decorator can
wrap handlers with common functionality.

We pass context through context.Context between the application, the
middleware and the handlers. Common keys store block height and chain
ID. Each extension may add its own keys to enrich the context with
specific data.
*/
package paysplit
