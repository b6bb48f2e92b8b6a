// Package repokit carries the types repos bind against.
// Repos see these seams, never a driver package
package repokit

import (
	"devportal/internal/platform/store"
)

type (
	// Queryer is the statement surface a bound repo runs on
	Queryer = store.RowQuerier

	// TxRunner adds transactions on top of Queryer
	TxRunner = store.TxRunner

	// Rows, Row and CommandTag mirror the store result contracts
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to a concrete Queryer.
// Services hold a Binder so the same repo can run on the pool or
// inside a transaction without knowing which
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to the Binder interface
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
