package repository

import "context"

// TxManager runs a unit of work inside one transaction: every repository call
// made with the derived context joins the same transaction, and any returned
// error rolls the whole unit back before it surfaces.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
