// internal/app/system/txn/txn.go

// Package txn wraps MongoDB multi-document transactions behind a closure
// API. The driver owns retry-on-conflict (TransientTransactionError and
// friends); callers just supply a read-modify-write function. Deployments
// without replica sets (standalone mongod, common in dev) do not support
// transactions at all, so WithTransaction detects that case and runs the
// closure without one.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a MongoDB transaction. The context passed
// to fn carries the session, so all store calls made with it participate in
// the transaction. On deployments where transactions are not supported the
// closure runs directly against the bare context.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, no replica set).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation on standalone, 51 from older servers,
		// 263 OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	pairs := [][2]string{
		{"transaction", "replica set"},
		{"session", "not supported"},
		{"transaction", "session"},
		{"illegal operation", "transaction"},
	}
	for _, p := range pairs {
		if strings.Contains(msg, p[0]) && strings.Contains(msg, p[1]) {
			return true
		}
	}
	return false
}
