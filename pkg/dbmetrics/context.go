package dbmetrics

import "context"

// ctxKey приватный тип ключа контекста для хранения транзакции
type ctxKey struct{}

// txKey ключ, по которому в контексте лежит активная транзакция
var txKey = ctxKey{}

// WithExecutor кладет активную транзакцию в контекст
// Репозитории, получившие такой контекст, выполняют запросы внутри транзакции
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает executor из контекста, если там есть активная транзакция,
// иначе возвращает fallback (обычно это *sql.DB или *dbmetrics.DB репозитория)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
// Используется репозиториями для добавления блокировок (FOR UPDATE) только внутри транзакций
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(TxExecutor)
	return ok
}
