// Package adapters provides read-only database adapters for the PostgreSQL record source.
//
// pgxpool.Pool, sql.DB and sqlx.DB are supported. All adapters offer the same
// query surface through the DBAdapter interface, so the record source does not
// care which driver the host application uses.
package adapters
