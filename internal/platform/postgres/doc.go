// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they can run against either a
// connection pool or an open transaction, and translate driver errors into
// the store package's error taxonomy.
package postgres
