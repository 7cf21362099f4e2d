// Package store runs compiled queries through database/sql.
//
// The store is the execution side of the query model: it takes a
// *query.Query, compiles it, rebinds placeholders for the driver in use,
// and hands text and bound values to the driver separately. Values are
// never concatenated into SQL.
//
// # Drivers
//
// The store works with any registered database/sql driver. The sqlite3
// driver is registered by this package; the sqlq binary also registers
// mysql and postgres. PostgreSQL statements are rebound to "$n"
// placeholders.
//
// Statement syntax follows the compiler: "INSERT INTO t SET ..." and
// "REPLACE t SET ..." are MySQL forms. SQLite accepts the select, update
// and delete forms.
//
// # SQLite Configuration
//
//   - Single open connection (one writer, and in-memory databases survive)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
package store
