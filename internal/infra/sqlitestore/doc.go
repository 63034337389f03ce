// Package sqlitestore implements ports.ValueStore on top of a SQLite database.
//
// The schema is managed with goose migrations embedded in the binary, and the
// connection is opened through sqlx with the pure-Go modernc.org/sqlite driver,
// so no cgo toolchain is required.
package sqlitestore
