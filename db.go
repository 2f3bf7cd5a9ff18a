// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoRows = sql.ErrNoRows
var ErrTXDone = sql.ErrTxDone

// logger receives a debug line for every query run. It discards
// everything until SetLogger installs a real logger.
var logger = zerolog.Nop()

// SetLogger installs the logger used for query tracing. Install it at
// startup; SetLogger is not safe to call concurrently with queries.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Builder is anything that renders itself to a statement. All the
// statement builders implement it.
type Builder interface {
	SQL() string
}

// RawSQL is a plain SQL string used as a statement directly, the escape
// hatch for DDL and statements the builders do not cover.
type RawSQL string

// SQL returns the string unchanged.
func (r RawSQL) SQL() string { return string(r) }

// stmtCache stores the driver prepared statements associated to the
// Statement objects.
var stmtCache = newStatementCache()

// Statement is a rendered statement ready to be run on a database. A
// statement can be used with any [DB], and statements prepared once and
// kept in package variables run on driver prepared statements.
type Statement struct {
	// cacheID is used to look up the driver prepared statements associated
	// with this Statement.
	cacheID uint64
	// sql is the rendered statement text.
	sql string
}

// Prepare renders the statement once and generates a [Statement] for it.
func Prepare(b Builder) *Statement {
	return stmtCache.newStatement(b.SQL())
}

// SQL returns the rendered statement text.
func (s *Statement) SQL() string {
	return s.sql
}

type DB struct {
	// cacheID is used to look up the cached driver prepared statements
	// prepared on this database.
	cacheID uint64
	// sqldb is the underlying database/sql DB object.
	sqldb *sql.DB
}

// NewDB creates a new [DB] from a [sql.DB].
func NewDB(sqldb *sql.DB) *DB {
	if sqldb == nil {
		return nil
	}
	return stmtCache.newDB(sqldb)
}

// PlainDB returns the underlying database object.
func (db *DB) PlainDB() *sql.DB {
	return db.sqldb
}

// Query represents a query on a database. It is designed to be run once.
type Query struct {
	// run executes the Query against the DB or the TX.
	run     func(ctx context.Context, doQuery bool) (*sql.Rows, sql.Result, error)
	ctx     context.Context
	err     error
	sql     string
	queryID string
}

// Query builds a new query from a context and a [Statement]. The query is
// run on the database when one of [Query.Run], [Query.Exec], [Query.Rows]
// or [Query.Get] is executed.
func (db *DB) Query(ctx context.Context, s *Statement) *Query {
	if ctx == nil {
		ctx = context.Background()
	}

	run := func(innerCtx context.Context, doQuery bool) (rows *sql.Rows, result sql.Result, err error) {
		sqlstmt, ok := stmtCache.lookupStmt(db, s)
		if !ok {
			sqlstmt, err = stmtCache.driverPrepareStmt(ctx, db, s)
			if err != nil {
				return nil, nil, err
			}
		}

		if doQuery {
			rows, err = sqlstmt.QueryContext(innerCtx)
		} else {
			result, err = sqlstmt.ExecContext(innerCtx)
		}
		return rows, result, err
	}

	return &Query{run: run, ctx: ctx, sql: s.sql}
}

// log traces the query once. The query ID is only generated when a real
// logger is installed at debug level.
func (q *Query) log() {
	if e := logger.Debug(); e.Enabled() {
		if q.queryID == "" {
			q.queryID = uuid.NewString()
		}
		e.Str("query_id", q.queryID).Str("sql", q.sql).Msg("run query")
	}
}

// Run runs a query on the database and disregards any results.
func (q *Query) Run() error {
	_, err := q.Exec()
	return err
}

// Exec runs a statement that returns no rows and reports the execution
// result.
func (q *Query) Exec() (sql.Result, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.log()
	_, result, err := q.run(q.ctx, false)
	return result, err
}

// Rows runs the query and returns its rows for iteration. The caller
// must close them.
func (q *Query) Rows() (*sql.Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.log()
	rows, _, err := q.run(q.ctx, true)
	return rows, err
}

// Get runs the query and scans the first row returned into the provided
// destinations. It returns [ErrNoRows] if no results were found.
func (q *Query) Get(dest ...any) error {
	rows, err := q.Rows()
	if err != nil {
		return err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("cannot get result: %s", err)
		}
		rows.Close()
		return ErrNoRows
	}
	if err := rows.Scan(dest...); err != nil {
		rows.Close()
		return fmt.Errorf("cannot get result: %s", err)
	}
	return rows.Close()
}

// TX represents a transaction on the database.
type TX struct {
	sqltx *sql.Tx
	db    *DB
	done  int32
}

func (tx *TX) isDone() bool {
	return atomic.LoadInt32(&tx.done) == 1
}

func (tx *TX) setDone() error {
	if !atomic.CompareAndSwapInt32(&tx.done, 0, 1) {
		return ErrTXDone
	}
	return nil
}

// Begin starts a transaction. A transaction must be ended with a
// [TX.Commit] or [TX.Rollback].
func (db *DB) Begin(ctx context.Context, opts *TXOptions) (*TX, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sqltx, err := db.sqldb.BeginTx(ctx, opts.plainTXOptions())
	if err != nil {
		return nil, err
	}
	return &TX{sqltx: sqltx, db: db}, nil
}

// Commit commits the transaction.
func (tx *TX) Commit() error {
	err := tx.setDone()
	if err == nil {
		err = tx.sqltx.Commit()
	}
	return err
}

// Rollback aborts the transaction.
func (tx *TX) Rollback() error {
	err := tx.setDone()
	if err == nil {
		err = tx.sqltx.Rollback()
	}
	return err
}

// TXOptions holds the transaction options to be used in [DB.Begin].
type TXOptions struct {
	// Isolation is the transaction isolation level.
	// If zero, the driver or database's default level is used.
	Isolation sql.IsolationLevel
	ReadOnly  bool
}

func (txopts *TXOptions) plainTXOptions() *sql.TxOptions {
	if txopts == nil {
		return nil
	}
	return &sql.TxOptions{Isolation: txopts.Isolation, ReadOnly: txopts.ReadOnly}
}

// Query builds a new query from a context and a [Statement], to be run
// within the transaction.
func (tx *TX) Query(ctx context.Context, s *Statement) *Query {
	if ctx == nil {
		ctx = context.Background()
	}
	if tx.isDone() {
		return &Query{ctx: ctx, err: ErrTXDone}
	}

	run := func(innerCtx context.Context, doQuery bool) (rows *sql.Rows, result sql.Result, err error) {
		sqlstmt, ok := stmtCache.lookupStmt(tx.db, s)
		if ok {
			// Register the prepared statement on the transaction. Note that
			// this does not re-prepare the statement on the driver.
			// The txstmt is closed by database/sql when the transaction is
			// committed or rolled back.
			txstmt := tx.sqltx.Stmt(sqlstmt)
			if doQuery {
				rows, err = txstmt.QueryContext(innerCtx)
			} else {
				result, err = txstmt.ExecContext(innerCtx)
			}
			return rows, result, err
		}

		if doQuery {
			rows, err = tx.sqltx.QueryContext(innerCtx, s.sql)
		} else {
			result, err = tx.sqltx.ExecContext(innerCtx, s.sql)
		}
		return rows, result, err
	}

	return &Query{run: run, ctx: ctx, sql: s.sql}
}
