// Package testdb registers a scripted database/sql driver so handlers can be
// exercised in tests without a running Postgres. Prepared statements are
// matched by substring against the rules in order; unmatched statements
// succeed with no rows.
package testdb

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Result is the row set returned for a matched statement.
type Result struct {
	Columns []string
	Rows    [][]driver.Value
}

// Rule scripts the outcome for statements whose SQL contains Contains.
// Err takes precedence over results. Seq hands out one Result per matching
// statement in order; the last entry repeats once exhausted.
type Rule struct {
	Contains string
	Err      error
	Result   *Result
	Seq      []Result

	mu  sync.Mutex
	idx int
}

func (r *Rule) next() *Result {
	if len(r.Seq) == 0 {
		return r.Result
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.idx
	if i >= len(r.Seq) {
		i = len(r.Seq) - 1
	}
	r.idx++
	return &r.Seq[i]
}

// Recorder keeps every executed statement with its bound args.
type Recorder struct {
	mu    sync.Mutex
	stmts []Statement
}

type Statement struct {
	Query string
	Args  []driver.Value
}

func (r *Recorder) add(query string, args []driver.Value) {
	r.mu.Lock()
	r.stmts = append(r.stmts, Statement{Query: query, Args: append([]driver.Value(nil), args...)})
	r.mu.Unlock()
}

// Statements returns a copy of everything recorded so far.
func (r *Recorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Statement(nil), r.stmts...)
}

var openSeq int64

// Open returns a gorm.DB backed by the scripted driver.
func Open(rules ...*Rule) (*gorm.DB, *Recorder, error) {
	rec := &Recorder{}
	name := fmt.Sprintf("testdb_%d", atomic.AddInt64(&openSeq, 1))
	sql.Register(name, &scriptedDriver{rules: rules, rec: rec})
	sqlDB, err := sql.Open(name, "")
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, nil, err
	}
	return db, rec, nil
}

type scriptedDriver struct {
	rules []*Rule
	rec   *Recorder
}

func (d *scriptedDriver) Open(string) (driver.Conn, error) {
	return &scriptedConn{d: d}, nil
}

type scriptedConn struct{ d *scriptedDriver }

func (c *scriptedConn) Prepare(query string) (driver.Stmt, error) {
	for _, r := range c.d.rules {
		if strings.Contains(query, r.Contains) {
			if r.Err != nil {
				return nil, r.Err
			}
			return &scriptedStmt{query: query, res: r.next(), rec: c.d.rec}, nil
		}
	}
	return &scriptedStmt{query: query, rec: c.d.rec}, nil
}

func (c *scriptedConn) Close() error              { return nil }
func (c *scriptedConn) Begin() (driver.Tx, error) { return nopTx{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type scriptedStmt struct {
	query string
	res   *Result
	rec   *Recorder
}

func (s *scriptedStmt) Close() error  { return nil }
func (s *scriptedStmt) NumInput() int { return -1 }

func (s *scriptedStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.rec.add(s.query, args)
	return driver.RowsAffected(1), nil
}

func (s *scriptedStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.rec.add(s.query, args)
	if s.res != nil {
		return &scriptedRows{cols: s.res.Columns, data: s.res.Rows}, nil
	}
	return &scriptedRows{}, nil
}

type scriptedRows struct {
	cols []string
	data [][]driver.Value
	idx  int
}

func (r *scriptedRows) Columns() []string { return r.cols }
func (r *scriptedRows) Close() error      { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}
