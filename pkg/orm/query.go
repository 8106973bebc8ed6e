// Package orm provides a thin fluent query wrapper over the GORM connection
// opened by pkg/database. Repositories compose queries without touching
// gorm.DB directly:
//
//	var products []models.Product
//	err := orm.DB().
//	    Model(&models.Product{}).
//	    Where("is_published = ?", true).
//	    OrderBy("created_at DESC").
//	    Get(&products)
package orm

import (
	"time"

	"github.com/shashiranjanraj/inkstore/pkg/cache"
	"github.com/shashiranjanraj/inkstore/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap adapts an existing *gorm.DB (e.g. a transaction handle) into a Query.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// OrderBy appends an ORDER BY clause, e.g. OrderBy("created_at DESC").
func (q *Query) OrderBy(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

// Preload eagerly loads an association, e.g. Preload("Items").
func (q *Query) Preload(name string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(name, args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Sum computes SUM(column) over the current query. Returns 0 for an empty
// result set rather than NULL.
func (q *Query) Sum(column string) (float64, error) {
	var total float64
	err := q.db.Select("COALESCE(SUM(" + column + "), 0)").Scan(&total).Error
	return total, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Updates applies a partial update from a map or struct to the matched rows
// and reports how many rows changed.
func (q *Query) Updates(values interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// Transaction runs fn inside a database transaction. The callback receives
// a Query bound to the transaction; any returned error rolls everything back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// Cache runs the query through Redis: on a hit dest is filled from the cached
// value, on a miss the query executes and the result is stored for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
