package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mechtronglobal/backend/config"
	storageutil "github.com/mechtronglobal/backend/storage/util"
)

type placeholderStyle int

const (
	placeholderQuestion placeholderStyle = iota
	placeholderDollar
)

const defaultTablePrefix = "mechtron"

var collections = []string{
	CollectionProjects,
	CollectionServices,
	CollectionTestimonials,
	CollectionInquiries,
	CollectionSettings,
}

// SQLStore implements Store over database/sql with either the pgx stdlib
// driver or the mysql driver, chosen by config.
type SQLStore struct {
	db          *sql.DB
	prefix      string
	placeholder placeholderStyle
}

func NewSQLStore(cfg *config.Content) (*SQLStore, error) {
	store, err := newSQLStoreWithDB(cfg, nil)
	if err != nil {
		return nil, err
	}

	driverName, err := resolveSQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	store.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func newSQLStoreWithDB(cfg *config.Content, db *sql.DB) (*SQLStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("content sql config is nil")
	}

	prefix := defaultTablePrefix
	if cfg.TablePrefix != nil {
		prefix = *cfg.TablePrefix
	}

	placeholder, err := detectPlaceholderStyle(cfg.Driver)
	if err != nil {
		return nil, err
	}

	return &SQLStore{
		db:          db,
		prefix:      prefix,
		placeholder: placeholder,
	}, nil
}

func detectPlaceholderStyle(driver string) (placeholderStyle, error) {
	driverName, err := resolveSQLDriverName(driver)
	if err != nil {
		return placeholderQuestion, err
	}

	if driverName == "pgx" {
		return placeholderDollar, nil
	}

	return placeholderQuestion, nil
}

func resolveSQLDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func (cs *SQLStore) table(collection string) string {
	return storageutil.DeriveTableName(cs.prefix, collection)
}

// ph renders the n-th placeholder (1-based) in the active driver's style.
func (cs *SQLStore) ph(n int) string {
	if cs.placeholder == placeholderDollar {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

func (cs *SQLStore) initSchema(ctx context.Context) error {
	for _, collection := range collections {
		if _, err := cs.db.ExecContext(ctx, cs.schemaQuery(collection)); err != nil {
			return fmt.Errorf("init schema for %s: %w", collection, err)
		}
	}

	return nil
}

func (cs *SQLStore) schemaQuery(collection string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
id VARCHAR(36) PRIMARY KEY,
slug VARCHAR(255) NOT NULL DEFAULT '',
category VARCHAR(64) NOT NULL DEFAULT '',
featured BOOLEAN NOT NULL DEFAULT FALSE,
doc TEXT NOT NULL,
created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, cs.table(collection))
}

func (cs *SQLStore) List(ctx context.Context, collection string, f Filter) ([]Document, *Pagination, error) {
	var conds []string
	var args []any

	if f.Category != "" {
		conds = append(conds, fmt.Sprintf("category = %s", cs.ph(len(args)+1)))
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		conds = append(conds, fmt.Sprintf("featured = %s", cs.ph(len(args)+1)))
		args = append(args, *f.Featured)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", cs.table(collection), where)
	if err := cs.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		"SELECT id, slug, category, featured, doc, created_at, updated_at FROM %s%s ORDER BY created_at DESC, id LIMIT %s OFFSET %s",
		cs.table(collection), where, cs.ph(len(args)+1), cs.ph(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := cs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var data string
		if err := rows.Scan(&doc.ID, &doc.Slug, &doc.Category, &doc.Featured, &data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, nil, err
		}
		doc.Data = []byte(data)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	totalPages := (total + limit - 1) / limit
	pagination := &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    offset+len(docs) < total,
	}

	return docs, pagination, nil
}

func (cs *SQLStore) Get(ctx context.Context, collection string, id string) (*Document, error) {
	return cs.getByColumn(ctx, collection, "id", id)
}

func (cs *SQLStore) GetBySlug(ctx context.Context, collection string, slug string) (*Document, error) {
	return cs.getByColumn(ctx, collection, "slug", slug)
}

func (cs *SQLStore) getByColumn(ctx context.Context, collection string, column string, value string) (*Document, error) {
	query := fmt.Sprintf(
		"SELECT id, slug, category, featured, doc, created_at, updated_at FROM %s WHERE %s = %s",
		cs.table(collection), column, cs.ph(1),
	)

	var doc Document
	var data string
	err := cs.db.QueryRowContext(ctx, query, value).
		Scan(&doc.ID, &doc.Slug, &doc.Category, &doc.Featured, &data, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Data = []byte(data)
	return &doc, nil
}

func (cs *SQLStore) Insert(ctx context.Context, collection string, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := fmt.Sprintf(
		"INSERT INTO %s (id, slug, category, featured, doc, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s, %s)",
		cs.table(collection), cs.ph(1), cs.ph(2), cs.ph(3), cs.ph(4), cs.ph(5), cs.ph(6), cs.ph(7),
	)

	_, err := cs.db.ExecContext(ctx, query,
		doc.ID, doc.Slug, doc.Category, doc.Featured, string(doc.Data), doc.CreatedAt, doc.UpdatedAt)
	return err
}

func (cs *SQLStore) Update(ctx context.Context, collection string, doc *Document) error {
	doc.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(
		"UPDATE %s SET slug = %s, category = %s, featured = %s, doc = %s, updated_at = %s WHERE id = %s",
		cs.table(collection), cs.ph(1), cs.ph(2), cs.ph(3), cs.ph(4), cs.ph(5), cs.ph(6),
	)

	res, err := cs.db.ExecContext(ctx, query,
		doc.Slug, doc.Category, doc.Featured, string(doc.Data), doc.UpdatedAt, doc.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Upsert updates an existing document or inserts it when absent. An
// update-then-insert sequence keeps the query portable across both drivers.
func (cs *SQLStore) Upsert(ctx context.Context, collection string, doc *Document) error {
	err := cs.Update(ctx, collection, doc)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	return cs.Insert(ctx, collection, doc)
}

func (cs *SQLStore) Delete(ctx context.Context, collection string, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", cs.table(collection), cs.ph(1))

	res, err := cs.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (cs *SQLStore) Close() error {
	if cs.db == nil {
		return nil
	}

	return cs.db.Close()
}
