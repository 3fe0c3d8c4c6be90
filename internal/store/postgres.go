package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
	"fitcoach/migrations"
)

// PostgresStore implements [Store] on top of a PostgreSQL connection pool.
// Queries are built dynamically from filters and records with squirrel,
// so every table shares the same five data operations.
type PostgresStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, verifies it with a
// ping and applies the embedded schema migrations.
func NewPostgresStore(ctx context.Context, cfg config.DB, log *logger.Logger) (*PostgresStore, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewPostgresStore").Msg("connected to database successfully")

	if err = migrations.Migrate(conn); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error applying migrations")
		return nil, err
	}

	return &PostgresStore{db: conn, logger: log}, nil
}

// newPostgresStoreWithDB wires an already opened connection, used by tests
// to inject a sqlmock handle.
func newPostgresStoreWithDB(db *sql.DB, log *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: log}
}

// InsertOne persists a new record into the given table. A unique_violation
// (23505) from the driver is reported as [ErrConstraintViolation].
func (s *PostgresStore) InsertOne(ctx context.Context, table string, record Record) error {
	log := logger.FromContext(ctx)

	columns, values := splitRecord(record)
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(values...).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.InsertOne").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*PostgresStore.InsertOne").Str("table", table).Msg("error executing insert")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrConstraintViolation
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}

// FindOne returns the first record matching the filter.
func (s *PostgresStore) FindOne(ctx context.Context, table string, filter Filter) (Record, error) {
	records, err := s.FindAll(ctx, table, filter, WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records[0], nil
}

// FindAll returns every record matching the filter, honouring sort and
// limit options.
func (s *PostgresStore) FindAll(ctx context.Context, table string, filter Filter, opts ...FindOption) ([]Record, error) {
	log := logger.FromContext(ctx)
	resolved := applyFindOptions(opts)

	builder := sq.Select("*").From(table).Where(filterEq(filter))
	if resolved.sortField != "" {
		direction := "ASC"
		if resolved.sortDescending {
			direction = "DESC"
		}
		builder = builder.OrderBy(resolved.sortField + " " + direction)
	}
	if resolved.limit > 0 {
		builder = builder.Limit(uint64(resolved.limit))
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.FindAll").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.FindAll").Str("table", table).Msg("error executing select")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.FindAll").Str("table", table).Msg("error scanning rows")
		return nil, err
	}

	return records, nil
}

// UpdateOne updates a single record matching the filter. The target row is
// pinned by ctid inside a FOR UPDATE subquery, so exactly one matching row
// is updated even when the filter is ambiguous, and concurrent callers
// racing on the same conditional filter cannot both observe an affected
// count of one.
func (s *PostgresStore) UpdateOne(ctx context.Context, table string, filter Filter, update Record) (int64, error) {
	log := logger.FromContext(ctx)

	// Inner subquery in `?` placeholders; sq.Dollar is applied once on the
	// outer builder so nested argument numbering stays consistent.
	subquery, subArgs, err := sq.Select("ctid").
		From(table).
		Where(filterEq(filter)).
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.UpdateOne").Msg("error building target subquery")
		return 0, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	query, args, err := sq.Update(table).
		SetMap(normalizeRecord(update)).
		Where(sq.Expr("ctid = ("+subquery+")", subArgs...)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.UpdateOne").Msg("error building update query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.UpdateOne").Str("table", table).Msg("error executing update")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return 0, ErrConstraintViolation
		default:
			return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return result.RowsAffected()
}

// DeleteOne removes a single record matching the filter, pinned by ctid
// the same way as [PostgresStore.UpdateOne].
func (s *PostgresStore) DeleteOne(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	subquery, subArgs, err := sq.Select("ctid").
		From(table).
		Where(filterEq(filter)).
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.DeleteOne").Msg("error building target subquery")
		return 0, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	query, args, err := sq.Delete(table).
		Where(sq.Expr("ctid = ("+subquery+")", subArgs...)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.DeleteOne").Msg("error building delete query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.DeleteOne").Str("table", table).Msg("error executing delete")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return result.RowsAffected()
}

// Count returns the number of records matching the filter.
func (s *PostgresStore) Count(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("COUNT(*)").
		From(table).
		Where(filterEq(filter)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*PostgresStore.Count").Msg("error building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	var count int64
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*PostgresStore.Count").Str("table", table).Msg("error executing count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close(_ context.Context) error {
	return s.db.Close()
}

// splitRecord flattens a record into parallel column and value slices.
// Keys are sorted so that generated SQL is deterministic.
func splitRecord(record Record) ([]string, []any) {
	columns := make([]string, 0, len(record))
	for column := range record {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	values := make([]any, 0, len(columns))
	for _, column := range columns {
		values = append(values, normalizeArg(record[column]))
	}

	return columns, values
}

func filterEq(filter Filter) sq.Eq {
	eq := make(sq.Eq, len(filter))
	for field, value := range filter {
		eq[field] = normalizeArg(value)
	}

	return eq
}

func normalizeRecord(record Record) map[string]any {
	normalized := make(map[string]any, len(record))
	for field, value := range record {
		normalized[field] = normalizeArg(value)
	}

	return normalized
}

// normalizeArg converts composite values to their jsonb wire form. Scalars
// and time.Time pass through to the driver untouched.
func normalizeArg(value any) any {
	switch value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, time.Time, []byte:
		return value
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return value
		}
		return string(encoded)
	}
}

// scanRecords reads all remaining rows into generic records. Byte slices
// holding JSON documents are decoded back into their composite form, other
// byte slices become plain strings.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	records := make([]Record, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err = rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		record := make(Record, len(columns))
		for i, column := range columns {
			record[column] = denormalizeValue(values[i])
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return records, nil
}

func denormalizeValue(value any) any {
	raw, ok := value.([]byte)
	if !ok {
		return value
	}

	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}

	return string(raw)
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
