package loader

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

// PostgresLoader appends rows to a PostgreSQL table. Unlike an upserting
// indexer, the insert is plain: the destination is append-only and job_id is
// not enforced as unique.
type PostgresLoader struct {
	db        *sql.DB
	tableName string
}

// NewPostgresLoader opens the connection and ensures the destination table
// exists with the fixed fifteen-column schema.
func NewPostgresLoader(connStr, tableName string) (*PostgresLoader, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	l := &PostgresLoader{db: db, tableName: tableName}
	if err := l.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return l, nil
}

func (l *PostgresLoader) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			job_id TEXT,
			date DATE,
			company_name TEXT,
			via TEXT,
			xp TEXT,
			new_title TEXT,
			cidade TEXT,
			estado TEXT,
			is_remote BOOLEAN,
			hard_skills TEXT,
			complemento TEXT,
			soft_skills TEXT,
			graduacoes TEXT,
			metodologia_trabalho TEXT,
			tipo_contrato TEXT
		)
	`, l.tableName)

	_, err := l.db.Exec(query)
	return err
}

// Append inserts every row inside one transaction and reports the resulting
// table size. Any row failure aborts the whole append.
func (l *PostgresLoader) Append(ctx context.Context, rows []domain.NormalizedPosting) (*AppendReport, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (
			job_id, date, company_name, via, xp, new_title,
			cidade, estado, is_remote, hard_skills, complemento,
			soft_skills, graduacoes, metodologia_trabalho, tipo_contrato
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)
	`, l.tableName)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.JobID, r.Date, r.CompanyName, r.Via, r.XP, r.NewTitle,
			r.Cidade, r.Estado, r.IsRemote, r.HardSkills, r.Complemento,
			r.SoftSkills, r.Graduacoes, r.Metodologia, r.TipoContrato,
		)
		if err != nil {
			return nil, fmt.Errorf("insert row %s: %w", r.JobID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	var total int64
	if err := l.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", l.tableName)).Scan(&total); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	return &AppendReport{
		Table:        l.tableName,
		TotalRows:    total,
		TotalColumns: len(Columns),
	}, nil
}

// Close closes the database connection.
func (l *PostgresLoader) Close() error {
	return l.db.Close()
}
