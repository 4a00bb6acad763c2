package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
	"github.com/huseyintonguc/DEPO/pkg/logger"
)

//go:embed migrations/001_init.sql
var initSchema string

var _ appinv.TableStore = (*TableStore)(nil)

// TableStore keeps the two tables in PostgreSQL. Replace is a truncate plus
// re-insert inside one transaction; the position column preserves ledger
// insertion order across reloads.
type TableStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTableStore builds the store.
func NewTableStore(pool *pgxpool.Pool, log *logger.Logger) *TableStore {
	return &TableStore{pool: pool, log: log}
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *TableStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, initSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *TableStore) LoadProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT urun_kodu, urun_adi FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *TableStore) LoadMovements(ctx context.Context) (dominv.Ledger, *appinv.LoadReport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT position, id, tarih, kayit_zamani, islem_turu, urun_kodu, urun_adi, miktar, birim, aciklama
		FROM movements ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("load movements: %w", err)
	}
	defer rows.Close()

	report := &appinv.LoadReport{}
	var ledger dominv.Ledger
	for rows.Next() {
		var (
			position int64
			rawKind  string
			m        entity.Movement
		)
		if err := rows.Scan(&position, &m.ID, &m.EffectiveDate, &m.RecordedAt,
			&rawKind, &m.ProductCode, &m.ProductName, &m.Quantity, &m.Unit, &m.Note); err != nil {
			return nil, nil, fmt.Errorf("scan movement: %w", err)
		}
		kind, err := entity.ParseMovementKind(rawKind)
		if err != nil {
			// Same policy as the workbook: a hand-edited bad row is counted
			// and dropped, it does not take the whole load down.
			report.Skipped = append(report.Skipped, appinv.RowIssue{
				Table: "movements", Row: int(position),
				Reason: fmt.Sprintf("islem_turu %q", rawKind),
			})
			continue
		}
		m.Kind = kind
		ledger = append(ledger, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if !report.Clean() {
		s.log.Warn().Int("skipped", len(report.Skipped)).Msg("movement load dropped rows")
	}
	return ledger, report, nil
}

func (s *TableStore) ReplaceMovements(ctx context.Context, l dominv.Ledger) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE movements RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate movements: %w", err)
	}
	for _, m := range l {
		_, err := tx.Exec(ctx, `
			INSERT INTO movements (id, tarih, kayit_zamani, islem_turu, urun_kodu, urun_adi, miktar, birim, aciklama)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.ID, m.EffectiveDate, m.RecordedAt, m.Kind.String(),
			m.ProductCode, m.ProductName, m.Quantity, m.Unit, m.Note,
		)
		if err != nil {
			return fmt.Errorf("insert movement %s: %w", m.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *TableStore) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE products RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate products: %w", err)
	}
	for _, p := range products {
		if _, err := tx.Exec(ctx,
			`INSERT INTO products (urun_kodu, urun_adi) VALUES ($1, $2)`,
			p.Code, p.Name); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Code, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
