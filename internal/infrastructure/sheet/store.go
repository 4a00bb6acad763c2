package sheet

import (
	"context"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
	"github.com/huseyintonguc/DEPO/pkg/logger"
)

var _ appinv.TableStore = (*Store)(nil)

// Store implements the TableStore port over one xlsx workbook behind a Blob.
// Every replace rewrites both sheets: load remote state, swap the table,
// upload the whole file. Last writer
// wins; there is no locking or versioning across sessions.
type Store struct {
	blob Blob
	log  *logger.Logger
}

// NewStore builds the workbook-backed table store.
func NewStore(blob Blob, log *logger.Logger) *Store {
	return &Store{blob: blob, log: log}
}

func (s *Store) LoadProducts(ctx context.Context) ([]entity.Product, error) {
	products, _, _, err := s.download(ctx)
	return products, err
}

func (s *Store) LoadMovements(ctx context.Context) (dominv.Ledger, *appinv.LoadReport, error) {
	_, ledger, report, err := s.download(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !report.Clean() {
		s.log.Warn().
			Int("skipped", len(report.Skipped)).
			Int("coerced", len(report.Coerced)).
			Msg("workbook load dropped or coerced rows")
		for _, issue := range report.Skipped {
			s.log.Debug().Str("table", issue.Table).Int("row", issue.Row).
				Str("reason", issue.Reason).Msg("row skipped")
		}
	}
	return ledger, report, nil
}

func (s *Store) ReplaceMovements(ctx context.Context, l dominv.Ledger) error {
	products, _, _, err := s.download(ctx)
	if err != nil {
		return err
	}
	return s.upload(ctx, products, l)
}

func (s *Store) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	_, ledger, _, err := s.download(ctx)
	if err != nil {
		return err
	}
	return s.upload(ctx, products, ledger)
}

func (s *Store) download(ctx context.Context) ([]entity.Product, dominv.Ledger, *appinv.LoadReport, error) {
	data, err := s.blob.Download(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return DecodeWorkbook(data)
}

func (s *Store) upload(ctx context.Context, products []entity.Product, l dominv.Ledger) error {
	data, err := EncodeWorkbook(products, l)
	if err != nil {
		return err
	}
	if err := s.blob.Upload(ctx, data); err != nil {
		return err
	}
	s.log.Info().Int("products", len(products)).Int("movements", len(l)).
		Msg("workbook uploaded")
	return nil
}
