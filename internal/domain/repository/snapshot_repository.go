package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// SnapshotRepository histórico de snapshots financieros (uno por fecha).
type SnapshotRepository interface {
	// Upsert inserta el snapshot o reemplaza el existente con la misma fecha.
	Upsert(ctx context.Context, s *entity.FinancialSnapshot) error
	GetByDate(ctx context.Context, date string) (*entity.FinancialSnapshot, error)
	List(ctx context.Context) ([]*entity.FinancialSnapshot, error)
}
