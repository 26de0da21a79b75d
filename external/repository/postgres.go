package repository

import (
	"context"
	"fmt"

	"github.com/foxseedlab/ytsummary/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertArtifactSQL = `INSERT INTO summary_artifacts (video_id, suffix, service, model, path, status, error)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

// SaveArtifacts inserts every record in one batch.
func (r *PostgresRepository) SaveArtifacts(ctx context.Context, inputs []repository.SaveArtifactInput) error {
	if len(inputs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, in := range inputs {
		batch.Queue(insertArtifactSQL, in.VideoID, in.Suffix, in.Service, in.Model, in.Path, string(in.Status), in.Error)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert summary artifacts: %w", err)
	}
	return nil
}
