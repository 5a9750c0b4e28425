package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyaid-backend/internal/models"
)

// GenerationRunRepo stores run metadata only; prompts, files and model output
// never reach the database.
type GenerationRunRepo struct {
	pool *pgxpool.Pool
}

func NewGenerationRunRepo(pool *pgxpool.Pool) *GenerationRunRepo {
	return &GenerationRunRepo{pool: pool}
}

func (r *GenerationRunRepo) Create(ctx context.Context, run *models.GenerationRun) error {
	query := `INSERT INTO generation_runs (id, type, backend, status, file_count, dropped_files, item_count, error_code, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		run.ID, string(run.Type), run.Backend, run.Status, run.FileCount,
		run.DroppedFiles, run.ItemCount, run.ErrorCode, run.DurationMillis,
	).Scan(&run.CreatedAt)
}

func (r *GenerationRunRepo) ListRecent(ctx context.Context, limit int) ([]models.GenerationRun, error) {
	query := `SELECT id, type, backend, status, file_count, dropped_files, item_count, error_code, duration_ms, created_at
		FROM generation_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.GenerationRun{}
	for rows.Next() {
		var run models.GenerationRun
		var runType string
		if err := rows.Scan(
			&run.ID, &runType, &run.Backend, &run.Status, &run.FileCount,
			&run.DroppedFiles, &run.ItemCount, &run.ErrorCode, &run.DurationMillis, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		run.Type = models.ContentType(runType)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
