package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/entity"
	"github.com/tundex/resume-parser/internal/extract"
)

type CandidateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Candidate, error)
	List(ctx context.Context, limit int) ([]*entity.Candidate, error)
	Search(ctx context.Context, query, skill string) ([]*entity.Candidate, error)
	CreateFromExtraction(ctx context.Context, fileID uuid.UUID, res *extract.ExtractionResult, confidence float32) (*entity.Candidate, error)
}

type candidateRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCandidateRepository(db *sql.DB, logger *slog.Logger) CandidateRepository {
	return &candidateRepo{
		db:     db,
		logger: logger,
	}
}

const candidateColumns = `id, file_id, full_name, email, phone, skills, education, experience, entities, confidence, created_at, updated_at`

func (r *candidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidates
		WHERE id = $1`, id.String())
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to get candidate", err)
	}
	defer rows.Close()

	list, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrNotFound
	}
	return list[0], nil
}

func (r *candidateRepo) List(ctx context.Context, limit int) ([]*entity.Candidate, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("failed to list candidates", "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to list candidates", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// Search filters candidates by a free-text query over name and email and
// by a skill term. Both filters are optional; an empty search matches
// everything.
func (r *candidateRepo) Search(ctx context.Context, query, skill string) ([]*entity.Candidate, error) {
	var (
		where []string
		args  []any
	)
	if query != "" {
		args = append(args, "%"+strings.ToLower(query)+"%")
		n := placeholder(len(args))
		where = append(where, "(LOWER(COALESCE(full_name, '')) LIKE "+n+" OR LOWER(COALESCE(email, '')) LIKE "+n+")")
	}
	if skill != "" {
		// Match the JSON-encoded term exactly so "go" does not hit
		// "golang" or "mongodb".
		args = append(args, `%"`+strings.ToLower(skill)+`"%`)
		where = append(where, "skills LIKE "+placeholder(len(args)))
	}

	q := `SELECT ` + candidateColumns + ` FROM candidates`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to search candidates", "query", query, "skill", skill, "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to search candidates", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// CreateFromExtraction persists one extraction result as a new candidate
// row. Re-processing the same document inserts a new row; callers that
// want idempotency deduplicate on the file's content hash beforehand.
func (r *candidateRepo) CreateFromExtraction(ctx context.Context, fileID uuid.UUID, res *extract.ExtractionResult, confidence float32) (*entity.Candidate, error) {
	now := time.Now().UTC()
	c := &entity.Candidate{
		ID:         uuid.New(),
		FileID:     fileID,
		FullName:   res.Name,
		Email:      res.Email,
		Phone:      res.Phone,
		Skills:     res.Skills,
		Education:  res.Education,
		Experience: res.Experience,
		Entities:   res.Entities.StringMap(),
		Confidence: confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	skills, err := json.Marshal(c.Skills)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to encode skills", err)
	}
	education, err := json.Marshal(c.Education)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to encode education", err)
	}
	experience, err := json.Marshal(c.Experience)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to encode experience", err)
	}
	entities, err := json.Marshal(c.Entities)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to encode entities", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO candidates (id, file_id, full_name, email, phone, skills, education, experience, entities, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID.String(), c.FileID.String(), c.FullName, c.Email, c.Phone,
		string(skills), string(education), string(experience), string(entities),
		c.Confidence, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create candidate", "file_id", fileID, "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to create candidate", err)
	}
	r.logger.Info("candidate created", "candidate_id", c.ID, "file_id", fileID)
	return c, nil
}

func scanCandidates(rows *sql.Rows) ([]*entity.Candidate, error) {
	var out []*entity.Candidate
	for rows.Next() {
		var (
			c                                     entity.Candidate
			id, fileID                            string
			skills, education, experience, entMap string
		)
		err := rows.Scan(&id, &fileID, &c.FullName, &c.Email, &c.Phone,
			&skills, &education, &experience, &entMap,
			&c.Confidence, &c.CreatedAt, &c.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to scan candidate", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, common.NewAppError("DB_ERROR", "invalid candidate id", err)
		}
		if c.FileID, err = uuid.Parse(fileID); err != nil {
			return nil, common.NewAppError("DB_ERROR", "invalid candidate file id", err)
		}
		if err := json.Unmarshal([]byte(skills), &c.Skills); err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to decode skills", err)
		}
		if err := json.Unmarshal([]byte(education), &c.Education); err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to decode education", err)
		}
		if err := json.Unmarshal([]byte(experience), &c.Experience); err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to decode experience", err)
		}
		if err := json.Unmarshal([]byte(entMap), &c.Entities); err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to decode entities", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to iterate candidates", err)
	}
	return out, nil
}

// placeholder returns the numbered SQL placeholder for position n. Both
// pgx and sqlite accept the $n form.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
