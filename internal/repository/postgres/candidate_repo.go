package postgres

import (
	"context"
	"errors"
	"fmt"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `
	id, name, age, party, constituency, education, biography,
	political_history, achievements, allegations, criminal_record,
	youtube_url, image_url, viewed_by, liked_by, disliked_by,
	created_at, updated_at`

// Each toggle is one statement: the visitor leaves the opposite set and has
// its membership in the target set flipped. SET sees the old row, RETURNING
// the new one, and concurrent toggles on a row serialise on its lock.
const toggleQuery = `
	UPDATE candidates SET
		%[2]s = array_remove(%[2]s, $2::text),
		%[1]s = CASE
			WHEN $2::text = ANY(%[1]s) THEN array_remove(%[1]s, $2::text)
			ELSE array_append(%[1]s, $2::text)
		END
	WHERE id = $1
	RETURNING cardinality(liked_by), cardinality(disliked_by),
		$2::text = ANY(liked_by), $2::text = ANY(disliked_by)`

var (
	likeQuery    = fmt.Sprintf(toggleQuery, "liked_by", "disliked_by")
	dislikeQuery = fmt.Sprintf(toggleQuery, "disliked_by", "liked_by")
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var age int
	err := row.Scan(
		&c.ID, &c.Name, &age, &c.Party, &c.Constituency, &c.Education, &c.Biography,
		&c.PoliticalHistory, &c.Achievements, &c.Allegations, &c.CriminalRecord,
		&c.YoutubeURL, &c.ImageURL,
		pq.Array(&c.ViewedBy), pq.Array(&c.LikedBy), pq.Array(&c.DislikedBy),
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Age = &age
	c.ApplyDefaults()
	return &c, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates
		ORDER BY cardinality(liked_by) DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidates, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return c, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, name, age, party, constituency, education, biography,
			political_history, achievements, allegations, criminal_record,
			youtube_url, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING viewed_by, liked_by, disliked_by, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.Name, *c.Age, c.Party, c.Constituency, c.Education, c.Biography,
		c.PoliticalHistory, c.Achievements, c.Allegations, c.CriminalRecord,
		c.YoutubeURL, c.ImageURL,
	).Scan(pq.Array(&c.ViewedBy), pq.Array(&c.LikedBy), pq.Array(&c.DislikedBy), &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	c.ApplyDefaults()
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates SET
			name = $2, age = $3, party = $4, constituency = $5, education = $6, biography = $7,
			political_history = $8, achievements = $9, allegations = $10, criminal_record = $11,
			youtube_url = $12, image_url = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.Name, *c.Age, c.Party, c.Constituency, c.Education, c.Biography,
		c.PoliticalHistory, c.Achievements, c.Allegations, c.CriminalRecord,
		c.YoutubeURL, c.ImageURL,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound(domain.MsgCandidateNotFound)
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(domain.MsgCandidateNotFound)
	}
	return nil
}

func (r *candidateRepository) RecordView(ctx context.Context, id, visitor string) error {
	query := `UPDATE candidates SET viewed_by = array_append(viewed_by, $2::text)
		WHERE id = $1 AND NOT ($2::text = ANY(viewed_by))`
	if _, err := r.db.Exec(ctx, query, id, visitor); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepository) ToggleInteraction(ctx context.Context, id, visitor string, action domain.Action) (*domain.InteractionResult, error) {
	query := likeQuery
	if action == domain.ActionDislike {
		query = dislikeQuery
	}

	var res domain.InteractionResult
	err := r.db.QueryRow(ctx, query, id, visitor).Scan(
		&res.LikesCount, &res.DislikesCount, &res.UserHasLiked, &res.UserHasDisliked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound(domain.MsgCandidateNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return &res, nil
}
