package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/filter"
	"movie-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Expressions that read document fields defensively: jsonb_typeof guards
// the cast so a malformed stored value can never abort a query, and negative
// values collapse to the same value normalization presents (0 for rating,
// NULL for year), so filtering and sorting agree with the API output.
const (
	ratingExpr = `CASE WHEN jsonb_typeof(doc->'rating') = 'number' THEN GREATEST((doc->'rating')::numeric, 0) ELSE 0 END`
	yearExpr   = `CASE WHEN jsonb_typeof(doc->'year') = 'number' AND (doc->'year')::numeric >= 0 THEN (doc->'year')::numeric ELSE NULL END`
)

type MovieRepository interface {
	Insert(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, pred filter.Predicate, page filter.Page) ([]*entity.Movie, int64, error)
	ApplyPatch(ctx context.Context, id uuid.UUID, patch map[string]any) (*entity.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Insert(ctx context.Context, movie *entity.Movie) error {
	doc, err := json.Marshal(movie.Document())
	if err != nil {
		return fmt.Errorf("marshal movie document: %w", err)
	}

	query := `INSERT INTO movies (id, doc) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, movie.ID, doc); err != nil {
		r.log.Error("Failed to insert movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("insert movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT doc, created_at, updated_at FROM movies WHERE id = $1`

	var raw []byte
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(ctx, query, id).Scan(&raw, &createdAt, &updatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id.String(), err)
	}

	return r.project(id, raw, createdAt, updatedAt), nil
}

// FindAll runs the filter → sort → paginate → project pipeline in a single
// query. COUNT(*) OVER () carries the total match count alongside the page
// slice, so page and total always describe the same matched set.
func (r *movieRepository) FindAll(ctx context.Context, pred filter.Predicate, page filter.Page) ([]*entity.Movie, int64, error) {
	query, args, where := listQuery(pred, page)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list movies",
			zap.Error(err),
			zap.Int("page", page.Number),
			zap.Int("page_size", page.Size),
		)
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	var total int64

	for rows.Next() {
		var id uuid.UUID
		var raw []byte
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &raw, &createdAt, &updatedAt, &total); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, r.project(id, raw, createdAt, updatedAt))
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, 0, fmt.Errorf("iterate movie rows: %w", err)
	}

	// An empty page slice carries no window row; count the matches directly.
	if len(movies) == 0 {
		total, err = r.countMatches(ctx, where, args[:len(args)-2])
		if err != nil {
			return nil, 0, err
		}
	}

	r.log.Debug("Movies listed",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", page.Number),
	)

	return movies, total, nil
}

// ApplyPatch merges the supplied fields into the stored document, refreshes
// the update timestamp and returns the normalized result.
func (r *movieRepository) ApplyPatch(ctx context.Context, id uuid.UUID, patch map[string]any) (*entity.Movie, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}

	query := `UPDATE movies SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1 RETURNING doc, created_at, updated_at`

	var raw []byte
	var createdAt, updatedAt time.Time
	err = r.db.QueryRow(ctx, query, id, data).Scan(&raw, &createdAt, &updatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to patch movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("patch movie %s: %w", id.String(), err)
	}

	return r.project(id, raw, createdAt, updatedAt), nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (r *movieRepository) countMatches(ctx context.Context, where []string, args []any) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countQuery(where), args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

// project applies the normalization rules to one raw document. A document
// that fails to decode normalizes the same way as an empty one: the caller
// always gets a fully-shaped record.
func (r *movieRepository) project(id uuid.UUID, raw []byte, createdAt, updatedAt time.Time) *entity.Movie {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.log.Warn("Malformed movie document",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		doc = map[string]any{}
	}
	movie := entity.MovieFromDocument(id, doc)
	movie.CreatedAt = createdAt
	movie.UpdatedAt = updatedAt
	return movie
}

// listQuery assembles the one-pass faceted page query: conjunctive WHERE,
// deterministic ORDER BY, page window, and the windowed total. The where
// conditions are returned as well so the empty-page fallback can count the
// same matched set.
func listQuery(pred filter.Predicate, page filter.Page) (string, []any, []string) {
	var b strings.Builder
	b.WriteString(`SELECT id, doc, created_at, updated_at, COUNT(*) OVER () AS total FROM movies`)

	where, args := buildConditions(pred)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	// Year descending with id as stable tie-break, so pagination stays
	// deterministic when many records share a year or lack one.
	b.WriteString(" ORDER BY ")
	b.WriteString(yearExpr)
	b.WriteString(" DESC NULLS LAST, id DESC")

	b.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, page.Size, page.Offset())

	return b.String(), args, where
}

func countQuery(where []string) string {
	query := `SELECT COUNT(*) FROM movies`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query
}

// buildConditions folds the predicate into independent SQL conditions that
// are AND-ed together. An empty predicate yields no WHERE clause at all.
func buildConditions(pred filter.Predicate) ([]string, []any) {
	var where []string
	var args []any

	if pred.Search != nil {
		pattern := "%" + escapeLike(*pred.Search) + "%"
		args = append(args, pattern)
		n := len(args)
		where = append(where, fmt.Sprintf(
			`(doc->>'title' ILIKE $%d OR doc->>'genre' ILIKE $%d OR doc->>'description' ILIKE $%d)`,
			n, n, n,
		))
	}

	if pred.Featured != nil {
		// Stored featured values may be any type; only a literal true counts.
		if *pred.Featured {
			where = append(where, `doc->'featured' = 'true'::jsonb`)
		} else {
			where = append(where, `(doc->'featured' IS NULL OR doc->'featured' <> 'true'::jsonb)`)
		}
	}

	if pred.MinRating != nil {
		args = append(args, *pred.MinRating)
		where = append(where, fmt.Sprintf(`%s >= $%d`, ratingExpr, len(args)))
	}
	if pred.MaxRating != nil {
		args = append(args, *pred.MaxRating)
		where = append(where, fmt.Sprintf(`%s <= $%d`, ratingExpr, len(args)))
	}

	if pred.Year != nil {
		args = append(args, *pred.Year)
		where = append(where, fmt.Sprintf(`%s = $%d`, yearExpr, len(args)))
	}

	return where, args
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
