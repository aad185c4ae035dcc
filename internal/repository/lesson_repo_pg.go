package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	Update(ctx context.Context, id int64, patch LessonPatch) error
}

// LessonPatch carries a partial lesson update: Inc applies deltas to numeric
// fields, Set replaces field values. Field names are the JSON names.
type LessonPatch struct {
	Inc map[string]float64
	Set map[string]any
}

// lessonColumns maps patchable JSON field names to table columns.
var lessonColumns = map[string]string{
	"name":     "name",
	"location": "location",
	"price":    "price",
	"space":    "space",
}

// numeric columns eligible for Inc deltas
var lessonNumericColumns = map[string]bool{
	"price": true,
	"space": true,
}

var pg = goqu.Dialect("postgres")

type PGLessonRepository struct {
	db *pgxpool.Pool
}

func NewLessonRepository(db *pgxpool.Pool) LessonRepository {
	return &PGLessonRepository{db: db}
}

func (r *PGLessonRepository) List(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, location, price, space, created_at, updated_at FROM lessons ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := make([]domain.Lesson, 0)
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.Name, &l.Location, &l.Price, &l.Space, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *PGLessonRepository) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, location, price, space, created_at, updated_at FROM lessons WHERE id=$1`, id)
	var l domain.Lesson
	if err := row.Scan(&l.ID, &l.Name, &l.Location, &l.Price, &l.Space, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update applies the patch in a single UPDATE statement. Last write wins;
// there is no optimistic-concurrency check.
func (r *PGLessonRepository) Update(ctx context.Context, id int64, patch LessonPatch) error {
	rec := goqu.Record{}
	for field, value := range patch.Set {
		col, ok := lessonColumns[field]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		rec[col] = value
	}
	for field, delta := range patch.Inc {
		col, ok := lessonColumns[field]
		if !ok || !lessonNumericColumns[field] {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		rec[col] = goqu.L(col+" + ?", delta)
	}
	if len(rec) == 0 {
		return fmt.Errorf("%w: empty patch", ErrUnknownField)
	}
	rec["updated_at"] = goqu.L("now()")

	sql, args, err := pg.Update("lessons").Prepared(true).Set(rec).Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}

	res, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrLessonNotFound
	}
	return nil
}

var _ LessonRepository = (*PGLessonRepository)(nil)
