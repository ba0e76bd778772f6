package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/dberrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// QueryRepository handles query database operations
type QueryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db *pgxpool.Pool) *QueryRepository {
	return &QueryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// baseSelect joins course and student display fields onto every query row
func (r *QueryRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"q.id", "q.course_id", "q.student_id", "q.question", "q.answer",
		"q.answered", "q.created_at", "q.answered_at",
		"c.name AS course_name", "u.name AS student_name", "u.roll AS student_roll",
	).
		From("queries q").
		Join("courses c ON q.course_id = c.id").
		Join("users u ON q.student_id = u.id")
}

func scanQueryRow(row pgx.Row, q *models.Query) error {
	return row.Scan(
		&q.ID, &q.CourseID, &q.StudentID, &q.Question, &q.Answer,
		&q.Answered, &q.CreatedAt, &q.AnsweredAt,
		&q.CourseName, &q.StudentName, &q.StudentRoll,
	)
}

// CreateQuery inserts a new pending query and returns its id
func (r *QueryRepository) CreateQuery(ctx context.Context, query *models.Query) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("queries").
		Columns("course_id", "student_id", "question").
		Values(query.CourseID, query.StudentID, query.Question).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create query SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", query.CourseID).Int64("studentID", query.StudentID).Msg("Error inserting query")
		return 0, fmt.Errorf("error inserting query: %w", err)
	}

	logger.Info().Int64("queryID", id).Int64("courseID", query.CourseID).Msg("Query created")
	return id, nil
}

// GetQueryByID retrieves a query with its display fields
func (r *QueryRepository) GetQueryByID(ctx context.Context, id int64) (*models.Query, error) {
	sqlQuery, args, err := r.baseSelect().
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get query SQL: %w", err)
	}

	var query models.Query
	err = scanQueryRow(r.db.QueryRow(ctx, sqlQuery, args...), &query)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQueryNotFound
		}
		logger.Error().Err(err).Int64("queryID", id).Msg("Error querying query by ID")
		return nil, fmt.Errorf("error querying query ID=%d: %w", id, err)
	}

	return &query, nil
}

// Answer records the answer for a pending query. The update is conditional
// on answered = FALSE so that of two racing callers exactly one succeeds;
// the loser gets ErrAlreadyAnswered, a missing row ErrQueryNotFound.
func (r *QueryRepository) Answer(ctx context.Context, id int64, answer string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE queries SET answer = $1, answered = TRUE, answered_at = NOW() WHERE id = $2 AND answered = FALSE`,
		answer, id,
	)
	if err != nil {
		logger.Error().Err(err).Int64("queryID", id).Msg("Error executing answer update")
		return fmt.Errorf("error answering query ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM queries WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error re-checking query ID=%d: %w", id, err)
		}
		if !exists {
			return apperrors.ErrQueryNotFound
		}
		logger.Warn().Int64("queryID", id).Msg("Answer rejected, query already answered")
		return apperrors.ErrAlreadyAnswered
	}

	logger.Info().Int64("queryID", id).Msg("Query answered")
	return nil
}

// ListByCourse returns all queries for a course, oldest first
func (r *QueryRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Query, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"q.course_id": courseID}).
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

// ListAnsweredByCourse returns answered queries for a course, oldest first
func (r *QueryRepository) ListAnsweredByCourse(ctx context.Context, courseID int64) ([]models.Query, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"q.course_id": courseID, "q.answered": true}).
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

// ListByStudent returns all queries a student has asked, oldest first
func (r *QueryRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Query, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"q.student_id": studentID}).
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

// ListByCourseAndStudent returns one student's queries in one course, oldest first
func (r *QueryRepository) ListByCourseAndStudent(ctx context.Context, courseID, studentID int64) ([]models.Query, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"q.course_id": courseID, "q.student_id": studentID}).
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

// ListAnsweredMissingNotification returns answered queries that have no
// notification row yet, oldest first. These are the deliveries lost to a
// crash or a transient store failure between the answer and the insert.
func (r *QueryRepository) ListAnsweredMissingNotification(ctx context.Context) ([]models.Query, error) {
	builder := r.baseSelect().
		LeftJoin("notifications n ON n.query_id = q.id").
		Where(squirrel.Eq{"q.answered": true}).
		Where("n.id IS NULL").
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

// ListAnswered returns answered queries across all courses, oldest first
func (r *QueryRepository) ListAnswered(ctx context.Context) ([]models.Query, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"q.answered": true}).
		OrderBy("q.created_at ASC", "q.id ASC")
	return r.queryMany(ctx, builder)
}

func (r *QueryRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Query, error) {
	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list queries SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list queries SQL")
		return nil, fmt.Errorf("failed to query queries: %w", err)
	}
	defer rows.Close()

	queries := make([]models.Query, 0)
	for rows.Next() {
		var query models.Query
		if err := scanQueryRow(rows, &query); err != nil {
			logger.Error().Err(err).Msg("Error scanning query row")
			return nil, fmt.Errorf("failed to scan query row: %w", err)
		}
		queries = append(queries, query)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating query rows: %w", err)
	}

	return queries, nil
}

// Roster returns every student who has asked a question in the course, each
// flagged when at least one of their queries there is still pending.
func (r *QueryRepository) Roster(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	sqlQuery := `
		SELECT u.id, u.name, u.roll, BOOL_OR(NOT q.answered) AS has_pending
		FROM queries q
		JOIN users u ON q.student_id = u.id
		WHERE q.course_id = $1
		GROUP BY u.id, u.name, u.roll
		ORDER BY u.roll ASC`

	rows, err := r.db.Query(ctx, sqlQuery, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing roster query")
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	roster := make([]models.RosterEntry, 0)
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(&entry.StudentID, &entry.StudentName, &entry.StudentRoll, &entry.HasPending); err != nil {
			logger.Error().Err(err).Msg("Error scanning roster row")
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		roster = append(roster, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	return roster, nil
}
