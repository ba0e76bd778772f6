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

// CourseRepository handles course and enrollment database operations. It
// backs the membership index; enrollment mutation is exposed only to the
// seed/admin path.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetCourseByID retrieves a course with its owning teacher's name
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlQuery, args, err := r.sb.Select("c.id", "c.name", "c.teacher_id", "u.name AS teacher_name").
		From("courses c").
		Join("users u ON c.teacher_id = u.id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&course.ID, &course.Name, &course.TeacherID, &course.TeacherName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error querying course by ID")
		return nil, fmt.Errorf("error querying course ID=%d: %w", id, err)
	}

	return &course, nil
}

// IsEnrolled reports whether the student is enrolled in the course
func (r *CourseRepository) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	var enrolled bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&enrolled)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error checking enrollment")
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return enrolled, nil
}

// Teaches reports whether the teacher owns the course
func (r *CourseRepository) Teaches(ctx context.Context, teacherID, courseID int64) (bool, error) {
	var teaches bool
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1 AND teacher_id = $2)`
	err := r.db.QueryRow(ctx, query, courseID, teacherID).Scan(&teaches)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Int64("courseID", courseID).Msg("Error checking course ownership")
		return false, fmt.Errorf("error checking course ownership: %w", err)
	}
	return teaches, nil
}

// ListCoursesByStudent returns the courses a student is enrolled in
func (r *CourseRepository) ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error) {
	sqlQuery, args, err := r.sb.Select("c.id", "c.name", "c.teacher_id", "u.name AS teacher_name").
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Join("users u ON c.teacher_id = u.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrolled courses query: %w", err)
	}

	return r.queryCourses(ctx, sqlQuery, args)
}

// ListCoursesByTeacher returns the courses a teacher owns
func (r *CourseRepository) ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]models.Course, error) {
	sqlQuery, args, err := r.sb.Select("c.id", "c.name", "c.teacher_id", "u.name AS teacher_name").
		From("courses c").
		Join("users u ON c.teacher_id = u.id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list taught courses query: %w", err)
	}

	return r.queryCourses(ctx, sqlQuery, args)
}

// ListCourses returns every course. Used for the admin view.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	sqlQuery, args, err := r.sb.Select("c.id", "c.name", "c.teacher_id", "u.name AS teacher_name").
		From("courses c").
		Join("users u ON c.teacher_id = u.id").
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	return r.queryCourses(ctx, sqlQuery, args)
}

func (r *CourseRepository) queryCourses(ctx context.Context, sqlQuery string, args []interface{}) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.TeacherID, &course.TeacherName); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// CreateCourse inserts a new course. Used by the seed/admin bootstrap only.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("courses").
		Columns("name", "teacher_id").
		Values(course.Name, course.TeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error inserting course")
		return 0, fmt.Errorf("error inserting course: %w", err)
	}

	logger.Info().Int64("courseID", id).Str("name", course.Name).Msg("Course created")
	return id, nil
}

// Enroll adds a student to a course. Used by the seed/admin bootstrap only;
// duplicate enrollment is a no-op.
func (r *CourseRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	query := `INSERT INTO enrollments (course_id, student_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, query, courseID, studentID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error inserting enrollment")
		return fmt.Errorf("error inserting enrollment: %w", err)
	}
	return nil
}
