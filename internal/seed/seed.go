// Package seed loads the demo data set used for local development. It
// runs only when seed.demo_data is enabled and never overwrites existing
// accounts.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/repositories"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/apperrors"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/auth"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

type seedUser struct {
	email string
	name  string
	roll  string
	role  models.RoleType
}

var demoUsers = []seedUser{
	{email: "admin@anonquery.app", name: "Site Admin", role: models.RoleAdmin},
	{email: "teacher@anonquery.app", name: "Asmita Sharma", role: models.RoleTeacher},
	{email: "student1@anonquery.app", name: "Bibek Thapa", roll: "CS-101-01", role: models.RoleStudent},
	{email: "student2@anonquery.app", name: "Nisha Karki", roll: "CS-101-02", role: models.RoleStudent},
	{email: "student3@anonquery.app", name: "Ramesh Adhikari", roll: "CS-101-03", role: models.RoleStudent},
}

const demoPassword = "password123"

var demoCourses = []string{"Data Structures", "Operating Systems"}

// Run inserts the demo users, courses and enrollments. Safe to call on
// every startup: existing rows are left alone.
func Run(ctx context.Context, repos *repositories.Repositories, jwtService *auth.JWTService) error {
	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	userIDs := make(map[string]int64, len(demoUsers))
	for _, u := range demoUsers {
		existing, err := repos.UserRepository.GetUserByEmail(ctx, u.email)
		if err == nil {
			userIDs[u.email] = existing.ID
			continue
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}

		id, err := repos.UserRepository.CreateUser(ctx, &models.User{
			Email:    u.email,
			Password: hashed,
			Name:     u.name,
			Roll:     u.roll,
			RoleType: u.role,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
		userIDs[u.email] = id
	}

	teacherID := userIDs["teacher@anonquery.app"]
	courses, err := repos.CourseRepository.ListCoursesByTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	courseIDs := make(map[string]int64, len(demoCourses))
	for i := range courses {
		courseIDs[courses[i].Name] = courses[i].ID
	}
	for _, name := range demoCourses {
		if _, exists := courseIDs[name]; exists {
			continue
		}
		id, err := repos.CourseRepository.CreateCourse(ctx, &models.Course{
			Name:      name,
			TeacherID: teacherID,
		})
		if err != nil {
			return fmt.Errorf("failed to seed course %s: %w", name, err)
		}
		courseIDs[name] = id
	}

	// Every demo student joins every demo course
	for _, u := range demoUsers {
		if u.role != models.RoleStudent {
			continue
		}
		for _, courseID := range courseIDs {
			if err := repos.CourseRepository.Enroll(ctx, userIDs[u.email], courseID); err != nil {
				return err
			}
		}
	}

	logDemoTokens(userIDs, jwtService)
	return nil
}

// logDemoTokens prints ready-to-use bearer tokens for the demo accounts
// so the mobile client can be pointed at a fresh instance immediately.
func logDemoTokens(userIDs map[string]int64, jwtService *auth.JWTService) {
	for _, u := range demoUsers {
		token, err := jwtService.GenerateToken(userIDs[u.email], u.email, string(u.role))
		if err != nil {
			logger.Warn().Err(err).Str("email", u.email).Msg("Failed to generate demo token")
			continue
		}
		logger.Info().
			Str("email", u.email).
			Str("role", string(u.role)).
			Str("token", token).
			Msg("Demo account ready")
	}
}
