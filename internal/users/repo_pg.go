package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, image, role, department, position, performance, potential,
  readiness_score, gender, target_role, current_courses, is_anonymous, join_date, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	courses, err := json.Marshal(nonNilStrings(user.CurrentCourses))
	if err != nil {
		return fmt.Errorf("encode courses: %w", err)
	}
	const query = `
INSERT INTO users (id, email, name, image, role, department, position, performance, potential,
  readiness_score, gender, target_role, current_courses, is_anonymous, join_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  image = EXCLUDED.image,
  role = EXCLUDED.role,
  department = EXCLUDED.department,
  position = EXCLUDED.position,
  performance = EXCLUDED.performance,
  potential = EXCLUDED.potential,
  readiness_score = EXCLUDED.readiness_score,
  gender = EXCLUDED.gender,
  target_role = EXCLUDED.target_role,
  current_courses = EXCLUDED.current_courses,
  is_anonymous = EXCLUDED.is_anonymous,
  join_date = COALESCE(users.join_date, EXCLUDED.join_date),
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.Name),
		nullableString(user.Image),
		user.Role,
		nullableString(user.Department),
		nullableString(user.Position),
		nullableFloat(user.Performance),
		nullableString(user.Potential),
		nullableFloat(user.ReadinessScore),
		nullableString(user.Gender),
		nullableString(user.TargetRole),
		courses,
		user.IsAnonymous,
		user.JoinDate,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		u                                            User
		name, image, department, position, potential sql.NullString
		gender, targetRole                           sql.NullString
		performance, readiness                       sql.NullFloat64
		courses                                      []byte
		joinDate                                     sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.Email, &name, &image, &u.Role, &department, &position, &performance, &potential,
		&readiness, &gender, &targetRole, &courses, &u.IsAnonymous, &joinDate, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	u.Name = name.String
	u.Image = image.String
	u.Department = department.String
	u.Position = position.String
	u.Potential = potential.String
	u.Gender = gender.String
	u.TargetRole = targetRole.String
	if performance.Valid {
		v := performance.Float64
		u.Performance = &v
	}
	if readiness.Valid {
		v := readiness.Float64
		u.ReadinessScore = &v
	}
	if joinDate.Valid {
		t := joinDate.Time
		u.JoinDate = &t
	}
	if len(courses) > 0 {
		if err := json.Unmarshal(courses, &u.CurrentCourses); err != nil {
			return User{}, fmt.Errorf("decode courses: %w", err)
		}
	}
	return u, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
