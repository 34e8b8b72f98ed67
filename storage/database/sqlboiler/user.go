package boiledrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/strmangle"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/user"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "role", "xp",
	"current_streak", "highest_streak", "total_active_days", "last_active_date",
}

func selectUserColumns(alias string) string {
	if alias == "" {
		return strings.Join(userColumns, ", ")
	}
	cols := make([]string, len(userColumns))
	for i, c := range userColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

var userPlaceholders = strmangle.Placeholders(false, len(userColumns), 1, 1)

type userRow struct {
	ID              string    `boil:"id"`
	FirstName       string    `boil:"first_name"`
	LastName        string    `boil:"last_name"`
	Email           string    `boil:"email"`
	Role            string    `boil:"role"`
	XP              int       `boil:"xp"`
	CurrentStreak   int       `boil:"current_streak"`
	HighestStreak   int       `boil:"highest_streak"`
	TotalActiveDays int       `boil:"total_active_days"`
	LastActiveDate  null.Time `boil:"last_active_date"`
}

type countRow struct {
	Count int `boil:"count"`
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo userRepository) unboil(row userRow) user.User {
	usr := user.User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Role:      row.Role,
		XP:        row.XP,
		Streak: user.Streak{
			Current:         row.CurrentStreak,
			Highest:         row.HighestStreak,
			TotalActiveDays: row.TotalActiveDays,
		},
	}
	if row.LastActiveDate.Valid {
		usr.LastActiveDate = core.DateOf(row.LastActiveDate.Time)
	}
	return usr
}

func (repo userRepository) raw(q string, args ...interface{}) *queries.Query {
	return queries.Raw(repo.db.Rebind(q), args...)
}

func (repo userRepository) count(ctx context.Context, exec boil.ContextExecutor, q string, args ...interface{}) (int, error) {
	var row countRow
	if err := repo.raw(q, args...).Bind(ctx, exec, &row); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (repo userRepository) getUser(ctx context.Context, exec boil.ContextExecutor, id string) (user.User, error) {
	var row userRow
	err := repo.raw(`SELECT `+selectUserColumns("")+` FROM users WHERE id = ?`, id).Bind(ctx, exec, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, core.NewStoreError(err, "selecting user")
	}
	return repo.unboil(row), nil
}

func (repo userRepository) GetUser(ctx context.Context, id string) (user.User, error) {
	return repo.getUser(ctx, repo.db, id)
}

// GetRoster reads the course rep and the students within one transaction.
func (repo userRepository) GetRoster(ctx context.Context, classroomID string) (user.Roster, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return user.Roster{}, core.NewStoreError(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var cls struct {
		CourseRepID null.String `boil:"course_rep_id"`
	}
	if err = repo.raw(`SELECT course_rep_id FROM classrooms WHERE id = ?`, classroomID).Bind(ctx, tx, &cls); err != nil {
		if err == sql.ErrNoRows {
			return user.Roster{}, user.ErrClassroomNotFound
		}
		return user.Roster{}, core.NewStoreError(err, "selecting classroom")
	}
	if !cls.CourseRepID.Valid {
		return user.Roster{}, user.ErrNoCourseRep
	}

	rep, err := repo.getUser(ctx, tx, cls.CourseRepID.String)
	if err != nil {
		if err == user.ErrNotFound {
			return user.Roster{}, user.ErrNoCourseRep
		}
		return user.Roster{}, err
	}

	var rows []userRow
	err = repo.raw(`SELECT `+selectUserColumns("u")+` FROM classroom_students cs
		JOIN users u ON u.id = cs.student_id
		WHERE cs.classroom_id = ?
		ORDER BY cs.seq`, classroomID).Bind(ctx, tx, &rows)
	if err != nil {
		return user.Roster{}, core.NewStoreError(err, "selecting students")
	}

	roster := user.Roster{CourseRep: rep, Students: make([]user.User, 0, len(rows))}
	for _, row := range rows {
		roster.Students = append(roster.Students, repo.unboil(row))
	}
	return roster, nil
}

func (repo userRepository) IsMember(ctx context.Context, classroomID, userID string) (bool, error) {
	n, err := repo.count(ctx, repo.db, `SELECT COUNT(*) AS count FROM classrooms WHERE id = ?`, classroomID)
	if err != nil {
		return false, core.NewStoreError(err, "selecting classroom")
	}
	if n == 0 {
		return false, user.ErrClassroomNotFound
	}

	n, err = repo.count(ctx, repo.db, `SELECT COUNT(*) AS count FROM classrooms c
		WHERE c.id = ? AND (c.course_rep_id = ? OR EXISTS (
			SELECT 1 FROM classroom_students cs WHERE cs.classroom_id = c.id AND cs.student_id = ?))`,
		classroomID, userID, userID)
	if err != nil {
		return false, core.NewStoreError(err, "checking membership")
	}
	return n > 0, nil
}

func (repo userRepository) SaveStreak(ctx context.Context, userID string, streak user.Streak) error {
	lastActive := null.NewTime(core.DateOf(streak.LastActiveDate), !streak.LastActiveDate.IsZero())
	res, err := repo.raw(`UPDATE users
		SET current_streak = ?, highest_streak = ?, total_active_days = ?, last_active_date = ?
		WHERE id = ?`,
		streak.Current, streak.Highest, streak.TotalActiveDays, lastActive, userID,
	).ExecContext(ctx, repo.db)
	if err != nil {
		return core.NewStoreError(err, "updating streak")
	}
	if n, err := res.RowsAffected(); err != nil {
		return core.NewStoreError(err, "updating streak")
	} else if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (repo userRepository) AddXP(ctx context.Context, userID string, xp int) (int, error) {
	var row struct {
		XP int `boil:"xp"`
	}
	err := repo.raw(`UPDATE users SET xp = xp + ? WHERE id = ? RETURNING xp`, xp, userID).Bind(ctx, repo.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, user.ErrNotFound
		}
		return 0, core.NewStoreError(err, "adding XP")
	}
	return row.XP, nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	n, err := repo.count(ctx, repo.db, `SELECT COUNT(*) AS count FROM users WHERE id = ? OR email = ?`, usr.ID, usr.Email)
	if err != nil {
		return user.User{}, core.NewStoreError(err, "checking user uniqueness")
	}
	if n > 0 {
		return user.User{}, user.ErrUserExists
	}

	var lastActive null.Time
	if !usr.LastActiveDate.IsZero() {
		usr.LastActiveDate = core.DateOf(usr.LastActiveDate)
		lastActive = null.TimeFrom(usr.LastActiveDate)
	}

	_, err = repo.raw(`INSERT INTO users (`+selectUserColumns("")+`) VALUES (`+userPlaceholders+`)`,
		usr.ID, usr.FirstName, usr.LastName, usr.Email, usr.Role, usr.XP,
		usr.Current, usr.Highest, usr.TotalActiveDays, lastActive,
	).ExecContext(ctx, repo.db)
	if err != nil {
		return user.User{}, core.NewStoreError(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) CreateClassroom(ctx context.Context, classroomID, courseRepID string) error {
	n, err := repo.count(ctx, repo.db, `SELECT COUNT(*) AS count FROM classrooms WHERE id = ?`, classroomID)
	if err != nil {
		return core.NewStoreError(err, "checking classroom")
	}
	if n > 0 {
		return user.ErrClassroomExists
	}
	if _, err = repo.GetUser(ctx, courseRepID); err != nil {
		return err
	}

	_, err = repo.raw(`INSERT INTO classrooms (id, course_rep_id) VALUES (?, ?)`, classroomID, courseRepID).ExecContext(ctx, repo.db)
	if err != nil {
		return core.NewStoreError(err, "inserting classroom")
	}
	return nil
}

func (repo userRepository) EnrollStudent(ctx context.Context, classroomID, studentID string) error {
	n, err := repo.count(ctx, repo.db, `SELECT COUNT(*) AS count FROM classrooms WHERE id = ?`, classroomID)
	if err != nil {
		return core.NewStoreError(err, "checking classroom")
	}
	if n == 0 {
		return user.ErrClassroomNotFound
	}
	if _, err = repo.GetUser(ctx, studentID); err != nil {
		return err
	}

	_, err = repo.raw(`INSERT INTO classroom_students (classroom_id, student_id) VALUES (?, ?)
		ON CONFLICT (classroom_id, student_id) DO NOTHING`, classroomID, studentID).ExecContext(ctx, repo.db)
	if err != nil {
		return core.NewStoreError(err, "enrolling student")
	}
	return nil
}
