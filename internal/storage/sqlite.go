package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jordanpayne/reveille/internal/models"
)

// SQLiteStore is the durable backend, for installs that want alarms and
// notes to survive server restarts.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stats (
	user_id TEXT PRIMARY KEY,
	coins INTEGER NOT NULL DEFAULT 0,
	xp INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	streak INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS alarms (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	label TEXT NOT NULL,
	time TEXT NOT NULL,
	enabled INTEGER NOT NULL DEFAULT 1,
	sound TEXT NOT NULL DEFAULT 'bell',
	repeat_days TEXT NOT NULL DEFAULT '[]',
	snooze_until TEXT,
	last_triggered TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alarms_user ON alarms(user_id);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	tag TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
`

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Users

func (s *SQLiteStore) AddUser(user models.User) error {
	_, err := s.db.Exec(`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Username, user.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUser(id string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT id, username, created_at FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) GetUserByUsername(username string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT id, username, created_at FROM users WHERE username = ?`, username))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var createdAt string
	err := row.Scan(&user.ID, &user.Username, &createdAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, username, created_at FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var createdAt string
		if err := rows.Scan(&user.ID, &user.Username, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Stats

func (s *SQLiteStore) GetStats(userID string) (models.Stats, error) {
	var stats models.Stats
	err := s.db.QueryRow(`SELECT user_id, coins, xp, level, streak FROM stats WHERE user_id = ?`, userID).
		Scan(&stats.UserID, &stats.Coins, &stats.XP, &stats.Level, &stats.Streak)
	if err == sql.ErrNoRows {
		return models.Stats{UserID: userID, Level: 1}, nil
	}
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

func (s *SQLiteStore) SaveStats(stats models.Stats) error {
	_, err := s.db.Exec(`
		INSERT INTO stats (user_id, coins, xp, level, streak) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET coins = excluded.coins, xp = excluded.xp,
			level = excluded.level, streak = excluded.streak
	`, stats.UserID, stats.Coins, stats.XP, stats.Level, stats.Streak)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// Alarms

func (s *SQLiteStore) AddAlarm(alarm models.Alarm) error {
	_, err := s.db.Exec(`
		INSERT INTO alarms (id, user_id, label, time, enabled, sound, repeat_days,
			snooze_until, last_triggered, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, alarm.ID, alarm.UserID, alarm.Label, alarm.Time, alarm.Enabled, string(alarm.Sound),
		alarm.RepeatDays, timePtrToStr(alarm.SnoozeUntil), timePtrToStr(alarm.LastTriggered),
		alarm.CreatedAt.Format(time.RFC3339), alarm.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert alarm: %w", err)
	}
	return nil
}

const alarmColumns = `id, user_id, label, time, enabled, sound, repeat_days,
	snooze_until, last_triggered, created_at, updated_at`

func (s *SQLiteStore) GetAlarm(id string) (models.Alarm, error) {
	rows, err := s.db.Query(`SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("failed to query alarm: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Alarm{}, fmt.Errorf("failed to query alarm: %w", err)
		}
		return models.Alarm{}, ErrNotFound
	}
	return scanAlarm(rows)
}

func (s *SQLiteStore) GetAlarmsByUser(userID string) ([]models.Alarm, error) {
	rows, err := s.db.Query(`SELECT `+alarmColumns+` FROM alarms WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alarms: %w", err)
	}
	defer rows.Close()

	var alarms []models.Alarm
	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, alarm)
	}
	return alarms, rows.Err()
}

func scanAlarm(rows *sql.Rows) (models.Alarm, error) {
	var alarm models.Alarm
	var sound string
	var snoozeUntil, lastTriggered *string
	var createdAt, updatedAt string

	err := rows.Scan(&alarm.ID, &alarm.UserID, &alarm.Label, &alarm.Time, &alarm.Enabled,
		&sound, &alarm.RepeatDays, &snoozeUntil, &lastTriggered, &createdAt, &updatedAt)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("failed to scan alarm: %w", err)
	}

	alarm.Sound = models.ParseSound(sound)
	if alarm.SnoozeUntil, err = strToTimePtr(snoozeUntil); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to parse snooze_until: %w", err)
	}
	if alarm.LastTriggered, err = strToTimePtr(lastTriggered); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to parse last_triggered: %w", err)
	}
	if alarm.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if alarm.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return alarm, nil
}

func (s *SQLiteStore) UpdateAlarm(alarm models.Alarm) error {
	result, err := s.db.Exec(`
		UPDATE alarms SET label = ?, time = ?, enabled = ?, sound = ?, repeat_days = ?,
			snooze_until = ?, last_triggered = ?, updated_at = ?
		WHERE id = ?
	`, alarm.Label, alarm.Time, alarm.Enabled, string(alarm.Sound), alarm.RepeatDays,
		timePtrToStr(alarm.SnoozeUntil), timePtrToStr(alarm.LastTriggered),
		alarm.UpdatedAt.Format(time.RFC3339), alarm.ID)
	if err != nil {
		return fmt.Errorf("failed to update alarm: %w", err)
	}
	return requireRow(result)
}

func (s *SQLiteStore) DeleteAlarm(id string) error {
	result, err := s.db.Exec(`DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	return requireRow(result)
}

// Notes

func (s *SQLiteStore) AddNote(note models.Note) error {
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO notes (id, user_id, title, body, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.UserID, note.Title, note.Body, string(tags),
		note.CreatedAt.Format(time.RFC3339), note.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNote(id string) (models.Note, error) {
	rows, err := s.db.Query(`SELECT id, user_id, title, body, tags, created_at, updated_at FROM notes WHERE id = ?`, id)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to query note: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Note{}, fmt.Errorf("failed to query note: %w", err)
		}
		return models.Note{}, ErrNotFound
	}
	return scanNote(rows)
}

func (s *SQLiteStore) GetNotesByUser(userID string) ([]models.Note, error) {
	rows, err := s.db.Query(`SELECT id, user_id, title, body, tags, created_at, updated_at FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(rows *sql.Rows) (models.Note, error) {
	var note models.Note
	var tags, createdAt, updatedAt string

	err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Body, &tags, &createdAt, &updatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to scan note: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
		return models.Note{}, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if note.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Note{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if note.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Note{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return note, nil
}

func (s *SQLiteStore) UpdateNote(note models.Note) error {
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	result, err := s.db.Exec(`
		UPDATE notes SET title = ?, body = ?, tags = ?, updated_at = ? WHERE id = ?
	`, note.Title, note.Body, string(tags), note.UpdatedAt.Format(time.RFC3339), note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(result)
}

func (s *SQLiteStore) DeleteNote(id string) error {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireRow(result)
}

// Tasks

func (s *SQLiteStore) AddTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, user_id, title, tag, date, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.UserID, task.Title, task.Tag, task.Date, task.Completed,
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	rows, err := s.db.Query(`SELECT id, user_id, title, tag, date, completed, created_at, updated_at FROM tasks WHERE id = ?`, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to query task: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Task{}, fmt.Errorf("failed to query task: %w", err)
		}
		return models.Task{}, ErrNotFound
	}
	return scanTask(rows)
}

func (s *SQLiteStore) GetTasksByUser(userID string) ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT id, user_id, title, tag, date, completed, created_at, updated_at FROM tasks WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var task models.Task
	var createdAt, updatedAt string

	err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Tag, &task.Date, &task.Completed, &createdAt, &updatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	if task.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if task.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return task, nil
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	result, err := s.db.Exec(`
		UPDATE tasks SET title = ?, tag = ?, date = ?, completed = ?, updated_at = ? WHERE id = ?
	`, task.Title, task.Tag, task.Date, task.Completed, task.UpdatedAt.Format(time.RFC3339), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result)
}

func (s *SQLiteStore) DeleteTask(id string) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result)
}

// helpers

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func timePtrToStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func strToTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
