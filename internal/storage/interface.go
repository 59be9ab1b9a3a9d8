package storage

import "github.com/jordanpayne/reveille/internal/models"

// Provider is the persistence surface behind the API server. The default
// backend is in-memory; SQLite is available when the data should survive
// server restarts.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetAllUsers() ([]models.User, error)

	// Gamification stats
	GetStats(userID string) (models.Stats, error)
	SaveStats(models.Stats) error

	// Alarms
	AddAlarm(models.Alarm) error
	GetAlarm(id string) (models.Alarm, error)
	GetAlarmsByUser(userID string) ([]models.Alarm, error)
	UpdateAlarm(models.Alarm) error
	DeleteAlarm(id string) error

	// Notes
	AddNote(models.Note) error
	GetNote(id string) (models.Note, error)
	GetNotesByUser(userID string) ([]models.Note, error)
	UpdateNote(models.Note) error
	DeleteNote(id string) error

	// Planner tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetTasksByUser(userID string) ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
}
