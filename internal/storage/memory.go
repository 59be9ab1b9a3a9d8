package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jordanpayne/reveille/internal/models"
)

// MemoryStore keeps everything in process memory. It is the default backend:
// the API is a small companion service and losing records on restart is an
// accepted tradeoff. All methods are safe for concurrent handler use.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	stats  map[string]models.Stats
	alarms map[string]models.Alarm
	notes  map[string]models.Note
	tasks  map[string]models.Task

	// insertion order per map, so list endpoints return records in a
	// stable creation order
	alarmOrder []string
	noteOrder  []string
	taskOrder  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]models.User)
	s.stats = make(map[string]models.Stats)
	s.alarms = make(map[string]models.Alarm)
	s.notes = make(map[string]models.Note)
	s.tasks = make(map[string]models.Task)
	s.alarmOrder = nil
	s.noteOrder = nil
	s.taskOrder = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Users

func (s *MemoryStore) AddUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("user already exists: %s", user.ID)
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemoryStore) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetAllUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Stats

func (s *MemoryStore) GetStats(userID string) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[userID]
	if !ok {
		// Every user implicitly has a zeroed accumulator.
		return models.Stats{UserID: userID, Level: 1}, nil
	}
	return stats, nil
}

func (s *MemoryStore) SaveStats(stats models.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stats.UserID] = stats
	return nil
}

// Alarms

func (s *MemoryStore) AddAlarm(alarm models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[alarm.ID]; ok {
		return fmt.Errorf("alarm already exists: %s", alarm.ID)
	}
	s.alarms[alarm.ID] = alarm
	s.alarmOrder = append(s.alarmOrder, alarm.ID)
	return nil
}

func (s *MemoryStore) GetAlarm(id string) (models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alarm, ok := s.alarms[id]
	if !ok {
		return models.Alarm{}, ErrNotFound
	}
	return alarm, nil
}

func (s *MemoryStore) GetAlarmsByUser(userID string) ([]models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var alarms []models.Alarm
	for _, id := range s.alarmOrder {
		if alarm, ok := s.alarms[id]; ok && alarm.UserID == userID {
			alarms = append(alarms, alarm)
		}
	}
	return alarms, nil
}

func (s *MemoryStore) UpdateAlarm(alarm models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[alarm.ID]; !ok {
		return ErrNotFound
	}
	s.alarms[alarm.ID] = alarm
	return nil
}

func (s *MemoryStore) DeleteAlarm(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[id]; !ok {
		return ErrNotFound
	}
	delete(s.alarms, id)
	s.alarmOrder = removeID(s.alarmOrder, id)
	return nil
}

// Notes

func (s *MemoryStore) AddNote(note models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[note.ID]; ok {
		return fmt.Errorf("note already exists: %s", note.ID)
	}
	s.notes[note.ID] = note
	s.noteOrder = append(s.noteOrder, note.ID)
	return nil
}

func (s *MemoryStore) GetNote(id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return models.Note{}, ErrNotFound
	}
	return note, nil
}

func (s *MemoryStore) GetNotesByUser(userID string) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var notes []models.Note
	for _, id := range s.noteOrder {
		if note, ok := s.notes[id]; ok && note.UserID == userID {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (s *MemoryStore) UpdateNote(note models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[note.ID]; !ok {
		return ErrNotFound
	}
	s.notes[note.ID] = note
	return nil
}

func (s *MemoryStore) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	s.noteOrder = removeID(s.noteOrder, id)
	return nil
}

// Tasks

func (s *MemoryStore) AddTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; ok {
		return fmt.Errorf("task already exists: %s", task.ID)
	}
	s.tasks[task.ID] = task
	s.taskOrder = append(s.taskOrder, task.ID)
	return nil
}

func (s *MemoryStore) GetTask(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}

func (s *MemoryStore) GetTasksByUser(userID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []models.Task
	for _, id := range s.taskOrder {
		if task, ok := s.tasks[id]; ok && task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *MemoryStore) UpdateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *MemoryStore) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return nil
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
