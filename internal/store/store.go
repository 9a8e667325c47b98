package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/persist"
)

var (
	ErrDuplicateID = errors.New("duplicate task id")
	ErrNotFound    = errors.New("task not found")
	ErrNoUpdates   = errors.New("no updates provided")
)

// Store owns the ordered task collection. Newest tasks sit at the front.
// Every mutation persists the full collection and fires the change hook.
type Store struct {
	mu    sync.RWMutex
	tasks []models.Task
	kv    persist.Store

	// onChange receives a snapshot after every mutation. Optional.
	onChange func([]models.Task)

	// now is swappable in tests.
	now func() time.Time
}

// Load reads the persisted task collection, falling back to the default
// seed list when the key is absent or does not parse.
func Load(kv persist.Store) *Store {
	s := &Store{kv: kv, now: time.Now}
	data, ok, err := kv.Get(persist.KeyTasks)
	if err != nil {
		log.Printf("store: read tasks: %v; using defaults", err)
	}
	if ok && err == nil {
		var tasks []models.Task
		if jerr := json.Unmarshal(data, &tasks); jerr != nil {
			log.Printf("store: parse tasks: %v; using defaults", jerr)
		} else {
			s.tasks = tasks
			return s
		}
	}
	s.tasks = DefaultTasks()
	return s
}

// OnChange registers the dashboard re-render hook. The callback receives a
// snapshot and must not call back into the store.
func (s *Store) OnChange(fn func([]models.Task)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Add inserts a new Pending task at the front of the collection.
// Fails with ErrDuplicateID when the id is already live.
func (s *Store) Add(id int, description, assignedTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return ErrDuplicateID
		}
	}
	if assignedTo == "" {
		assignedTo = "Unassigned"
	}
	task := models.Task{
		ID:          id,
		Description: description,
		Status:      models.StatusPending,
		AssignedTo:  assignedTo,
		Date:        s.now().Format("2006-01-02"),
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.changedLocked()
	return nil
}

// Update applies the supplied fields to an existing task, leaving the
// other untouched. Passing neither field is ErrNoUpdates.
func (s *Store) Update(id int, status *models.TaskStatus, assignedTo *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if status == nil && assignedTo == nil {
			return ErrNoUpdates
		}
		if status != nil {
			s.tasks[i].Status = *status
		}
		if assignedTo != nil {
			s.tasks[i].AssignedTo = *assignedTo
		}
		s.changedLocked()
		return nil
	}
	return ErrNotFound
}

// Delete removes the task with the given id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.changedLocked()
			return nil
		}
	}
	return ErrNotFound
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// List returns a snapshot of all tasks, or only those matching status
// when it is non-nil. Order is preserved.
func (s *Store) List(status *models.TaskStatus) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if status == nil || t.Status == *status {
			out = append(out, t)
		}
	}
	return out
}

// Len reports the number of live tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// changedLocked persists the collection and notifies the observer.
// Persistence failures are logged, never surfaced to the turn.
func (s *Store) changedLocked() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		log.Printf("store: marshal tasks: %v", err)
	} else if err := s.kv.Set(persist.KeyTasks, data); err != nil {
		log.Printf("store: save tasks: %v", err)
	}
	if s.onChange != nil {
		snap := make([]models.Task, len(s.tasks))
		copy(snap, s.tasks)
		s.onChange(snap)
	}
}
