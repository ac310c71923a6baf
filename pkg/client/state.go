package client

import "sync"

// State is the local mirror of server state: the authenticated user, the
// bearer token, and the task list snapshot for the active filter. Mutations
// happen only from confirmed server responses; each patch touches a single
// record in place instead of re-fetching the whole list.
type State struct {
	mu     sync.RWMutex
	user   *User
	token  string
	tasks  []Task
	filter string
}

// NewState returns an empty state mirror with the "all" view active.
func NewState() *State {
	return &State{filter: "all"}
}

// --- Read accessors ---

func (s *State) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Tasks returns a copy of the current snapshot, newest first.
func (s *State) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// --- Mutations, driven by confirmed server responses ---

// SetSession records a successful register or login.
func (s *State) SetSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := sess.User
	s.user = &u
	s.token = sess.Token
}

// ClearSession wipes the user, token and task snapshot on logout.
func (s *State) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.tasks = nil
	s.filter = "all"
}

// SetTasks replaces the snapshot after a list fetch for the given filter.
func (s *State) SetTasks(filter string, tasks []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filter == "" {
		filter = "all"
	}
	s.filter = filter
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
}

// ApplyCreated inserts a freshly created task at the front of the snapshot
// (lists are ordered newest first).
func (s *State) ApplyCreated(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]Task{task}, s.tasks...)
}

// ApplyUpdated replaces the task with the same id by the server's version.
// Tasks not present in the current snapshot are ignored.
func (s *State) ApplyUpdated(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}

// ApplyDeleted patches the snapshot after a delete. A permanent delete
// removes the record outright; a soft delete drops it from every view
// except the trash, where the flagged record is kept visible.
func (s *State) ApplyDeleted(task Task, permanent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !permanent && s.filter == "deleted" {
		for i := range s.tasks {
			if s.tasks[i].ID == task.ID {
				s.tasks[i] = task
				return
			}
		}
		return
	}
	s.remove(task.ID)
}

// ApplyRestored patches the snapshot after a restore: the task leaves the
// trash view and is refreshed in place anywhere else.
func (s *State) ApplyRestored(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == "deleted" {
		s.remove(task.ID)
		return
	}
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}

// remove drops the task with the given id; caller holds the lock.
func (s *State) remove(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
