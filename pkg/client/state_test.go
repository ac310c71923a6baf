package client

import (
	"path/filepath"
	"testing"
	"time"
)

func stateTask(id string) Task {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return Task{ID: id, OwnerID: "u1", Title: "task " + id, Priority: "medium", CreatedAt: now, UpdatedAt: now}
}

func TestState_Session(t *testing.T) {
	s := NewState()
	if s.User() != nil || s.Token() != "" {
		t.Fatalf("fresh state should be logged out")
	}

	s.SetSession(&Session{Token: "tok123", User: User{ID: "u1", Name: "Alice"}})
	if u := s.User(); u == nil || u.ID != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if s.Token() != "tok123" {
		t.Fatalf("token not stored")
	}

	s.SetTasks("all", []Task{stateTask("t1")})
	s.ClearSession()
	if s.User() != nil || s.Token() != "" || len(s.Tasks()) != 0 {
		t.Fatalf("logout should wipe user, token and snapshot")
	}
	if s.Filter() != "all" {
		t.Fatalf("filter should reset to all, got %q", s.Filter())
	}
}

func TestState_ApplyCreated_Prepends(t *testing.T) {
	s := NewState()
	s.SetTasks("all", []Task{stateTask("t1")})

	s.ApplyCreated(stateTask("t2"))

	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "t2" || tasks[1].ID != "t1" {
		t.Fatalf("created task should be first: %+v", tasks)
	}
}

func TestState_ApplyUpdated_ReplacesByID(t *testing.T) {
	s := NewState()
	s.SetTasks("all", []Task{stateTask("t1"), stateTask("t2")})

	updated := stateTask("t2")
	updated.Completed = true
	s.ApplyUpdated(updated)

	tasks := s.Tasks()
	if !tasks[1].Completed {
		t.Fatalf("update not patched in place: %+v", tasks)
	}

	// Unknown ids are ignored rather than inserted.
	s.ApplyUpdated(stateTask("t9"))
	if len(s.Tasks()) != 2 {
		t.Fatalf("unknown id must not grow the snapshot")
	}
}

func TestState_ApplyDeleted(t *testing.T) {
	s := NewState()
	s.SetTasks("all", []Task{stateTask("t1"), stateTask("t2")})

	trashed := stateTask("t1")
	trashed.Deleted = true
	s.ApplyDeleted(trashed, false)

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Fatalf("soft-deleted task should leave the 'all' view: %+v", tasks)
	}

	s.ApplyDeleted(stateTask("t2"), true)
	if len(s.Tasks()) != 0 {
		t.Fatalf("hard-deleted task should be removed")
	}
}

func TestState_ApplyDeleted_InTrashViewKeepsFlagged(t *testing.T) {
	s := NewState()
	flagged := stateTask("t1")
	flagged.Deleted = true
	s.SetTasks("deleted", []Task{flagged})

	s.ApplyDeleted(flagged, false)
	tasks := s.Tasks()
	if len(tasks) != 1 || !tasks[0].Deleted {
		t.Fatalf("trash view should keep the flagged record: %+v", tasks)
	}

	s.ApplyDeleted(flagged, true)
	if len(s.Tasks()) != 0 {
		t.Fatalf("permanent delete removes even from the trash view")
	}
}

func TestState_ApplyRestored(t *testing.T) {
	s := NewState()
	trashed := stateTask("t1")
	trashed.Deleted = true
	s.SetTasks("deleted", []Task{trashed})

	restored := stateTask("t1")
	s.ApplyRestored(restored)
	if len(s.Tasks()) != 0 {
		t.Fatalf("restored task should leave the trash view")
	}

	s.SetTasks("all", []Task{stateTask("t1")})
	refreshed := stateTask("t1")
	refreshed.Title = "renamed"
	s.ApplyRestored(refreshed)
	if tasks := s.Tasks(); tasks[0].Title != "renamed" {
		t.Fatalf("restore should refresh the record in place: %+v", tasks)
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token")
	store := NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("empty store should load empty: %q, %v", tok, err)
	}

	if err := store.Save("tok123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	tok, err := store.Load()
	if err != nil || tok != "tok123" {
		t.Fatalf("load returned %q, %v", tok, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("token survived clear: %q", tok)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("double clear failed: %v", err)
	}
}
