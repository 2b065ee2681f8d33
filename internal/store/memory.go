package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is an in-process implementation of the Store methods, used by
// handler tests.
type Memory struct {
	mu sync.Mutex

	nextID    int
	users     map[int]User
	profiles  map[int]Profile
	progress  []ProgressEntry
	workouts  []Workout
	nutrition []NutritionLog

	// now stamps created_at columns.
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[int]User),
		profiles: make(map[int]Profile),
		now:      time.Now,
	}
}

// SetClock overrides the time source used for created_at stamps.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) id() int {
	m.nextID++
	return m.nextID
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

/* ─── Users ───────────────────────────────────────────────────────────── */

func (m *Memory) CreateUser(_ context.Context, username, email, passwordHash, token string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return User{}, ErrDuplicate
		}
	}
	created := m.now()
	u := User{ID: m.id(), Username: username, Email: email, Password: passwordHash, AuthToken: token, CreatedAt: &created}
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) UserIDByToken(_ context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.AuthToken == token {
			return u.ID, nil
		}
	}
	return 0, ErrNotFound
}

func (m *Memory) RotateToken(_ context.Context, userID int, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.AuthToken = token
	m.users[userID] = u
	return nil
}

/* ─── Profiles ────────────────────────────────────────────────────────── */

func (m *Memory) GetProfile(_ context.Context, userID int) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) UpsertProfile(_ context.Context, p Profile) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.profiles[p.UserID]
	if ok {
		p.ID = existing.ID
		p.GoalWeightKG = existing.GoalWeightKG
	} else {
		p.ID = m.id()
		p.GoalWeightKG = nil
	}
	updated := m.now()
	p.UpdatedAt = &updated
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *Memory) SetGoalWeight(_ context.Context, userID int, kg float64) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		p = Profile{ID: m.id(), UserID: userID}
	}
	p.GoalWeightKG = &kg
	updated := m.now()
	p.UpdatedAt = &updated
	m.profiles[userID] = p
	return p, nil
}

/* ─── Progress ────────────────────────────────────────────────────────── */

func (m *Memory) ListProgress(_ context.Context, userID int) ([]ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []ProgressEntry{}
	for _, e := range m.progress {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b ProgressEntry) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (m *Memory) UpsertProgress(_ context.Context, e ProgressEntry) (ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.progress {
		if existing.UserID == e.UserID && existing.Date.Equal(e.Date.Time) && existing.MealKey == e.MealKey {
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
			m.progress[i] = e
			return e, nil
		}
	}
	e.ID = m.id()
	created := m.now()
	e.CreatedAt = &created
	m.progress = append(m.progress, e)
	return e, nil
}

/* ─── Workouts ────────────────────────────────────────────────────────── */

func (m *Memory) ListWorkouts(_ context.Context, userID int, status WorkoutStatus) ([]Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Workout{}
	for _, w := range m.workouts {
		if w.UserID != userID {
			continue
		}
		if (status == WorkoutsPending && w.Completed) || (status == WorkoutsCompleted && !w.Completed) {
			continue
		}
		out = append(out, w)
	}
	slices.SortStableFunc(out, func(a, b Workout) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *Memory) CreateWorkout(_ context.Context, w Workout) (Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.ID = m.id()
	w.CreatedAt = m.now()
	m.workouts = append(m.workouts, w)
	return w, nil
}

func (m *Memory) CompleteWorkouts(_ context.Context, userID int, ids []int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.workouts {
		w := &m.workouts[i]
		if w.UserID == userID && !w.Completed && slices.Contains(ids, w.ID) {
			w.Completed = true
			n++
		}
	}
	return n, nil
}

func (m *Memory) DeleteWorkout(_ context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.workouts {
		if w.ID != id || w.UserID != userID {
			continue
		}
		if w.Completed {
			return ErrWorkoutCompleted
		}
		m.workouts = slices.Delete(m.workouts, i, i+1)
		return nil
	}
	return ErrNotFound
}

/* ─── Nutrition logs ──────────────────────────────────────────────────── */

func (m *Memory) ListNutritionLogs(_ context.Context, userID int) ([]NutritionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []NutritionLog{}
	for _, n := range m.nutrition {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b NutritionLog) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (m *Memory) CreateNutritionLog(_ context.Context, n NutritionLog) (NutritionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	created := m.now()
	n.CreatedAt = &created
	m.nutrition = append(m.nutrition, n)
	return n, nil
}
