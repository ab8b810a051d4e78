// Package memory implements the volatile record store: a process-local,
// mutable collection of typed entities that every gateway can fall back to
// when the durable store is unreachable. State lives for the lifetime of the
// owning service instance and can optionally be snapshotted to disk.
package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"gymgate/config"
	"gymgate/internal/domain/entity"
	"gymgate/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Store holds all volatile entity collections behind a single lock.
type Store struct {
	mu           sync.RWMutex
	logger       *slog.Logger
	snapshotPath string

	members       map[uuid.UUID]*entity.Member
	attendance    map[uuid.UUID]*entity.AttendanceRecord
	notifications map[uuid.UUID]*entity.Notification
	users         map[uuid.UUID]*entity.DirectoryUser
}

// snapshot is the serialisable representation of the store's state.
type snapshot struct {
	Members       []*entity.Member           `json:"members"`
	Attendance    []*entity.AttendanceRecord `json:"attendance"`
	Notifications []*entity.Notification     `json:"notifications"`
	Users         []*entity.DirectoryUser    `json:"users"`
}

// NewStore creates an empty store. When snapshotPath is non-empty and the
// file exists, the previous snapshot is loaded.
func NewStore(logger *slog.Logger, snapshotPath string) *Store {
	s := &Store{
		logger:        logger,
		snapshotPath:  snapshotPath,
		members:       map[uuid.UUID]*entity.Member{},
		attendance:    map[uuid.UUID]*entity.AttendanceRecord{},
		notifications: map[uuid.UUID]*entity.Notification{},
		users:         map[uuid.UUID]*entity.DirectoryUser{},
	}

	if snapshotPath != "" {
		if err := s.load(); err != nil {
			logger.Warn("Failed to load record store snapshot, starting empty",
				slog.String("path", snapshotPath),
				slog.String("error", err.Error()),
			)
		}
	}

	return s
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the process-wide record store and registers a shutdown flush.
func New(params Params) *Store {
	path := ""
	if params.Config.Snapshot != nil {
		path = params.Config.Snapshot.Path
	}

	store := NewStore(params.Logger, path)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Flush()
		},
	})

	return store
}

// Flush writes the current state to the snapshot path. A store without a
// snapshot path flushes to nowhere.
func (s *Store) Flush() error {
	if s.snapshotPath == "" {
		return nil
	}

	s.mu.RLock()
	snap := snapshot{
		Members:       make([]*entity.Member, 0, len(s.members)),
		Attendance:    make([]*entity.AttendanceRecord, 0, len(s.attendance)),
		Notifications: make([]*entity.Notification, 0, len(s.notifications)),
		Users:         make([]*entity.DirectoryUser, 0, len(s.users)),
	}
	for _, m := range s.members {
		snap.Members = append(snap.Members, m)
	}
	for _, r := range s.attendance {
		snap.Attendance = append(snap.Attendance, r)
	}
	for _, n := range s.notifications {
		snap.Notifications = append(snap.Notifications, n)
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "failed to marshal record store snapshot")
	}

	// Write-then-rename so a crash mid-write never clobbers the previous
	// snapshot.
	tmp := s.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write record store snapshot")
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		return errors.Wrap(err, "failed to replace record store snapshot")
	}

	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrap(err, "failed to read record store snapshot")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return errors.Wrap(err, "failed to unmarshal record store snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range snap.Members {
		s.members[m.ID] = m
	}
	for _, r := range snap.Attendance {
		s.attendance[r.ID] = r
	}
	for _, n := range snap.Notifications {
		s.notifications[n.ID] = n
	}
	for _, u := range snap.Users {
		s.users[u.ID] = u
	}

	return nil
}

// --- Clone helpers ---
//
// Entities are cloned on every boundary crossing so callers can never alias
// the store's internal state.

func cloneMember(m *entity.Member) *entity.Member {
	if m == nil {
		return nil
	}
	out := *m
	if m.LastVisit != nil {
		lv := *m.LastVisit
		out.LastVisit = &lv
	}

	return &out
}

func cloneAttendance(r *entity.AttendanceRecord) *entity.AttendanceRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.CheckOutTime != nil {
		co := *r.CheckOutTime
		out.CheckOutTime = &co
	}
	if r.DeviceID != nil {
		d := *r.DeviceID
		out.DeviceID = &d
	}

	return &out
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	out := *n
	if n.ReadAt != nil {
		ra := *n.ReadAt
		out.ReadAt = &ra
	}
	if n.BranchID != nil {
		b := *n.BranchID
		out.BranchID = &b
	}
	if n.Payload != nil {
		payload := make(map[string]any, len(n.Payload))
		for k, v := range n.Payload {
			payload[k] = v
		}
		out.Payload = payload
	}

	return &out
}

func cloneUser(u *entity.DirectoryUser) *entity.DirectoryUser {
	if u == nil {
		return nil
	}
	out := *u
	if u.BranchID != nil {
		b := *u.BranchID
		out.BranchID = &b
	}

	return &out
}
