package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-enroll-api/internal/models"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
)

// sessionState is one browsing session's selection. courseIDs preserves
// insertion order; membership lookups go through the index.
type sessionState struct {
	userType  models.UserType
	courseIDs []string
	index     map[string]struct{}
	inFlight  map[string]bool
	lastSeen  time.Time
}

// SelectionService tracks per-session course picks. Individual mode never
// accumulates state; institution mode keeps an ordered duplicate-free set.
// Sessions are memory-only and expire after an idle TTL.
type SelectionService struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSelectionService constructs the tracker.
func NewSelectionService(ttl time.Duration, logger *zap.Logger) *SelectionService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{
		sessions: make(map[string]*sessionState),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SelectionService) session(id string) *sessionState {
	state, ok := s.sessions[id]
	if !ok {
		state = &sessionState{
			userType: models.UserTypeIndividual,
			index:    make(map[string]struct{}),
			inFlight: make(map[string]bool),
		}
		s.sessions[id] = state
	}
	state.lastSeen = s.now()
	return state
}

// Get returns the session's current selection.
func (s *SelectionService) Get(sessionID string) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	return snapshot(state)
}

// SetUserType switches the workflow mode. Any mode change clears the
// selection set in the same critical section; callers cannot forget it.
func (s *SelectionService) SetUserType(sessionID string, userType models.UserType) (models.Selection, error) {
	if !userType.Valid() {
		return models.Selection{}, appErrors.Clone(appErrors.ErrValidation, "unknown user type")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	if state.userType != userType {
		state.courseIDs = nil
		state.index = make(map[string]struct{})
		state.userType = userType
	}
	return snapshot(state), nil
}

// Select handles an individual-mode pick: no state is recorded, the caller
// receives the apply-view navigation target for the course.
func (s *SelectionService) Select(sessionID, courseID string) (*models.NavigationTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	if state.userType != models.UserTypeIndividual {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "select is an individual-mode operation")
	}
	return &models.NavigationTarget{CourseID: courseID, Path: "/apply-course/" + courseID}, nil
}

// Toggle adds the course id to an institution selection, or removes it when
// already present. Toggling twice restores the original set.
func (s *SelectionService) Toggle(sessionID, courseID string) (models.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	if state.userType != models.UserTypeInstitution {
		return models.Selection{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "toggle is an institution-mode operation")
	}
	if _, ok := state.index[courseID]; ok {
		removeID(state, courseID)
	} else {
		state.index[courseID] = struct{}{}
		state.courseIDs = append(state.courseIDs, courseID)
	}
	return snapshot(state), nil
}

// Remove drops the course id if present; absent ids are a no-op.
func (s *SelectionService) Remove(sessionID, courseID string) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	if _, ok := state.index[courseID]; ok {
		removeID(state, courseID)
	}
	return snapshot(state)
}

// Clear empties the selection unconditionally. Confirming destructive intent
// is the caller's job.
func (s *SelectionService) Clear(sessionID string) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	state.courseIDs = nil
	state.index = make(map[string]struct{})
	return snapshot(state)
}

// IsSelected reports set membership.
func (s *SelectionService) IsSelected(sessionID, courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	_, ok := state.index[courseID]
	return ok
}

// BeginSubmission marks a form submission in flight for the session. It
// fails when one is already running, enforcing at most one concurrent
// submission per form.
func (s *SelectionService) BeginSubmission(sessionID, form string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	if state.inFlight[form] {
		return appErrors.ErrSubmissionInFlight
	}
	state.inFlight[form] = true
	return nil
}

// EndSubmission clears the in-flight flag so the user may retry.
func (s *SelectionService) EndSubmission(sessionID, form string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.session(sessionID)
	state.inFlight[form] = false
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (s *SelectionService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, state := range s.sessions {
		if state.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Sugar().Debugw("expired selection sessions", "count", removed)
	}
	return removed
}

// StartSweeper runs Sweep on the provided interval until the channel closes.
func (s *SelectionService) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func removeID(state *sessionState, courseID string) {
	delete(state.index, courseID)
	for i, id := range state.courseIDs {
		if id == courseID {
			state.courseIDs = append(state.courseIDs[:i], state.courseIDs[i+1:]...)
			break
		}
	}
}

func snapshot(state *sessionState) models.Selection {
	ids := make([]string, len(state.courseIDs))
	copy(ids, state.courseIDs)
	return models.Selection{UserType: state.userType, CourseIDs: ids}
}
