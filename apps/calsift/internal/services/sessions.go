package services

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"calsift.app/apps/calsift/internal/models"
	"calsift.app/apps/calsift/internal/selection"
)

// Session is one user's working state: their engine plus the catalog it is
// pointed at. Sessions live for the process lifetime and are dropped after
// prolonged inactivity.
type Session struct {
	Engine     *selection.Engine
	Catalog    models.Catalog
	SourceURL  string
	LastActive time.Time
}

// SessionService owns all sessions and serializes every engine mutation
// behind one mutex; the engine itself does no locking.
type SessionService struct {
	logger   *slog.Logger
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionService(
	logger *slog.Logger,
	cleanupInterval time.Duration,
	maxAge time.Duration,
) *SessionService {
	service := &SessionService{
		logger:   logger,
		mu:       sync.Mutex{},
		sessions: make(map[string]*Session),
	}

	service.startCleanup(cleanupInterval, maxAge)

	return service
}

// session returns the user's session, creating an empty one on first use.
// Callers must hold the mutex.
func (s *SessionService) session(userID string) *Session {
	session, ok := s.sessions[userID]
	if !ok {
		session = &Session{
			Engine:     selection.NewEngine(),
			Catalog:    models.Catalog{},
			SourceURL:  "",
			LastActive: time.Now(),
		}
		s.sessions[userID] = session
	}

	session.LastActive = time.Now()
	return session
}

// ----------------------
// Catalog swaps
// ----------------------

// ConnectCalendar points the session at a new source. The old selection is
// cleared; it referred to a calendar the user is leaving behind.
func (s *SessionService) ConnectCalendar(
	userID string,
	sourceURL string,
	catalog models.Catalog,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	session.SourceURL = sourceURL
	session.Catalog = catalog
	session.Engine.ClearSelection()

	s.logger.Info("connected calendar",
		slog.String("userID", userID),
		slog.Int("groups", len(catalog)),
	)
}

// RefreshCatalog swaps in a rebuilt catalog for the same source. Selection
// is kept; group ids that vanished simply stop contributing to derived
// views.
func (s *SessionService) RefreshCatalog(userID string, catalog models.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return
	}

	session.Catalog = catalog
}

// Sources lists every active session's source URL, for the refresh job.
func (s *SessionService) Sources() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources := map[string]string{}
	for userID, session := range s.sessions {
		if session.SourceURL != "" {
			sources[userID] = session.SourceURL
		}
	}
	return sources
}

// ----------------------
// Selection operations
// ----------------------

func (s *SessionService) ToggleEvent(userID string, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).Engine.Toggle(title)
}

func (s *SessionService) SelectEvents(userID string, titles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).Engine.SelectMany(titles)
}

func (s *SessionService) DeselectEvents(userID string, titles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).Engine.DeselectMany(titles)
}

func (s *SessionService) ToggleGroupSubscription(
	userID string,
	groupID string,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	if _, ok := session.Catalog[groupID]; !ok {
		return false
	}

	session.Engine.ToggleSubscription(groupID)
	return true
}

func (s *SessionService) SubscribeAndSelect(userID string, groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	group, ok := session.Catalog[groupID]
	if !ok {
		return false
	}

	session.Engine.SubscribeAndSelect(groupID, group)
	return true
}

func (s *SessionService) UnsubscribeAndDeselect(
	userID string,
	groupID string,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	group, ok := session.Catalog[groupID]
	if !ok {
		return false
	}

	session.Engine.UnsubscribeAndDeselect(groupID, group)
	return true
}

func (s *SessionService) SubscribeToAllGroups(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	session.Engine.SubscribeToAllGroups(session.Catalog)
}

func (s *SessionService) UnsubscribeFromAllGroups(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).Engine.UnsubscribeFromAllGroups()
}

func (s *SessionService) SubscribeAndSelectAllGroups(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	session.Engine.SubscribeAndSelectAllGroups(session.Catalog)
}

func (s *SessionService) UnsubscribeAndDeselectAllGroups(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	session.Engine.UnsubscribeAndDeselectAllGroups(session.Catalog)
}

func (s *SessionService) ClearSelection(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).Engine.ClearSelection()
}

// ----------------------
// Expansion (cosmetic)
// ----------------------

const (
	ExpansionKindGroups = "groups"
	ExpansionKindEvents = "events"
)

func (s *SessionService) expansionSet(
	session *Session,
	kind string,
) (selection.ExpansionSet, bool) {
	switch kind {
	case ExpansionKindGroups:
		return session.Engine.ExpandedGroups, true
	case ExpansionKindEvents:
		return session.Engine.ExpandedEvents, true
	default:
		return nil, false
	}
}

func (s *SessionService) ToggleExpansion(
	userID string,
	kind string,
	id string,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.expansionSet(s.session(userID), kind)
	if !ok {
		return false
	}

	set.Toggle(id)
	return true
}

func (s *SessionService) ExpandAll(userID string, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	set, ok := s.expansionSet(session, kind)
	if !ok {
		return false
	}

	switch kind {
	case ExpansionKindGroups:
		ids := []string{}
		for groupID := range session.Catalog {
			ids = append(ids, groupID)
		}
		set.ExpandAll(ids)
	case ExpansionKindEvents:
		titles := []string{}
		for _, group := range session.Catalog {
			for _, ev := range group.RecurringEvents {
				titles = append(titles, ev.Title)
			}
		}
		set.ExpandAll(titles)
	}

	return true
}

func (s *SessionService) CollapseAll(userID string, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.expansionSet(s.session(userID), kind)
	if !ok {
		return false
	}

	set.CollapseAll()
	return true
}

// ----------------------
// Derived views
// ----------------------

type EventView struct {
	Title               string `json:"title"`
	EventCount          int    `json:"eventCount"`
	Selected            bool   `json:"selected"`
	EffectivelySelected bool   `json:"effectivelySelected"`
	Expanded            bool   `json:"expanded"`
}

type GroupView struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	State    selection.GroupState `json:"state"`
	Expanded bool                 `json:"expanded"`
	Events   []EventView          `json:"events"`
}

type SelectionState struct {
	EffectiveSelection []string          `json:"effectiveSelection"`
	Summary            selection.Summary `json:"summary"`
	Breakdown          string            `json:"breakdown"`
	AllSelected        bool              `json:"allSelected"`
}

// State snapshots everything the UI needs to render the selection header.
func (s *SessionService) State(userID string) SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	engine := session.Engine

	return SelectionState{
		EffectiveSelection: engine.EffectiveSelectionList(session.Catalog),
		Summary:            engine.SelectionSummary(session.Catalog),
		Breakdown:          engine.GroupBreakdownSummary(session.Catalog),
		AllSelected:        engine.AllSelected(session.Catalog),
	}
}

// CatalogView snapshots the catalog with per-group classification and
// per-event selection flags, sorted by group name for stable rendering.
func (s *SessionService) CatalogView(userID string) []GroupView {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	engine := session.Engine

	effective := engine.EffectiveSelection(session.Catalog)

	views := []GroupView{}
	for groupID, group := range session.Catalog {
		view := GroupView{
			ID:       groupID,
			Name:     group.Name,
			State:    engine.ClassifyGroup(groupID, group),
			Expanded: engine.ExpandedGroups.IsExpanded(groupID),
			Events:   []EventView{},
		}

		for _, ev := range group.RecurringEvents {
			view.Events = append(view.Events, EventView{
				Title:               ev.Title,
				EventCount:          ev.EventCount,
				Selected:            engine.IsSelected(ev.Title),
				EffectivelySelected: effective[ev.Title],
				Expanded:            engine.ExpandedEvents.IsExpanded(ev.Title),
			})
		}

		views = append(views, view)
	}

	slices.SortFunc(views, func(a, b GroupView) int {
		if a.Name == b.Name {
			return 0
		}
		if a.Name < b.Name {
			return -1
		}
		return 1
	})

	return views
}

// Ledgers returns what a saved filter persists: both raw ledgers plus the
// source they were made against.
func (s *SessionService) Ledgers(
	userID string,
) (selected []string, subscribed []string, sourceURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	return session.Engine.SelectedEvents(),
		session.Engine.SubscribedGroups(),
		session.SourceURL
}

// RestoreFilter rehydrates a saved filter into the session: catalog swap
// plus wholesale replacement of both ledgers.
func (s *SessionService) RestoreFilter(
	userID string,
	filter models.Filter,
	catalog models.Catalog,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	session.SourceURL = filter.SourceURL
	session.Catalog = catalog
	session.Engine.ReplaceSelection(filter.SelectedEvents)
	session.Engine.SetSubscribedGroups(filter.SubscribedGroups)
}

// ----------------------
// Automatic Cleanup
// ----------------------

func (s *SessionService) startCleanup(interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			s.cleanupStaleSessions(maxAge)
		}
	}()
}

func (s *SessionService) cleanupStaleSessions(maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, session := range s.sessions {
		if now.Sub(session.LastActive) > maxAge {
			s.logger.Info("removing inactive session",
				slog.String("userID", userID))
			delete(s.sessions, userID)
		}
	}
}
