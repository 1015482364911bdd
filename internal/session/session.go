// Package session ties the store editor together: it exclusively owns the
// in-memory configuration (schedule, menu catalog, photo collection), routes
// user intents to the owning component, and commits all three resources to
// the backend on save.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tably/internal/backend"
	"tably/internal/events"
	"tably/internal/gallery"
	"tably/internal/identity"
	"tably/internal/menu"
	"tably/internal/metrics"
	"tably/internal/schedule"
)

// Store is the backend surface the session needs.
type Store interface {
	GetOperationInfo(ctx context.Context, storeID int64) (*backend.OperationInfo, error)
	UpdateOperationInfo(ctx context.Context, storeID int64, info backend.OperationInfo) error
	GetMenuCategories(ctx context.Context, storeID int64) ([]backend.MenuCategory, error)
	UpdateMenuCategoryOrderAndNames(ctx context.Context, storeID int64, categories []backend.CategoryHeader) ([]backend.CategoryHeader, error)
	SaveMenuItem(ctx context.Context, storeID int64, req backend.SaveMenuItemRequest) (int64, error)
	DeleteMenuItem(ctx context.Context, storeID, itemID int64) error
	GetStoreImages(ctx context.Context, storeID int64) ([]backend.StoreImage, error)
	UpdateStoreImages(ctx context.Context, storeID int64, images []backend.StoreImageUpdate) error
}

// SaveState is the save orchestrator's state.
type SaveState string

const (
	SaveIdle           SaveState = "idle"
	SaveSaving         SaveState = "saving"
	SaveSuccess        SaveState = "success"
	SavePartialFailure SaveState = "partial_failure"
)

// ToastDayAssigned is the user-facing notice for a rejected day toggle.
const ToastDayAssigned = "That day is already assigned to another schedule"

// Session is one editor session for a single store. All state lives behind
// the mutex; intent methods are synchronous and never block on the network
// except DeleteItem (confirmed items) and Save.
type Session struct {
	store   Store
	storeID int64
	bus     *events.Bus
	logger  *zerolog.Logger

	mu        sync.Mutex
	schedule  schedule.Config
	catalog   menu.Catalog
	images    gallery.Collection
	saveState SaveState
}

// New creates an empty session for the given store.
func New(store Store, storeID int64, bus *events.Bus, logger *zerolog.Logger) *Session {
	return &Session{
		store:     store,
		storeID:   storeID,
		bus:       bus,
		logger:    logger,
		saveState: SaveIdle,
	}
}

// Hydrate loads the canonical snapshots of all three resources, replacing
// any local state. Called when the editor opens and after a successful save.
func (s *Session) Hydrate(ctx context.Context) error {
	info, err := s.store.GetOperationInfo(ctx, s.storeID)
	if err != nil {
		return fmt.Errorf("get operation info: %w", err)
	}
	categories, err := s.store.GetMenuCategories(ctx, s.storeID)
	if err != nil {
		return fmt.Errorf("get menu categories: %w", err)
	}
	images, err := s.store.GetStoreImages(ctx, s.storeID)
	if err != nil {
		return fmt.Errorf("get store images: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = scheduleFromWire(*info)
	s.catalog = catalogFromWire(categories)
	s.images = imagesFromWire(images)
	return nil
}

// Snapshot is the read-only projection toward the UI.
type Snapshot struct {
	Schedule  schedule.Config
	Catalog   menu.Catalog
	Images    gallery.Collection
	SaveState SaveState
	Eligible  bool
}

// Snapshot returns a copy of the current configuration.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Schedule:  s.schedule,
		Catalog:   s.catalog,
		Images:    s.images,
		SaveState: s.saveState,
		Eligible:  s.schedule.IsSaveEligible(),
	}
}

// IsSaveEligible reports whether the save action should be enabled.
func (s *Session) IsSaveEligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.IsSaveEligible()
}

// Schedule intents.

func (s *Session) SetRegularHolidayMode(mode schedule.HolidayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.SetRegularHolidayMode(mode)
}

func (s *Session) SetWeeklyHolidayDays(days schedule.DaySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.SetWeeklyHolidayDays(days)
}

func (s *Session) SetMonthlyHolidayWeeks(weeks schedule.WeekSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.SetMonthlyHolidayWeeks(weeks)
}

func (s *Session) SetMonthlyHolidayDays(days schedule.DaySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.SetMonthlyHolidayDays(days)
}

func (s *Session) ToggleTemporaryHoliday() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.ToggleTemporaryHoliday()
}

func (s *Session) SetTemporaryHolidayRange(start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.SetTemporaryHolidayRange(start, end)
}

func (s *Session) AddScheduleBlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.AddBlock()
}

// SetScheduleDay toggles a weekday on a block. A day held by another block
// is rejected with a toast; the state does not change.
func (s *Session) SetScheduleDay(blockID int64, day time.Weekday) {
	s.mu.Lock()
	next, err := s.schedule.SetScheduleDay(blockID, day)
	if err == nil {
		s.schedule = next
	}
	s.mu.Unlock()

	if errors.Is(err, schedule.ErrDayAssigned) {
		metrics.IncDayConflict()
		s.bus.Toast(ToastDayAssigned)
	}
}

func (s *Session) SetScheduleTime(blockID int64, start, end schedule.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.schedule.SetScheduleTime(blockID, start, end)
	if err == nil {
		s.schedule = next
	}
}

func (s *Session) RemoveScheduleBlock(blockID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = s.schedule.RemoveBlock(blockID)
}

// Menu intents.

func (s *Session) AddCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.AddCategory(name)
}

func (s *Session) RenameCategory(id identity.ID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.RenameCategory(id, name)
}

// DeleteCategory removes the category locally. For confirmed categories the
// backend-side deletion happens on the next save, when the replaced category
// list no longer carries it.
func (s *Session) DeleteCategory(id identity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.DeleteCategory(id)
}

func (s *Session) MoveCategory(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.MoveCategory(from, to)
}

func (s *Session) MoveItem(categoryID identity.ID, from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.MoveItem(categoryID, from, to)
}

func (s *Session) AddItem(categoryID identity.ID, name string, price int64, image *menu.ImageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.AddItem(categoryID, name, price, image)
}

func (s *Session) UpdateItem(originalCategoryID, newCategoryID identity.ID, item menu.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = s.catalog.UpdateItem(originalCategoryID, newCategoryID, item)
}

// DeleteItem removes an item. Pending items are removed locally with no
// network call; confirmed items are deleted on the backend first and kept in
// local state when that call fails.
func (s *Session) DeleteItem(ctx context.Context, categoryID, itemID identity.ID) error {
	s.mu.Lock()
	next, needsBackend := s.catalog.DeleteItem(categoryID, itemID)
	if !needsBackend {
		s.catalog = next
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	serverID, _ := itemID.Server()
	if err := s.store.DeleteMenuItem(ctx, s.storeID, serverID); err != nil {
		s.logger.Error().Err(err).Int64("item_id", serverID).Msg("delete menu item failed")
		s.bus.Toast("Could not delete the menu item")
		return err
	}

	s.mu.Lock()
	s.catalog, _ = s.catalog.DeleteItem(categoryID, itemID)
	s.mu.Unlock()
	return nil
}

// Image intents.

func (s *Session) AddImages(sources []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = s.images.AddImages(sources)
}

func (s *Session) RemoveImage(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = s.images.Remove(source)
}

func (s *Session) SetRepresentativeImage(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = s.images.SetRepresentative(source)
}
