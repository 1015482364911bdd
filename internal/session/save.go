package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tably/internal/backend"
	"tably/internal/gallery"
	"tably/internal/identity"
	"tably/internal/menu"
	"tably/internal/metrics"
	"tably/internal/schedule"
)

// Commit resource labels, used in the aggregated failure toast.
const (
	resourceHours  = "hours"
	resourceMenu   = "menu"
	resourcePhotos = "photos"
)

// ToastSaveSuccess is shown after all three resources committed.
const ToastSaveSuccess = "Store settings saved"

// ToastSaveRefreshFailed is shown when the commits succeeded but the
// follow-up refetch of the canonical snapshots did not.
const ToastSaveRefreshFailed = "Saved, but refreshing store data failed"

// menuAssignments maps pending identities to the server ids the backend
// assigned while committing the menu.
type menuAssignments struct {
	categories map[identity.ID]int64
	items      map[identity.ID]int64
}

func (a menuAssignments) empty() bool {
	return len(a.categories) == 0 && len(a.items) == 0
}

// Save commits the schedule, the menu tree and the photo collection as three
// concurrent backend calls. It joins all of them before producing any
// user-visible outcome. A save while one is in flight is ignored; an
// ineligible save is silently prevented (the UI disables the action). Server
// ids assigned during the menu commit are applied to the catalog whatever the
// other resources did, so a retry after a partial failure re-sends updates
// rather than duplicate creates. On full success the session is rehydrated
// from the backend.
func (s *Session) Save(ctx context.Context) {
	s.mu.Lock()
	if s.saveState == SaveSaving {
		s.mu.Unlock()
		return
	}
	if !s.schedule.IsSaveEligible() {
		s.mu.Unlock()
		return
	}
	s.saveState = SaveSaving
	sched := s.schedule
	catalog := s.catalog
	images := s.images
	s.mu.Unlock()

	type result struct {
		resource string
		err      error
	}
	results := make([]result, 3)

	var assigned menuAssignments
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		results[0] = result{resourceHours, s.commitSchedule(ctx, sched)}
	}()
	go func() {
		defer wg.Done()
		var err error
		assigned, err = s.commitMenu(ctx, catalog)
		results[1] = result{resourceMenu, err}
	}()
	go func() {
		defer wg.Done()
		results[2] = result{resourcePhotos, s.commitImages(ctx, images)}
	}()
	wg.Wait()

	// Identities the backend assigned stay confirmed even when another
	// resource failed, so a retry updates those rows instead of creating
	// duplicates.
	if !assigned.empty() {
		s.mu.Lock()
		s.catalog = s.catalog.ConfirmIdentities(assigned.categories, assigned.items)
		s.mu.Unlock()
	}

	var failures []string
	for _, r := range results {
		if r.err != nil {
			s.logger.Error().Err(r.err).Str("resource", r.resource).Msg("commit failed")
			metrics.IncResourceFailure(r.resource)
			failures = append(failures, fmt.Sprintf("%s: %v", r.resource, r.err))
		}
	}

	if len(failures) > 0 {
		s.mu.Lock()
		s.saveState = SavePartialFailure
		s.mu.Unlock()

		metrics.IncSave("partial_failure")
		s.bus.Toast("Save failed: " + strings.Join(failures, "; "))
		return
	}

	// Refetch the canonical snapshots. The commits above already went
	// through, so a refetch failure is surfaced but does not undo the save.
	toast := ToastSaveSuccess
	if err := s.Hydrate(ctx); err != nil {
		s.logger.Error().Err(err).Msg("refetch after save failed")
		toast = ToastSaveRefreshFailed
	}

	s.mu.Lock()
	s.saveState = SaveSuccess
	s.mu.Unlock()

	metrics.IncSave("success")
	s.bus.Toast(toast)
	s.bus.NavigateBack()
}

func (s *Session) commitSchedule(ctx context.Context, c schedule.Config) error {
	return s.store.UpdateOperationInfo(ctx, s.storeID, scheduleToWire(c))
}

// commitMenu replaces the category list first, then writes every item under
// the server ids the replace call assigned. Pending identities never reach
// the wire: a pending category or item becomes a create, keyed by position.
// The returned assignments record every id the backend handed out, including
// on a partial run, so the caller can confirm the rows that did get created.
func (s *Session) commitMenu(ctx context.Context, catalog menu.Catalog) (menuAssignments, error) {
	assigned := menuAssignments{
		categories: make(map[identity.ID]int64),
		items:      make(map[identity.ID]int64),
	}

	headers := make([]backend.CategoryHeader, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		header := backend.CategoryHeader{Name: cat.Name}
		if serverID, ok := cat.ID.Server(); ok {
			header.ID = serverID
		}
		headers = append(headers, header)
	}

	echoed, err := s.store.UpdateMenuCategoryOrderAndNames(ctx, s.storeID, headers)
	if err != nil {
		return assigned, fmt.Errorf("update categories: %w", err)
	}
	if len(echoed) != len(catalog.Categories) {
		return assigned, fmt.Errorf("update categories: got %d ids for %d categories", len(echoed), len(catalog.Categories))
	}

	for i, cat := range catalog.Categories {
		categoryID := echoed[i].ID
		if cat.ID.IsPending() {
			assigned.categories[cat.ID] = categoryID
		}
		for _, item := range cat.Items {
			req := backend.SaveMenuItemRequest{
				CategoryID: categoryID,
				Name:       item.Name,
				Price:      item.Price,
			}
			if serverID, ok := item.ID.Server(); ok {
				id := serverID
				req.ID = &id
			}
			if item.Image != nil {
				req.ImageRef = item.Image.URI
				req.ImageChanged = item.Image.Pending
			}
			itemID, err := s.store.SaveMenuItem(ctx, s.storeID, req)
			if err != nil {
				return assigned, fmt.Errorf("save item %q: %w", item.Name, err)
			}
			if item.ID.IsPending() {
				assigned.items[item.ID] = itemID
			}
		}
	}
	return assigned, nil
}

func (s *Session) commitImages(ctx context.Context, images gallery.Collection) error {
	return s.store.UpdateStoreImages(ctx, s.storeID, imagesToWire(images))
}
