package core

import (
	"time"

	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// DefaultStaleAfter is how old a context file may be before the status
// report flags it.
const DefaultStaleAfter = 90 * 24 * time.Hour

// InventoryTaker reports on the health of the workspace context layer.
type InventoryTaker interface {
	Inventory() (*models.ContextInventory, error)
}

type inventoryTaker struct {
	store      storage.WorkspaceStore
	staleAfter time.Duration
	now        func() time.Time
}

// NewInventoryTaker builds an InventoryTaker; staleAfter <= 0 uses the
// default threshold.
func NewInventoryTaker(store storage.WorkspaceStore, staleAfter time.Duration) InventoryTaker {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &inventoryTaker{store: store, staleAfter: staleAfter, now: time.Now}
}

// Inventory scans goal and context documents for freshness and placeholder
// content, and reports which primitives have substantive coverage.
func (t *inventoryTaker) Inventory() (*models.ContextInventory, error) {
	inv := &models.ContextInventory{ScannedAt: t.now()}
	cutoff := inv.ScannedAt.Add(-t.staleAfter)

	substantive := map[string]bool{}
	for _, category := range []models.DocumentCategory{models.CategoryContext, models.CategoryGoals} {
		docs, err := t.store.List(category)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			f := models.FileFreshness{
				RelativePath: doc.RelativePath,
				Category:     doc.Category,
				ModifiedAt:   doc.ModifiedAt,
				Stale:        doc.ModifiedAt.Before(cutoff),
				Placeholder:  isPlaceholder(doc.Body),
			}
			inv.Freshness = append(inv.Freshness, f)
			if f.Stale {
				inv.StaleFiles = append(inv.StaleFiles, f)
			}
			if !f.Placeholder {
				substantive[doc.RelativePath] = true
			}
		}
	}

	for _, p := range models.AllPrimitives {
		if substantive[primitiveSources[p]] {
			inv.Covered = append(inv.Covered, p)
		} else {
			inv.Missing = append(inv.Missing, p)
		}
	}
	return inv, nil
}
