package repositories

import (
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// DraftRepository keeps orders that are still being composed.
type DraftRepository interface {
	Create(draft *models.Draft) (string, error)
	GetByID(draftID string) (*models.Draft, error)
	Update(draft *models.Draft) error
	Delete(draftID string) error
}

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[string]models.Draft
}

// NewDraftRepository creates an empty in-memory DraftRepository.
func NewDraftRepository() DraftRepository {
	return &draftRepository{drafts: make(map[string]models.Draft)}
}

func (r *draftRepository) Create(draft *models.Draft) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if draft.ID == "" {
		draft.ID = NewID()
	}
	r.drafts[draft.ID] = draft.Clone()
	return draft.ID, nil
}

func (r *draftRepository) GetByID(draftID string) (*models.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[draftID]
	if !ok {
		return nil, ErrNotFound
	}
	out := d.Clone()
	return &out, nil
}

func (r *draftRepository) Update(draft *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draft.ID]; !ok {
		return ErrNotFound
	}
	r.drafts[draft.ID] = draft.Clone()
	return nil
}

func (r *draftRepository) Delete(draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draftID]; !ok {
		return ErrNotFound
	}
	delete(r.drafts, draftID)
	return nil
}
