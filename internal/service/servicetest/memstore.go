// Package servicetest provides in-memory stores for exercising the services
// and handlers without a database.
package servicetest

import (
	"context"
	"sync"

	"github.com/GTDGit/resto_api/internal/models"
)

// ProductStore is an in-memory service.ProductStore. Set Err to make every
// call fail.
type ProductStore struct {
	mu           sync.Mutex
	Items        []models.Product
	NextID       int64
	Err          error
	VisibleCalls int
}

func (m *ProductStore) Create(_ context.Context, p *models.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.NextID++
	p.ID = m.NextID
	m.Items = append(m.Items, *p)
	return p.ID, nil
}

func (m *ProductStore) FindAll(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Product{}, m.Items...), nil
}

func (m *ProductStore) FindVisible(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VisibleCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Product{}
	for _, p := range m.Items {
		if p.Visible && p.Status == models.StatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProductStore) FindByID(_ context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Items {
		if m.Items[i].ID == id {
			p := m.Items[i]
			return &p, nil
		}
	}
	return nil, m.Err
}

func (m *ProductStore) Update(_ context.Context, id int64, patch models.ProductPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	for i := range m.Items {
		p := &m.Items[i]
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Visible != nil {
			p.Visible = *patch.Visible
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.DisplayOrder != nil {
			p.DisplayOrder = *patch.DisplayOrder
		}
		return true, nil
	}
	return false, nil
}

func (m *ProductStore) Hide(ctx context.Context, id int64) (bool, error) {
	visible := false
	return m.Update(ctx, id, models.ProductPatch{Visible: &visible})
}

// PromotionStore is an in-memory service.PromotionStore.
type PromotionStore struct {
	mu        sync.Mutex
	Items     []models.Promotion
	NextID    int64
	Err       error
	FindCalls int
	LastPatch models.PromotionPatch
}

func (m *PromotionStore) Create(_ context.Context, p *models.Promotion, productIDs []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.NextID++
	p.ID = m.NextID
	p.ProductIDs = append([]int64{}, productIDs...)
	m.Items = append(m.Items, *p)
	return p.ID, nil
}

func (m *PromotionStore) FindAll(context.Context) ([]models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Promotion{}, m.Items...), nil
}

func (m *PromotionStore) FindByID(_ context.Context, id int64) (*models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	for i := range m.Items {
		if m.Items[i].ID == id {
			p := m.Items[i]
			return &p, nil
		}
	}
	return nil, m.Err
}

func (m *PromotionStore) Update(_ context.Context, id int64, patch models.PromotionPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPatch = patch
	if m.Err != nil {
		return false, m.Err
	}
	for i := range m.Items {
		p := &m.Items[i]
		if p.ID != id {
			continue
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.PromoPrice != nil {
			p.PromoPrice = *patch.PromoPrice
		}
		if patch.Days != nil {
			p.Days = *patch.Days
		}
		if patch.StartTime != nil {
			p.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			p.EndTime = *patch.EndTime
		}
		if patch.ProductIDs != nil {
			p.ProductIDs = append([]int64{}, *patch.ProductIDs...)
		}
		return true, nil
	}
	return false, nil
}

func (m *PromotionStore) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	for i := range m.Items {
		if m.Items[i].ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
