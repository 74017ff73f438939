package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"salon-bot/internal/yclients"
)

// Catalog caches the platform's company id, service list and staff list.
// The cache is filled on demand and kept warm by a cron refresher so the
// per-message path rarely pays the three listing calls.
type Catalog struct {
	api *yclients.API

	mu        sync.RWMutex
	companyID int64
	services  []yclients.Service
	staff     []yclients.Staff

	cron *cron.Cron
}

func NewCatalog(api *yclients.API) *Catalog {
	return &Catalog{api: api}
}

// Refresh reloads company, services and staff. The first company of the
// authorized account is the only one served.
func (c *Catalog) Refresh(ctx context.Context) error {
	companies, err := c.api.MyCompanies(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}
	if len(companies) == 0 {
		return ErrNoCompany
	}
	companyID := companies[0].ID

	services, err := c.api.Services(ctx, companyID)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	staff, err := c.api.Staff(ctx, companyID)
	if err != nil {
		return fmt.Errorf("list staff: %w", err)
	}

	c.mu.Lock()
	c.companyID = companyID
	c.services = services
	c.staff = staff
	c.mu.Unlock()
	return nil
}

// StartRefresher schedules periodic Refresh calls; spec is a cron
// expression ("@every 10m").
func (c *Catalog) StartRefresher(spec string) error {
	c.cron = cron.New()
	_, err := c.cron.AddFunc(spec, func() {
		if err := c.Refresh(context.Background()); err != nil {
			log.Printf("catalog refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule catalog refresh: %w", err)
	}
	c.cron.Start()
	return nil
}

func (c *Catalog) Stop() {
	if c.cron != nil {
		c.cron.Stop()
	}
}

func (c *Catalog) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.companyID != 0
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Catalog) CompanyID(ctx context.Context) (int64, error) {
	if err := c.ensure(ctx); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.companyID, nil
}

func (c *Catalog) Services(ctx context.Context) ([]yclients.Service, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]yclients.Service, len(c.services))
	copy(out, c.services)
	return out, nil
}

func (c *Catalog) Staff(ctx context.Context) ([]yclients.Staff, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]yclients.Staff, len(c.staff))
	copy(out, c.staff)
	return out, nil
}

// Describe renders the live catalog for the LLM prompt: the first five
// services with prices and durations, then the first five masters.
func (c *Catalog) Describe(ctx context.Context) string {
	services, err := c.Services(ctx)
	if err != nil {
		log.Printf("failed to describe catalog: %v", err)
		return "Данные временно недоступны"
	}
	staff, err := c.Staff(ctx)
	if err != nil {
		log.Printf("failed to describe catalog: %v", err)
		return "Данные временно недоступны"
	}

	var b strings.Builder
	b.WriteString("Доступные услуги:\n")
	for i, s := range services {
		if i == 5 {
			break
		}
		b.WriteString("- " + s.Title)
		if s.PriceMin > 0 {
			fmt.Fprintf(&b, " (от %d руб.)", s.PriceMin)
		}
		if s.Length > 0 {
			fmt.Fprintf(&b, " (%d мин)", s.Length/60)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nДоступные мастера:\n")
	for i, m := range staff {
		if i == 5 {
			break
		}
		b.WriteString("- " + m.Name)
		if m.Specialization != "" {
			b.WriteString(" (" + m.Specialization + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
