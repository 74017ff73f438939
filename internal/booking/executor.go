package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"salon-bot/internal/session"
)

var (
	ErrNoCompany       = errors.New("не удалось получить ID компании")
	ErrServiceNotFound = errors.New("услуга не найдена")
	ErrMasterNotFound  = errors.New("мастер не найден")
	ErrMissingPhone    = errors.New("не указан номер телефона")
)

const defaultSeanceLength = 3600 // seconds, when the service declares none

// Executor resolves a complete intent to platform ids and creates the
// reservation. No rollback: a client created before a failed reservation
// stays on the platform, which is a benign orphan.
type Executor struct {
	catalog *Catalog
	store   *session.Store
}

func NewExecutor(catalog *Catalog, store *session.Store) *Executor {
	return &Executor{catalog: catalog, store: store}
}

// Execute books the intent for the user and appends a local mirror of the
// created record. clientName is only used when a new platform client has
// to be created.
func (e *Executor) Execute(ctx context.Context, userID string, in Intent, phone, clientName string) (session.Record, error) {
	if phone == "" {
		return session.Record{}, ErrMissingPhone
	}

	companyID, err := e.catalog.CompanyID(ctx)
	if err != nil {
		return session.Record{}, err
	}

	services, err := e.catalog.Services(ctx)
	if err != nil {
		return session.Record{}, err
	}
	serviceIdx := -1
	for i, s := range services {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(in.Service)) {
			serviceIdx = i
			break
		}
	}
	if serviceIdx < 0 {
		return session.Record{}, fmt.Errorf("%w: %q", ErrServiceNotFound, in.Service)
	}
	service := services[serviceIdx]

	staff, err := e.catalog.Staff(ctx)
	if err != nil {
		return session.Record{}, err
	}
	staffIdx := -1
	for i, m := range staff {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(in.Master)) {
			staffIdx = i
			break
		}
	}
	if staffIdx < 0 {
		return session.Record{}, fmt.Errorf("%w: %q", ErrMasterNotFound, in.Master)
	}
	master := staff[staffIdx]

	clientID, err := e.resolveClient(ctx, companyID, phone, clientName)
	if err != nil {
		// The reservation call can still succeed for a known phone;
		// client resolution failures are not fatal on their own.
		log.Printf("client resolution failed for %s: %v", userID, err)
	}

	seanceLength := service.Length
	if seanceLength == 0 {
		seanceLength = defaultSeanceLength
	}
	comment := fmt.Sprintf("Запись через бота (пользователь %s)", userID)

	created, err := e.catalog.api.CreateRecord(ctx, companyID, service.ID, master.ID, clientID, in.When, comment, seanceLength)
	if err != nil {
		return session.Record{}, err
	}

	rec := session.Record{
		ID:       created.ID,
		Date:     strings.SplitN(in.When, " ", 2)[0],
		DateTime: in.When,
		Services: []session.ServiceLine{{
			ID:    service.ID,
			Title: service.Title,
			Cost:  service.PriceMin,
		}},
		Staff: session.Staff{
			ID:             master.ID,
			Name:           master.Name,
			Specialization: master.Specialization,
		},
		Company: session.Company{ID: companyID, Title: "Салон"},
		Comment: "Запись через бота",
		Length:  service.Length,
		Online:  true,
	}
	e.store.AddRecord(userID, rec)
	return rec, nil
}

// resolveClient finds an existing platform client by phone or creates one.
func (e *Executor) resolveClient(ctx context.Context, companyID int64, phone, name string) (int64, error) {
	existing, err := e.catalog.api.FindClientsByPhone(ctx, companyID, phone)
	if err != nil {
		log.Printf("client search failed: %v", err)
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	if name == "" {
		name = "Клиент"
	}
	created, err := e.catalog.api.CreateClient(ctx, companyID, name, phone, "Создан через бота")
	if err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	return created.ID, nil
}

// Delete removes the booking on the platform and drops the local mirror.
// The mirror goes away even when the platform call fails: a lost mirror
// beats a stuck one.
func (e *Executor) Delete(ctx context.Context, userID string, recordID int64) error {
	defer e.store.RemoveRecord(userID, recordID)

	companyID, err := e.catalog.CompanyID(ctx)
	if err != nil {
		return err
	}
	if err := e.catalog.api.DeleteRecord(ctx, companyID, recordID); err != nil {
		return fmt.Errorf("delete record %d: %w", recordID, err)
	}
	return nil
}
