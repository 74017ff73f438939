// Package yclients is a thin client for the YClients partner REST API:
// company/service/staff listings, client search and creation, and record
// CRUD. It is plumbing with a narrow contract; all booking logic lives in
// internal/booking.
package yclients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const acceptHeader = "application/vnd.yclients.v2+json"

type API struct {
	baseURL      string
	partnerToken string
	userToken    string
	httpClient   *http.Client
}

func New(baseURL, partnerToken, userToken string) *API {
	return &API{
		baseURL:      baseURL,
		partnerToken: partnerToken,
		userToken:    userToken,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// do issues one request and unwraps the success/data envelope. 204 means
// success with no body.
func (a *API) do(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	// The platform expects both tokens in one combined header.
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s, User %s", a.partnerToken, a.userToken))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &Error{Status: resp.StatusCode, Meta: env.Meta}
	}
	return env.Data, nil
}

// MyCompanies lists the companies available to the authorized user.
func (a *API) MyCompanies(ctx context.Context) ([]Company, error) {
	q := url.Values{"my": {"1"}}
	data, err := a.do(ctx, http.MethodGet, "/companies/", q, nil)
	if err != nil {
		return nil, err
	}
	var out []Company
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return out, nil
}

func (a *API) Services(ctx context.Context, companyID int64) ([]Service, error) {
	data, err := a.do(ctx, http.MethodGet, "/services/"+strconv.FormatInt(companyID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	var out []Service
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return out, nil
}

func (a *API) Staff(ctx context.Context, companyID int64) ([]Staff, error) {
	data, err := a.do(ctx, http.MethodGet, "/staff/"+strconv.FormatInt(companyID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	var out []Staff
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode staff: %w", err)
	}
	return out, nil
}

// FindClientsByPhone searches company clients by phone, formatted the way
// the platform stores it.
func (a *API) FindClientsByPhone(ctx context.Context, companyID int64, phone string) ([]Client, error) {
	q := url.Values{"search": {phone}}
	data, err := a.do(ctx, http.MethodGet, "/clients/"+strconv.FormatInt(companyID, 10), q, nil)
	if err != nil {
		return nil, err
	}
	var out []Client
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return out, nil
}

func (a *API) CreateClient(ctx context.Context, companyID int64, name, phone, comment string) (Client, error) {
	payload := createClientRequest{Name: name, Phone: phone, Comment: comment}
	data, err := a.do(ctx, http.MethodPost, "/clients/"+strconv.FormatInt(companyID, 10), nil, payload)
	if err != nil {
		return Client{}, err
	}
	var out Client
	if err := json.Unmarshal(data, &out); err != nil {
		return Client{}, fmt.Errorf("decode created client: %w", err)
	}
	return out, nil
}

// CreateRecord books a seance. dateTime is branch-local "YYYY-MM-DD HH:MM";
// seanceLength is in seconds.
func (a *API) CreateRecord(ctx context.Context, companyID, serviceID, staffID, clientID int64, dateTime, comment string, seanceLength int) (Record, error) {
	payload := createRecordRequest{
		StaffID:      staffID,
		Services:     []recordService{{ID: serviceID}},
		Datetime:     dateTime,
		Comment:      comment,
		SeanceLength: seanceLength,
	}
	if clientID != 0 {
		payload.Client = &recordClient{ID: clientID}
	}
	data, err := a.do(ctx, http.MethodPost, "/records/"+strconv.FormatInt(companyID, 10), nil, payload)
	if err != nil {
		return Record{}, err
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return Record{}, fmt.Errorf("decode created record: %w", err)
	}
	return out, nil
}

func (a *API) DeleteRecord(ctx context.Context, companyID, recordID int64) error {
	path := fmt.Sprintf("/record/%d/%d", companyID, recordID)
	_, err := a.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
