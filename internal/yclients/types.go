package yclients

import (
	"encoding/json"
	"fmt"
)

// Every platform response is a {success, data, meta} envelope; any non-2xx
// status or success=false becomes an *Error carrying both.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type Error struct {
	Status int
	Meta   json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("yclients api error (HTTP %d): %s", e.Status, string(e.Meta))
}

type Company struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Service struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	PriceMin int    `json:"price_min"`
	PriceMax int    `json:"price_max"`
	// Length is the declared seance duration in seconds.
	Length int `json:"length"`
}

type Staff struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Record struct {
	ID int64 `json:"id"`
}

type recordService struct {
	ID int64 `json:"id"`
}

type recordClient struct {
	ID int64 `json:"id"`
}

type createClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

type createRecordRequest struct {
	StaffID      int64           `json:"staff_id"`
	Services     []recordService `json:"services"`
	Datetime     string          `json:"datetime"`
	Comment      string          `json:"comment"`
	SeanceLength int             `json:"seance_length,omitempty"`
	Client       *recordClient   `json:"client,omitempty"`
}
