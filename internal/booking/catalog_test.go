package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-bot/internal/yclients"
)

func TestCatalogLoadsFirstCompany(t *testing.T) {
	p := newTestPlatform(t)
	c := NewCatalog(yclients.New(p.srv.URL, "p", "u"))

	id, err := c.CompanyID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	services, err := c.Services(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 2)

	staff, err := c.Staff(context.Background())
	require.NoError(t, err)
	assert.Len(t, staff, 2)
}

func TestCatalogDescribe(t *testing.T) {
	p := newTestPlatform(t)
	c := NewCatalog(yclients.New(p.srv.URL, "p", "u"))

	got := c.Describe(context.Background())
	assert.Contains(t, got, "Маникюр")
	assert.Contains(t, got, "от 1500 руб.")
	assert.Contains(t, got, "60 мин")
	assert.Contains(t, got, "Арина")
}

func TestCatalogDescribeUnavailable(t *testing.T) {
	c := NewCatalog(yclients.New("http://127.0.0.1:1", "p", "u"))
	assert.Contains(t, c.Describe(context.Background()), "временно недоступны")
}
