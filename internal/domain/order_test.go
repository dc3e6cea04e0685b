package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func deliveredOrder(deliveredAt time.Time) *Order {
	return &Order{
		Status:      OrderStatusDelivered,
		DeliveredAt: &deliveredAt,
	}
}

func TestOrderCanReturn(t *testing.T) {
	delivered := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := deliveredOrder(delivered)

	assert.True(t, o.CanReturn(delivered.Add(24*time.Hour)))
	assert.True(t, o.CanReturn(delivered.Add(ReturnWindow)), "exactly at the boundary is still open")
	assert.False(t, o.CanReturn(delivered.Add(ReturnWindow+time.Second)), "one second past closes the window")
}

func TestOrderCanReplace(t *testing.T) {
	delivered := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := deliveredOrder(delivered)

	// ten days out: return is closed, replace is still open
	tenDays := delivered.Add(10 * 24 * time.Hour)
	assert.False(t, o.CanReturn(tenDays))
	assert.True(t, o.CanReplace(tenDays))

	assert.False(t, o.CanReplace(delivered.Add(ReplaceWindow+time.Second)))
}

func TestOrderWindowsRequireDelivery(t *testing.T) {
	now := time.Now()

	o := &Order{Status: OrderStatusProcessing}
	assert.False(t, o.CanReturn(now))
	assert.False(t, o.CanReplace(now))

	// delivered status but no stamp
	o = &Order{Status: OrderStatusDelivered}
	assert.False(t, o.CanReturn(now))
	assert.Nil(t, o.ReturnWindowClosesAt())
}

func TestOrderAge(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	o := &Order{CreatedAt: created}

	assert.Equal(t, 0, o.OrderAge(created.Add(12*time.Hour)))
	assert.Equal(t, 3, o.OrderAge(created.Add(3*24*time.Hour+time.Hour)))
}

func TestNewOrderView(t *testing.T) {
	delivered := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := deliveredOrder(delivered)
	o.CreatedAt = delivered.Add(-48 * time.Hour)

	view := NewOrderView(o, delivered.Add(24*time.Hour))

	assert.Equal(t, 3, view.OrderAge)
	assert.True(t, view.CanReturn)
	assert.True(t, view.CanReplace)
	if assert.NotNil(t, view.ReturnWindowClosesAt) {
		assert.Equal(t, delivered.Add(ReturnWindow), *view.ReturnWindowClosesAt)
	}
	if assert.NotNil(t, view.ReplaceWindowClosesAt) {
		assert.Equal(t, delivered.Add(ReplaceWindow), *view.ReplaceWindowClosesAt)
	}
}
