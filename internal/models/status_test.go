package models_test

import (
	"testing"

	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},

		// completed is only reachable through confirmed
		{models.StatusPending, models.StatusCompleted, false},

		// terminal states have no outgoing edges
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusConfirmed, false},

		// no self loops, no going back
		{models.StatusPending, models.StatusPending, false},
		{models.StatusConfirmed, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, models.CanTransition(tt.from, tt.to))
		})
	}
}

func TestOrder_Transition(t *testing.T) {
	o := &models.Order{Status: models.StatusPending}

	err := o.Transition(models.StatusCompleted)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.StatusPending, o.Status, "failed transition must not change status")

	err = o.Transition(models.StatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, o.Status)

	err = o.Transition(models.StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, o.Status)

	err = o.Transition(models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, models.NextStatuses(models.StatusPending))
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusCompleted, models.StatusCancelled}, models.NextStatuses(models.StatusConfirmed))
	assert.Empty(t, models.NextStatuses(models.StatusCancelled))
	assert.Empty(t, models.NextStatuses(models.StatusCompleted))
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, models.StatusPending.Valid())
	assert.False(t, models.OrderStatus("new").Valid())
	assert.False(t, models.OrderStatus("").Valid())
}
