package services

import (
	"testing"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityRepo struct {
	slots  map[int64]*models.AvailabilitySlot
	nextID int64
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{slots: make(map[int64]*models.AvailabilitySlot), nextID: 1}
}

func (r *fakeAvailabilityRepo) CreateSlot(_ repositories.SQLExecutor, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	stored := *slot
	stored.ID = r.nextID
	r.slots[stored.ID] = &stored
	r.nextID++
	result := stored
	return &result, nil
}

func (r *fakeAvailabilityRepo) GetSlotByID(id int64) (*models.AvailabilitySlot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *slot
	return &result, nil
}

func (r *fakeAvailabilityRepo) GetSlotsByDesigner(designerID int64, activeOnly bool) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, slot := range r.slots {
		if slot.DesignerID != designerID {
			continue
		}
		if activeOnly && !slot.IsActive {
			continue
		}
		out = append(out, *slot)
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) UpdateSlot(_ repositories.SQLExecutor, slot *models.AvailabilitySlot) error {
	if _, ok := r.slots[slot.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *slot
	r.slots[slot.ID] = &stored
	return nil
}

func (r *fakeAvailabilityRepo) DeleteSlot(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.slots[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.slots, id)
	return nil
}

func TestCreateSlot(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), nil)

	slot, err := svc.CreateSlot(2, CreateSlotRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:30"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), slot.DesignerID)
	assert.True(t, slot.IsActive)
}

func TestCreateSlotValidation(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), nil)

	cases := []CreateSlotRequest{
		{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
	}
	for _, req := range cases {
		_, err := svc.CreateSlot(2, req)
		assert.ErrorIs(t, err, ErrSlotValidation, "request %+v", req)
	}
}

func TestSlotOwnership(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, nil)

	slot, err := svc.CreateSlot(2, CreateSlotRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)

	_, err = svc.UpdateSlot(slot.ID, 3, UpdateSlotRequest{})
	assert.ErrorIs(t, err, ErrSlotForbidden)

	err = svc.DeleteSlot(slot.ID, 3)
	assert.ErrorIs(t, err, ErrSlotForbidden)

	err = svc.DeleteSlot(slot.ID, 2)
	require.NoError(t, err)

	err = svc.DeleteSlot(slot.ID, 2)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUpdateSlotDeactivates(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, nil)

	slot, err := svc.CreateSlot(2, CreateSlotRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateSlot(slot.ID, 2, UpdateSlotRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// Public listings only show active slots.
	visible, err := svc.GetSlotsForDesigner(2, true)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.GetSlotsForDesigner(2, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
