package services

import (
	"errors"
	"testing"
	"time"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory fakes ---

type fakeConsultationRepo struct {
	consultations map[int64]*models.Consultation
	nextID        int64
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{consultations: make(map[int64]*models.Consultation), nextID: 1}
}

func (r *fakeConsultationRepo) CreateConsultation(_ repositories.SQLExecutor, consultation *models.Consultation) (*models.Consultation, error) {
	stored := *consultation
	stored.ID = r.nextID
	stored.Version = 1
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.consultations[stored.ID] = &stored
	r.nextID++
	result := stored
	return &result, nil
}

func (r *fakeConsultationRepo) GetConsultationByID(id int64) (*models.Consultation, error) {
	stored, ok := r.consultations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *stored
	return &result, nil
}

func (r *fakeConsultationRepo) GetConsultationsByClient(clientID int64) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, c := range r.consultations {
		if c.ClientID == clientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) GetConsultationsByDesigner(designerID int64) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, c := range r.consultations {
		if c.DesignerID == designerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) GetAllConsultations() ([]models.Consultation, error) {
	var out []models.Consultation
	for _, c := range r.consultations {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeConsultationRepo) UpdateStatus(_ repositories.SQLExecutor, id int64, status models.ConsultationStatus, notes *string, expectedVersion *int64) (*models.Consultation, error) {
	stored, ok := r.consultations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if expectedVersion != nil && *expectedVersion != stored.Version {
		return nil, repositories.ErrVersionConflict
	}
	stored.Status = status
	if notes != nil {
		stored.Notes = *notes
	}
	stored.Version++
	stored.UpdatedAt = time.Now()
	result := *stored
	return &result, nil
}

func (r *fakeConsultationRepo) CountByStatus() (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range r.consultations {
		counts[string(c.Status)]++
	}
	return counts, nil
}

type fakeUserRepo struct {
	designers map[int64]*models.User
}

func newFakeUserRepo(designerIDs ...int64) *fakeUserRepo {
	repo := &fakeUserRepo{designers: make(map[int64]*models.User)}
	for _, id := range designerIDs {
		repo.designers[id] = &models.User{ID: id, Username: "designer", Role: models.RoleDesigner, IsActive: true}
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, _ *models.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *fakeUserRepo) FindUserByID(id int64) (*models.User, error) {
	if user, ok := r.designers[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindUserByUsername(_ string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindDesignerByID(id int64) (*models.User, error) {
	if user, ok := r.designers[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetDesignerListings() ([]models.DesignerListing, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ repositories.SQLExecutor, _ *models.User) error {
	return nil
}

func (r *fakeUserRepo) CountByRole() (map[string]int, error) {
	return map[string]int{}, nil
}

type dispatched struct {
	recipientID int64
	title       string
	category    models.NotificationCategory
}

type fakeNotifier struct {
	sent    []dispatched
	failAll bool
}

func (n *fakeNotifier) Dispatch(recipientID int64, title, _ string, category models.NotificationCategory) error {
	if n.failAll {
		return errors.New("notification store unavailable")
	}
	n.sent = append(n.sent, dispatched{recipientID: recipientID, title: title, category: category})
	return nil
}

func (n *fakeNotifier) GetNotificationsForUser(_ int64) ([]models.Notification, int, error) {
	return nil, 0, nil
}

func (n *fakeNotifier) MarkNotificationRead(_, _ int64) error { return nil }

func (n *fakeNotifier) MarkAllNotificationsRead(_ int64) error { return nil }

// --- Helpers ---

func newTestService(strict bool, designerIDs ...int64) (ConsultationService, *fakeConsultationRepo, *fakeNotifier) {
	consultationRepo := newFakeConsultationRepo()
	notifier := &fakeNotifier{}
	svc := NewConsultationService(consultationRepo, newFakeUserRepo(designerIDs...), notifier, nil, strict)
	return svc, consultationRepo, notifier
}

func mustBook(t *testing.T, svc ConsultationService, clientID, designerID int64) *models.Consultation {
	t.Helper()
	consultation, err := svc.BookConsultation(clientID, BookConsultationRequest{
		DesignerID:        designerID,
		ScheduledDateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	return consultation
}

func adminPrincipal() models.Principal {
	return models.Principal{UserID: 99, Username: "admin", Role: models.RoleAdmin}
}

func designerPrincipal(id int64) models.Principal {
	return models.Principal{UserID: id, Username: "designer", Role: models.RoleDesigner}
}

func clientPrincipal(id int64) models.Principal {
	return models.Principal{UserID: id, Username: "client", Role: models.RoleClient}
}

// --- Booking ---

func TestBookConsultation(t *testing.T) {
	svc, _, notifier := newTestService(false, 2)

	details := "Living room refresh"
	consultationType := string(models.ConsultationTypeInPerson)
	consultation, err := svc.BookConsultation(1, BookConsultationRequest{
		DesignerID:        2,
		ScheduledDateTime: "2026-10-01T14:00:00Z",
		ConsultationType:  &consultationType,
		ProjectDetails:    &details,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), consultation.ClientID)
	assert.Equal(t, int64(2), consultation.DesignerID)
	assert.Equal(t, models.ConsultationStatusPending, consultation.Status)
	assert.Equal(t, models.ConsultationTypeInPerson, consultation.Type)
	assert.Equal(t, details, consultation.Notes)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, int64(1), notifier.sent[0].recipientID)
	assert.Equal(t, int64(2), notifier.sent[1].recipientID)
	for _, d := range notifier.sent {
		assert.Equal(t, models.NotificationCategoryBooking, d.category)
	}
}

func TestBookConsultationDefaultsToOnline(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)
	assert.Equal(t, models.ConsultationTypeOnline, consultation.Type)
}

func TestBookConsultationUnknownDesigner(t *testing.T) {
	svc, repo, notifier := newTestService(false, 2)

	_, err := svc.BookConsultation(1, BookConsultationRequest{
		DesignerID:        77,
		ScheduledDateTime: "2026-10-01T14:00:00Z",
	})
	assert.ErrorIs(t, err, ErrDesignerForBookingMissing)
	assert.Empty(t, repo.consultations)
	assert.Empty(t, notifier.sent)
}

func TestBookConsultationValidation(t *testing.T) {
	svc, _, _ := newTestService(false, 2)

	_, err := svc.BookConsultation(1, BookConsultationRequest{ScheduledDateTime: "2026-10-01T14:00:00Z"})
	assert.ErrorIs(t, err, ErrConsultationValidation)

	_, err = svc.BookConsultation(1, BookConsultationRequest{DesignerID: 2})
	assert.ErrorIs(t, err, ErrConsultationValidation)

	_, err = svc.BookConsultation(1, BookConsultationRequest{DesignerID: 2, ScheduledDateTime: "tomorrow at noon"})
	assert.ErrorIs(t, err, ErrConsultationValidation)

	badType := "telepathic"
	_, err = svc.BookConsultation(1, BookConsultationRequest{
		DesignerID:        2,
		ScheduledDateTime: "2026-10-01T14:00:00Z",
		ConsultationType:  &badType,
	})
	assert.ErrorIs(t, err, ErrConsultationValidation)
}

func TestBookConsultationSurvivesNotifierFailure(t *testing.T) {
	svc, _, notifier := newTestService(false, 2)
	notifier.failAll = true

	consultation := mustBook(t, svc, 1, 2)
	assert.Equal(t, models.ConsultationStatusPending, consultation.Status)
}

// --- Visibility ---

func TestGetConsultationVisibility(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	for _, caller := range []models.Principal{clientPrincipal(1), designerPrincipal(2), adminPrincipal()} {
		got, err := svc.GetConsultationByID(consultation.ID, caller)
		require.NoError(t, err)
		assert.Equal(t, consultation.ID, got.ID)
	}

	_, err := svc.GetConsultationByID(consultation.ID, clientPrincipal(42))
	assert.ErrorIs(t, err, ErrConsultationForbidden)

	_, err = svc.GetConsultationByID(9999, adminPrincipal())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestListScoping(t *testing.T) {
	svc, _, _ := newTestService(false, 2, 3)
	mustBook(t, svc, 1, 2)
	mustBook(t, svc, 1, 3)
	mustBook(t, svc, 4, 2)

	forClient, err := svc.ListForClient(1)
	require.NoError(t, err)
	assert.Len(t, forClient, 2)

	forDesigner, err := svc.ListForDesigner(2)
	require.NoError(t, err)
	assert.Len(t, forDesigner, 2)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// --- Status updates ---

func TestUpdateStatusByDesigner(t *testing.T) {
	svc, _, notifier := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)
	notifier.sent = nil

	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusConfirmed),
	}, designerPrincipal(2))
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusConfirmed, updated.Status)
	assert.Equal(t, consultation.Version+1, updated.Version)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(1), notifier.sent[0].recipientID)
}

func TestUpdateStatusClientForbidden(t *testing.T) {
	svc, repo, notifier := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)
	notifier.sent = nil

	// Not even the booking client may drive the status machine.
	_, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCancelled),
	}, clientPrincipal(1))
	assert.ErrorIs(t, err, ErrConsultationForbidden)

	stored := repo.consultations[consultation.ID]
	assert.Equal(t, models.ConsultationStatusPending, stored.Status)
	assert.Empty(t, notifier.sent)
}

func TestUpdateStatusWrongDesignerForbidden(t *testing.T) {
	svc, _, _ := newTestService(false, 2, 3)
	consultation := mustBook(t, svc, 1, 2)

	_, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusConfirmed),
	}, designerPrincipal(3))
	assert.ErrorIs(t, err, ErrConsultationForbidden)
}

func TestUpdateStatusAdminBypassesOwnership(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCancelled),
	}, adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCancelled, updated.Status)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	svc, repo, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	_, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: "archived",
	}, designerPrincipal(2))
	assert.ErrorIs(t, err, ErrConsultationValidation)
	assert.Equal(t, models.ConsultationStatusPending, repo.consultations[consultation.ID].Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _ := newTestService(false, 2)

	_, err := svc.UpdateStatus(404, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusConfirmed),
	}, adminPrincipal())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestUpdateStatusPermissiveAllowsAnyJump(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCompleted),
	}, designerPrincipal(2))
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCompleted, updated.Status)
}

func TestUpdateStatusStrictMode(t *testing.T) {
	svc, repo, _ := newTestService(true, 2)
	consultation := mustBook(t, svc, 1, 2)

	// pending cannot jump straight to completed.
	_, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCompleted),
	}, designerPrincipal(2))
	assert.ErrorIs(t, err, ErrIllegalStatusTransition)
	assert.Equal(t, models.ConsultationStatusPending, repo.consultations[consultation.ID].Status)

	// The linear path works step by step.
	for _, next := range []models.ConsultationStatus{
		models.ConsultationStatusConfirmed,
		models.ConsultationStatusInProgress,
		models.ConsultationStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
			Status: string(next),
		}, designerPrincipal(2))
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// completed is terminal.
	_, err = svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCancelled),
	}, designerPrincipal(2))
	assert.ErrorIs(t, err, ErrIllegalStatusTransition)
}

func TestUpdateStatusStrictModeCancel(t *testing.T) {
	svc, _, _ := newTestService(true, 2)
	consultation := mustBook(t, svc, 1, 2)

	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusCancelled),
	}, designerPrincipal(2))
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCancelled, updated.Status)
}

func TestUpdateStatusVersionConflict(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	// First writer wins.
	first, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status:  string(models.ConsultationStatusConfirmed),
		Version: &consultation.Version,
	}, designerPrincipal(2))
	require.NoError(t, err)

	// Second writer still holds the original version and must be rejected.
	_, err = svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status:  string(models.ConsultationStatusCancelled),
		Version: &consultation.Version,
	}, adminPrincipal())
	assert.ErrorIs(t, err, ErrStaleConsultationVersion)

	// Retrying with the fresh version succeeds.
	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status:  string(models.ConsultationStatusCancelled),
		Version: &first.Version,
	}, adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCancelled, updated.Status)
}

func TestUpdateStatusNotesAppliedWithTransition(t *testing.T) {
	svc, _, _ := newTestService(false, 2)
	consultation := mustBook(t, svc, 1, 2)

	notes := "Confirmed after call with client"
	updated, err := svc.UpdateStatus(consultation.ID, UpdateConsultationStatusRequest{
		Status: string(models.ConsultationStatusConfirmed),
		Notes:  &notes,
	}, designerPrincipal(2))
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
}
