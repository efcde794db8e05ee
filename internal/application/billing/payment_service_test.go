package billing

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateBatch(ctx context.Context, payments []*billing.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, studentID *uuid.UUID) ([]*billing.Payment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountByStatus(ctx context.Context, status billing.PaymentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, content io.Reader, filename, contentType, category string) (string, string, error) {
	args := m.Called(ctx, content, filename, contentType, category)
	return args.String(0), args.String(1), args.Error(2)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// studentLookup stubs the single user repository call the payment
// service makes
type studentLookup struct {
	identity.UserRepository
	users map[uuid.UUID]*identity.User
}

func (r *studentLookup) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func newTestStudent(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewStudent("Maria", "Santos", "", "maria.santos@example.com", "str0ng-password")
	require.NoError(t, err)
	return user
}

func newTestPaymentService(t *testing.T, repo *MockPaymentRepository, storage *MockObjectStorage, students ...*identity.User) *PaymentService {
	t.Helper()
	users := make(map[uuid.UUID]*identity.User)
	for _, u := range students {
		users[u.ID] = u
	}
	return NewPaymentService(repo, &studentLookup{users: users}, storage, zap.NewNop())
}

func TestPaymentService_Create_Pending(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	result, err := service.Create(context.Background(), CreatePaymentInput{
		StudentID: student.ID,
		Amount:    decimal.NewFromInt(2500),
		Type:      "monthly rent",
		DueDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, billing.PaymentStatusPending, result.Status)
	assert.Nil(t, result.PaidDate)
	repo.AssertExpectations(t)
}

func TestPaymentService_Create_PaidHonorsSuppliedDate(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	paidDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	result, err := service.Create(context.Background(), CreatePaymentInput{
		StudentID: student.ID,
		Amount:    decimal.NewFromInt(2500),
		Type:      "monthly rent",
		Status:    billing.PaymentStatusPaid,
		DueDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PaidDate:  &paidDate,
	})

	require.NoError(t, err)
	require.NotNil(t, result.PaidDate)
	assert.True(t, result.PaidDate.Equal(paidDate))
}

func TestPaymentService_Create_PendingIgnoresSuppliedPaidDate(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	paidDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	result, err := service.Create(context.Background(), CreatePaymentInput{
		StudentID: student.ID,
		Amount:    decimal.NewFromInt(2500),
		Type:      "monthly rent",
		Status:    billing.PaymentStatusPending,
		DueDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PaidDate:  &paidDate,
	})

	require.NoError(t, err)
	assert.Nil(t, result.PaidDate)
}

func TestPaymentService_Create_UnknownStudent(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := newTestPaymentService(t, repo, nil)

	_, err := service.Create(context.Background(), CreatePaymentInput{
		StudentID: uuid.New(),
		Amount:    decimal.NewFromInt(100),
		Type:      "utilities",
		DueDate:   time.Now(),
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestPaymentService_CreateBulk_AllOrNothing(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	inputs := []CreatePaymentInput{
		{StudentID: student.ID, Amount: decimal.NewFromInt(2500), Type: "monthly rent", DueDate: time.Now()},
		{StudentID: student.ID, Amount: decimal.NewFromInt(-10), Type: "utilities", DueDate: time.Now()},
	}

	_, err := service.CreateBulk(context.Background(), inputs)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	repo.AssertNotCalled(t, "CreateBatch")
}

func TestPaymentService_CreateBulk_Succeeds(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*billing.Payment")).Return(nil)

	inputs := []CreatePaymentInput{
		{StudentID: student.ID, Amount: decimal.NewFromInt(2500), Type: "monthly rent", DueDate: time.Now()},
		{StudentID: student.ID, Amount: decimal.NewFromInt(300), Type: "utilities", DueDate: time.Now()},
	}

	results, err := service.CreateBulk(context.Background(), inputs)

	require.NoError(t, err)
	assert.Len(t, results, 2)
	repo.AssertExpectations(t)
}

func TestPaymentService_Update_VerifyPublishesOnce(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)
	publisher := new(MockEventPublisher)
	service.SetEventPublisher(publisher)

	payment, err := billing.NewPayment(student.ID, decimal.NewFromInt(2500), "monthly rent", billing.PaymentStatusPaid, time.Now(), "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	repo.On("Update", mock.Anything, payment).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	status := billing.PaymentStatusVerified
	result, err := service.Update(context.Background(), UpdatePaymentInput{PaymentID: payment.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentStatusVerified, result.Status)

	// re-saving an already-verified payment fires nothing
	_, err = service.Update(context.Background(), UpdatePaymentInput{PaymentID: payment.ID, Status: &status})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestPaymentService_Update_RevertClearsPaidDate(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	payment, err := billing.NewPayment(student.ID, decimal.NewFromInt(2500), "monthly rent", billing.PaymentStatusPaid, time.Now(), "")
	require.NoError(t, err)
	payment.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	repo.On("Update", mock.Anything, payment).Return(nil)

	status := billing.PaymentStatusPending
	result, err := service.Update(context.Background(), UpdatePaymentInput{PaymentID: payment.ID, Status: &status})

	require.NoError(t, err)
	assert.Nil(t, result.PaidDate)
}

func TestPaymentService_UploadReceipt(t *testing.T) {
	repo := new(MockPaymentRepository)
	storage := new(MockObjectStorage)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, storage, student)

	payment, err := billing.NewPayment(student.ID, decimal.NewFromInt(2500), "monthly rent", billing.PaymentStatusPaid, time.Now(), "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	repo.On("Update", mock.Anything, payment).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything, "receipt.pdf", "application/pdf", "receipts").
		Return("receipts/abc123", "https://files.example.com/receipts/abc123", nil)

	result, err := service.UploadReceipt(context.Background(), payment.ID, strings.NewReader("%PDF-1.4"), "receipt.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/receipts/abc123", result.ReceiptURL)
	repo.AssertExpectations(t)
}

func TestPaymentService_UploadReceipt_StorageFailure(t *testing.T) {
	repo := new(MockPaymentRepository)
	storage := new(MockObjectStorage)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, storage, student)

	payment, err := billing.NewPayment(student.ID, decimal.NewFromInt(2500), "monthly rent", billing.PaymentStatusPaid, time.Now(), "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", "", assert.AnError)

	_, err = service.UploadReceipt(context.Background(), payment.ID, strings.NewReader("data"), "receipt.pdf", "application/pdf")

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrUploadFailed.Code, domainErr.Code)
	repo.AssertNotCalled(t, "Update")
}

func TestPaymentService_List_FilterByStudent(t *testing.T) {
	repo := new(MockPaymentRepository)
	student := newTestStudent(t)
	service := newTestPaymentService(t, repo, nil, student)

	payment, err := billing.NewPayment(student.ID, decimal.NewFromInt(2500), "monthly rent", billing.PaymentStatusPending, time.Now(), "")
	require.NoError(t, err)

	repo.On("FindAll", mock.Anything, &student.ID).Return([]*billing.Payment{payment}, nil)

	results, err := service.List(context.Background(), &student.ID)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, student.ID, results[0].StudentID)
}
