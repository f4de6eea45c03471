package gateway

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of Gateway.
//
// Example usage:
//
//	gw := new(MockGateway)
//	gw.On("CheckUniqueSchoolID", mock.Anything, 7, "S100").
//	    Return(Fail("ID already in use"), nil)
//
//	res, _ := gw.CheckUniqueSchoolID(ctx, 7, "S100")
//	gw.AssertExpectations(t)
type MockGateway struct {
	mock.Mock
}

var _ Gateway = (*MockGateway)(nil)

// FetchPage returns a mocked page.
func (m *MockGateway) FetchPage(ctx context.Context, q domain.Query) (domain.Page[domain.Student], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.Page[domain.Student]), args.Error(1)
}

// FetchDetails returns a mocked detail page.
func (m *MockGateway) FetchDetails(ctx context.Context, studentID int, sort domain.SortSpec, window domain.PageWindow) (domain.Page[domain.StudentDetail], error) {
	args := m.Called(ctx, studentID, sort, window)
	return args.Get(0).(domain.Page[domain.StudentDetail]), args.Error(1)
}

func (m *MockGateway) Create(ctx context.Context, s domain.Student) (Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(Result), args.Error(1)
}

func (m *MockGateway) Update(ctx context.Context, s domain.Student) (Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(Result), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, id int) (Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Result), args.Error(1)
}

func (m *MockGateway) DeleteMany(ctx context.Context, ids []int) (Result, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(Result), args.Error(1)
}

func (m *MockGateway) CheckUniqueSchoolID(ctx context.Context, excludingID int, candidate string) (Result, error) {
	args := m.Called(ctx, excludingID, candidate)
	return args.Get(0).(Result), args.Error(1)
}
