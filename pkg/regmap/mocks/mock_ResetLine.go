// Mocks in mockery's expecter layout. Regenerate with mockery and .mockery.yaml.

package mocks

import mock "github.com/stretchr/testify/mock"

// MockResetLine is an autogenerated mock type for the ResetLine type
type MockResetLine struct {
	mock.Mock
}

type MockResetLine_Expecter struct {
	mock *mock.Mock
}

func (_m *MockResetLine) EXPECT() *MockResetLine_Expecter {
	return &MockResetLine_Expecter{mock: &_m.Mock}
}

// SetLevel provides a mock function with given fields: high
func (_m *MockResetLine) SetLevel(high bool) {
	_m.Called(high)
}

// MockResetLine_SetLevel_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetLevel'
type MockResetLine_SetLevel_Call struct {
	*mock.Call
}

// SetLevel is a helper method to define mock.On call
//   - high bool
func (_e *MockResetLine_Expecter) SetLevel(high interface{}) *MockResetLine_SetLevel_Call {
	return &MockResetLine_SetLevel_Call{Call: _e.mock.On("SetLevel", high)}
}

func (_c *MockResetLine_SetLevel_Call) Run(run func(high bool)) *MockResetLine_SetLevel_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(bool))
	})
	return _c
}

func (_c *MockResetLine_SetLevel_Call) Return() *MockResetLine_SetLevel_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockResetLine_SetLevel_Call) RunAndReturn(run func(bool)) *MockResetLine_SetLevel_Call {
	_c.Run(run)
	return _c
}

// NewMockResetLine creates a new instance of MockResetLine. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockResetLine(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResetLine {
	mock := &MockResetLine{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
