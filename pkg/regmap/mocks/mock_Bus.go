// Mocks in mockery's expecter layout. Regenerate with mockery and .mockery.yaml.

package mocks

import mock "github.com/stretchr/testify/mock"

// MockBus is an autogenerated mock type for the Bus type
type MockBus struct {
	mock.Mock
}

type MockBus_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBus) EXPECT() *MockBus_Expecter {
	return &MockBus_Expecter{mock: &_m.Mock}
}

// ReadRegister provides a mock function with given fields: addr
func (_m *MockBus) ReadRegister(addr uint8) (uint8, error) {
	ret := _m.Called(addr)

	if len(ret) == 0 {
		panic("no return value specified for ReadRegister")
	}

	var r0 uint8
	var r1 error
	if rf, ok := ret.Get(0).(func(uint8) (uint8, error)); ok {
		return rf(addr)
	}
	if rf, ok := ret.Get(0).(func(uint8) uint8); ok {
		r0 = rf(addr)
	} else {
		r0 = ret.Get(0).(uint8)
	}

	if rf, ok := ret.Get(1).(func(uint8) error); ok {
		r1 = rf(addr)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockBus_ReadRegister_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ReadRegister'
type MockBus_ReadRegister_Call struct {
	*mock.Call
}

// ReadRegister is a helper method to define mock.On call
//   - addr uint8
func (_e *MockBus_Expecter) ReadRegister(addr interface{}) *MockBus_ReadRegister_Call {
	return &MockBus_ReadRegister_Call{Call: _e.mock.On("ReadRegister", addr)}
}

func (_c *MockBus_ReadRegister_Call) Run(run func(addr uint8)) *MockBus_ReadRegister_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint8))
	})
	return _c
}

func (_c *MockBus_ReadRegister_Call) Return(_a0 uint8, _a1 error) *MockBus_ReadRegister_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockBus_ReadRegister_Call) RunAndReturn(run func(uint8) (uint8, error)) *MockBus_ReadRegister_Call {
	_c.Call.Return(run)
	return _c
}

// WriteRegister provides a mock function with given fields: addr, value
func (_m *MockBus) WriteRegister(addr uint8, value uint8) error {
	ret := _m.Called(addr, value)

	if len(ret) == 0 {
		panic("no return value specified for WriteRegister")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(uint8, uint8) error); ok {
		r0 = rf(addr, value)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockBus_WriteRegister_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'WriteRegister'
type MockBus_WriteRegister_Call struct {
	*mock.Call
}

// WriteRegister is a helper method to define mock.On call
//   - addr uint8
//   - value uint8
func (_e *MockBus_Expecter) WriteRegister(addr interface{}, value interface{}) *MockBus_WriteRegister_Call {
	return &MockBus_WriteRegister_Call{Call: _e.mock.On("WriteRegister", addr, value)}
}

func (_c *MockBus_WriteRegister_Call) Run(run func(addr uint8, value uint8)) *MockBus_WriteRegister_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint8), args[1].(uint8))
	})
	return _c
}

func (_c *MockBus_WriteRegister_Call) Return(_a0 error) *MockBus_WriteRegister_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockBus_WriteRegister_Call) RunAndReturn(run func(uint8, uint8) error) *MockBus_WriteRegister_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockBus creates a new instance of MockBus. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockBus(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBus {
	mock := &MockBus{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
