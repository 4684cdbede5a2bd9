package mocks

import "github.com/stretchr/testify/mock"

// PathChecker mocks pathutil.PathChecker.
type PathChecker struct {
	mock.Mock
}

func (_m *PathChecker) IsPathExists(pth string) (bool, error) {
	args := _m.Called(pth)
	return args.Bool(0), args.Error(1)
}

func (_m *PathChecker) IsDirExists(pth string) (bool, error) {
	args := _m.Called(pth)
	return args.Bool(0), args.Error(1)
}

// PathModifier mocks pathutil.PathModifier.
type PathModifier struct {
	mock.Mock
}

func (_m *PathModifier) AbsPath(pth string) (string, error) {
	args := _m.Called(pth)
	return args.String(0), args.Error(1)
}
