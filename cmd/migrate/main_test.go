package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMigrator struct {
	mock.Mock
}

func (m *mockMigrator) Up() error { return m.Called().Error(0) }

func (m *mockMigrator) Down() error { return m.Called().Error(0) }

func (m *mockMigrator) Steps(n int) error { return m.Called(n).Error(0) }

func (m *mockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *mockMigrator) Force(version int) error { return m.Called(version).Error(0) }

func TestRun_NoChangeIsNotAnError(t *testing.T) {
	tests := []struct {
		cmd    string
		method string
	}{
		{cmd: "up", method: "Up"},
		{cmd: "down", method: "Down"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			m := new(mockMigrator)
			m.On(tt.method).Return(migrate.ErrNoChange)

			require.NoError(t, run(m, []string{tt.cmd}, zerolog.Nop()))
			m.AssertExpectations(t)
		})
	}
}

func TestRun_PropagatesFailures(t *testing.T) {
	boom := errors.New("connection refused")
	m := new(mockMigrator)
	m.On("Up").Return(boom)

	err := run(m, []string{"up"}, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
}

func TestRun_Steps(t *testing.T) {
	m := new(mockMigrator)
	m.On("Steps", -1).Return(nil)

	require.NoError(t, run(m, []string{"steps", "-1"}, zerolog.Nop()))
	m.AssertExpectations(t)
}

func TestRun_Version(t *testing.T) {
	m := new(mockMigrator)
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
	require.NoError(t, run(m, []string{"version"}, zerolog.Nop()))

	m.On("Version").Return(uint(1), true, nil).Once()
	require.NoError(t, run(m, []string{"version"}, zerolog.Nop()))
	m.AssertExpectations(t)
}

func TestRun_Force(t *testing.T) {
	m := new(mockMigrator)
	m.On("Force", 1).Return(nil)

	require.NoError(t, run(m, []string{"force", "1"}, zerolog.Nop()))
	m.AssertExpectations(t)
}

func TestRun_BadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"sideways"}},
		{name: "force without version", args: []string{"force"}},
		{name: "steps without count", args: []string{"steps"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockMigrator)
			err := run(m, tt.args, zerolog.Nop())
			assert.ErrorIs(t, err, errUsage)
			m.AssertNotCalled(t, "Force", mock.Anything)
			m.AssertNotCalled(t, "Steps", mock.Anything)
		})
	}

	t.Run("non numeric version", func(t *testing.T) {
		m := new(mockMigrator)
		assert.Error(t, run(m, []string{"force", "abc"}, zerolog.Nop()))
		m.AssertNotCalled(t, "Force", mock.Anything)
	})
}
