package loader_test

import (
	"errors"
	"testing"

	"wallet-state/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockFeature struct {
	mock.Mock
}

func (m *mockFeature) Name() string {
	return m.Called().String(0)
}

func (m *mockFeature) IsEnabled() bool {
	return m.Called().Bool(0)
}

func (m *mockFeature) Load(app fiber.Router) error {
	return m.Called(app).Error(0)
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	enabled := new(mockFeature)
	enabled.On("Name").Return("state")
	enabled.On("IsEnabled").Return(true)
	enabled.On("Load", mock.Anything).Return(nil)

	disabled := new(mockFeature)
	disabled.On("Name").Return("relay")
	disabled.On("IsEnabled").Return(false)

	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(enabled)
	mgr.Register(disabled)

	assert.NoError(t, mgr.LoadAll(app))
	assert.Len(t, mgr.Features(), 2)
	enabled.AssertCalled(t, "Load", mock.Anything)
	disabled.AssertNotCalled(t, "Load", mock.Anything)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := new(mockFeature)
	failing.On("Name").Return("state")
	failing.On("IsEnabled").Return(true)
	failing.On("Load", mock.Anything).Return(errors.New("boom"))

	next := new(mockFeature)

	mgr := loader.NewManager(nil)
	mgr.Register(failing)
	mgr.Register(next)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "load feature state")
	next.AssertNotCalled(t, "IsEnabled")
}
