package deps

import (
	"testing"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/stretchr/testify/assert"
)

type greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

func TestContainerRegistry(t *testing.T) {
	c := NewContainer(nil, nil, nil, logger.NewNullLogger(), nil)
	assert.NotNil(t, c.Now)

	c.RegisterService("greeter", english{})
	c.RegisterRepository("greeter_repo", english{})

	assert.Equal(t, "hello", Service[greeter](c, "greeter").Greet())
	assert.Equal(t, "hello", Repository[greeter](c, "greeter_repo").Greet())
	assert.Nil(t, c.GetService("missing"))
}

func TestContainerPanicsOnMiswiring(t *testing.T) {
	c := NewContainer(nil, nil, nil, logger.NewNullLogger(), nil)
	c.RegisterService("number", 42)

	assert.Panics(t, func() { Service[greeter](c, "number") })
	assert.Panics(t, func() { Repository[greeter](c, "missing") })
}
