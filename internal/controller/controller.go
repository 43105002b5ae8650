// Package controller turns filter actions into navigation commands.
//
// The controller holds no filter state. Every read decodes the current
// address from its Location, every action is reduced against that address
// and handed to the Navigator without waiting for the host to apply it.
package controller

import (
	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"
	"taskDashboard/internal/navigation"

	"go.uber.org/zap"
)

const DefaultBasePath = "/dashboard"

// Location supplies the current address.
type Location interface {
	Current() query.Address
}

// Navigator replaces the current address. Implementations must not block
// the caller on the host applying it.
type Navigator interface {
	Navigate(addr query.Address, mode navigation.Mode)
}

// LocationFunc adapts a plain function to Location.
type LocationFunc func() query.Address

func (f LocationFunc) Current() query.Address {
	return f()
}

type Controller struct {
	location  Location
	navigator Navigator
	basePath  string
	mode      navigation.Mode
	logger    *zap.Logger
	observers []func(Action, query.Address)
}

type Option func(*Controller)

func WithBasePath(path string) Option {
	return func(c *Controller) {
		if path != "" {
			c.basePath = path
		}
	}
}

func WithMode(mode navigation.Mode) Option {
	return func(c *Controller) {
		c.mode = mode
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to run after each navigation command is issued.
func WithObserver(fn func(action Action, next query.Address)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

func New(location Location, navigator Navigator, options ...Option) *Controller {
	c := &Controller{
		location:  location,
		navigator: navigator,
		basePath:  DefaultBasePath,
		mode:      navigation.ModeReplace,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Filters decodes the current address.
func (c *Controller) Filters() filter.Model {
	return filter.Decode(c.location.Current().Query)
}

func (c *Controller) Address() query.Address {
	return c.location.Current()
}

// Dispatch reduces action against the current address and navigates there.
func (c *Controller) Dispatch(action Action) {
	current := c.location.Current()
	next := Reduce(current, c.basePath, action)

	c.logger.Debug("Controller: Навигация фильтра",
		zap.String("action", action.Name()),
		zap.String("from", current.String()),
		zap.String("to", next.String()),
		zap.Stringer("mode", c.mode))

	c.navigator.Navigate(next, c.mode)

	for _, fn := range c.observers {
		fn(action, next)
	}
}

func (c *Controller) ToggleStatus(status task.Status) {
	c.Dispatch(ToggleStatus{Status: status})
}

func (c *Controller) TogglePriority(priority task.Priority) {
	c.Dispatch(TogglePriority{Priority: priority})
}

func (c *Controller) SetAssignedTo(userID string) {
	c.Dispatch(SetAssignee{UserID: userID})
}

func (c *Controller) SetDateRange(preset filter.DateRange) {
	c.Dispatch(SetDateRange{Range: preset})
}

func (c *Controller) SetSearch(term string) {
	c.Dispatch(SetSearch{Term: term})
}

func (c *Controller) ClearAll() {
	c.Dispatch(ClearAll{})
}
