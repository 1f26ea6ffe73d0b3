package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const APIPrefix = "/api"

// Registry collects feature modules and mounts them on one API group.
type Registry struct {
	API     *gin.RouterGroup
	logger  *logrus.Logger
	modules []Module
	names   map[string]struct{}
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{
		API:    engine.Group(APIPrefix),
		logger: logger,
		names:  map[string]struct{}{},
	}
}

// Add queues mod for mounting. Module names must be unique.
func (r *Registry) Add(mod Module) {
	if _, dup := r.names[mod.Name()]; dup {
		panic(fmt.Sprintf("router: module %q registered twice", mod.Name()))
	}
	r.names[mod.Name()] = struct{}{}
	r.modules = append(r.modules, mod)
}

// Modules lists queued module names in registration order.
func (r *Registry) Modules() []string {
	out := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m.Name())
	}
	return out
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
		if r.logger != nil {
			r.logger.WithField("module", m.Name()).Debug("routes mounted")
		}
	}
}
