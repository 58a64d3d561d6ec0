package http

import (
	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/internal/events"
	"github.com/rdboard/rd-tracker-backend/internal/requirements/service"
)

// Handler bundles the dependencies for requirement HTTP endpoints.
type Handler struct {
	svc *service.RequirementService
	bus *events.Bus
	log *zap.Logger
}

func New(svc *service.RequirementService, bus *events.Bus, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, bus: bus, log: log}
}
