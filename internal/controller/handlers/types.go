package handlers

import (
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	sessionService *service.SessionService
	doctorService  *service.DoctorService
	stateManager   *state.Manager
	// screens - общие зависимости экранов, чтобы команды рисовали то же, что и кнопки
	screens *callbacktypes.Handler
	logger  *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	sessionService *service.SessionService,
	doctorService *service.DoctorService,
	stateManager *state.Manager,
	screens *callbacktypes.Handler,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessionService: sessionService,
		doctorService:  doctorService,
		stateManager:   stateManager,
		screens:        screens,
		logger:         logger,
	}
}
