package state

import (
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter адаптирует state.Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	*Manager
}

// NewAdapter создает адаптер для Manager
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{Manager: sm}
}

// GetState получает текущее состояние пользователя
func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.Manager.GetState(telegramID))
}

// SetState устанавливает состояние пользователя
func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.Manager.SetState(telegramID, UserState(state))
}

var _ callbacktypes.StateManager = (*Adapter)(nil)
