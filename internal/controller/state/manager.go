package state

import (
	"sync"
)

// Manager хранит состояние диалогов и выбор на экранах для каждого пользователя
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// entry возвращает запись пользователя, создавая её при необходимости. Вызывать под mu.Lock
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{Data: make(map[string]any)}
		sm.states[telegramID] = userData
	}
	return userData
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние диалога. Данные (выбор на экранах) сохраняются
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// DeleteData удаляет ключи из данных пользователя
func (sm *Manager) DeleteData(telegramID int64, keys ...string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return
	}
	for _, key := range keys {
		delete(userData.Data, key)
	}
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData возвращает копию всех данных пользователя
func (sm *Manager) GetAllData(telegramID int64) map[string]any {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return nil
	}

	dataCopy := make(map[string]any, len(userData.Data))
	for k, v := range userData.Data {
		dataCopy[k] = v
	}
	return dataCopy
}

// GetString возвращает строковое значение по ключу
func (sm *Manager) GetString(telegramID int64, key string) (string, bool) {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// GetInt возвращает целое значение по ключу
func (sm *Manager) GetInt(telegramID int64, key string) (int, bool) {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}
