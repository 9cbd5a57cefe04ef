package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateAndData(t *testing.T) {
	sm := NewManager()
	const id int64 = 1

	assert.Equal(t, StateNone, sm.GetState(id))

	sm.SetData(id, KeyDoctorID, "doc1")
	sm.SetData(id, KeySlotIndex, 2)
	sm.SetState(id, StateLoginEmail)

	assert.Equal(t, StateLoginEmail, sm.GetState(id))

	doctorID, ok := sm.GetString(id, KeyDoctorID)
	assert.True(t, ok)
	assert.Equal(t, "doc1", doctorID)

	idx, ok := sm.GetInt(id, KeySlotIndex)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	// тип не совпадает
	_, ok = sm.GetInt(id, KeyDoctorID)
	assert.False(t, ok)

	// выход из диалога не сбрасывает выбор
	sm.SetState(id, StateNone)
	_, ok = sm.GetString(id, KeyDoctorID)
	assert.True(t, ok)

	sm.DeleteData(id, KeySlotIndex, KeySlotTime)
	_, ok = sm.GetInt(id, KeySlotIndex)
	assert.False(t, ok)

	all := sm.GetAllData(id)
	all["mutated"] = true
	_, ok = sm.GetData(id, "mutated")
	assert.False(t, ok)

	sm.ClearState(id)
	assert.Nil(t, sm.GetAllData(id))
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := int64(n % 5)
			sm.SetData(id, KeySlotIndex, n)
			sm.GetInt(id, KeySlotIndex)
			sm.SetState(id, StateLoginPassword)
			sm.DeleteData(id, KeySlotTime)
		}(i)
	}
	wg.Wait()

	for id := int64(0); id < 5; id++ {
		assert.Equal(t, StateLoginPassword, sm.GetState(id))
	}
}
