package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
	"go.uber.org/zap"
)

// RelatedDoctorsLimit - сколько похожих врачей показывать на экране врача
const RelatedDoctorsLimit = 5

// DoctorSource загружает список врачей (реализуется backend.Client)
type DoctorSource interface {
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
}

// DoctorService is the in-memory doctor-data provider.
// It is the only shared mutable state of the bot and is refreshed after bookings,
// cancellations and on a timer.
type DoctorService struct {
	source    DoctorSource
	generator *slots.Generator
	logger    *zap.Logger

	mu       sync.RWMutex
	doctors  []model.Doctor
	byID     map[string]int
	loadedAt time.Time
}

func NewDoctorService(source DoctorSource, generator *slots.Generator, logger *zap.Logger) *DoctorService {
	if generator == nil {
		generator = slots.NewGenerator()
	}
	return &DoctorService{
		source:    source,
		generator: generator,
		logger:    logger,
	}
}

// Refresh перезагружает список врачей с бэкенда.
// При ошибке остаётся старый список.
func (s *DoctorService) Refresh(ctx context.Context) error {
	doctors, err := s.source.ListDoctors(ctx)
	if err != nil {
		return fmt.Errorf("load doctors: %w", err)
	}

	byID := make(map[string]int, len(doctors))
	for i, d := range doctors {
		byID[d.ID] = i
	}

	s.mu.Lock()
	s.doctors = doctors
	s.byID = byID
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug("Doctors refreshed", zap.Int("count", len(doctors)))

	return nil
}

// Ensure загружает врачей, если они ещё не загружены
func (s *DoctorService) Ensure(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}
	return s.Refresh(ctx)
}

// Loaded reports whether the list has been loaded at least once
func (s *DoctorService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID != nil
}

// List returns a copy of all doctors in backend order
func (s *DoctorService) List() []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// Doctor возвращает врача по ID
func (s *DoctorService) Doctor(id string) (model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Doctor{}, ErrDoctorNotFound
	}
	return s.doctors[i], nil
}

// Specialities returns distinct specialities in first-seen order
func (s *DoctorService) Specialities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, d := range s.doctors {
		if d.Speciality == "" || seen[d.Speciality] {
			continue
		}
		seen[d.Speciality] = true
		out = append(out, d.Speciality)
	}
	return out
}

// BySpeciality возвращает врачей указанной специальности
func (s *DoctorService) BySpeciality(speciality string) []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Doctor
	for _, d := range s.doctors {
		if d.Speciality == speciality {
			out = append(out, d)
		}
	}
	return out
}

// Related возвращает до RelatedDoctorsLimit врачей той же специальности, кроме самого врача
func (s *DoctorService) Related(id string) []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	speciality := s.doctors[i].Speciality

	var out []model.Doctor
	for _, d := range s.doctors {
		if d.ID == id || d.Speciality != speciality {
			continue
		}
		out = append(out, d)
		if len(out) == RelatedDoctorsLimit {
			break
		}
	}
	return out
}

// Week строит свободные слоты врача на 7 дней от now
func (s *DoctorService) Week(id string, now time.Time) (model.WeekSlots, error) {
	doctor, err := s.Doctor(id)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(doctor.SlotsBooked, now), nil
}

// Generator returns the slot generator the service renders weeks with
func (s *DoctorService) Generator() *slots.Generator {
	return s.generator
}
