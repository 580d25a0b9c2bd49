package maternity

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory record store: both keyed mappings, both id
// counters, and the classifier, behind a single mutex so that
// create-classify-update sequences are atomic to concurrent readers.
// Construct it empty with NewStore or rebuild it from a Snapshot.
type Store struct {
	mu         sync.Mutex
	classifier *Classifier
	now        func() time.Time

	nextMotherID uint64
	nextRecordID uint64
	profiles     map[uint64]*MotherProfile
	records      map[uint64][]*HealthRecord
}

func NewStore(classifier *Classifier) *Store {
	return &Store{
		classifier: classifier,
		now:        time.Now,
		profiles:   make(map[uint64]*MotherProfile),
		records:    make(map[uint64][]*HealthRecord),
	}
}

// SetClock overrides the store's time source. Tests use this to pin stage
// derivation and appointment windows.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// CreateMotherProfile validates the input, allocates the next mother id and
// stores the profile with its stage derived from the delivery date. New
// profiles always start at normal risk.
func (s *Store) CreateMotherProfile(in MotherProfileInput) (*MotherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := validateProfileInput(in, now); err != nil {
		return nil, err
	}

	id := s.nextMotherID
	s.nextMotherID++

	p := &MotherProfile{
		ID:                   id,
		Name:                 in.Name,
		Age:                  in.Age,
		BloodType:            in.BloodType,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		MedicalHistory:       append([]string(nil), in.MedicalHistory...),
		EmergencyContact:     in.EmergencyContact,
		CurrentStage:         StageAt(in.ExpectedDeliveryDate, now),
		RiskStatus:           StatusNormal,
		CreatedAt:            now,
		LastCheckup:          now,
	}
	s.profiles[id] = p
	return cloneProfile(p), nil
}

// GetMotherProfile returns a copy of the stored profile.
func (s *Store) GetMotherProfile(id uint64) (*MotherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "mother", ID: id}
	}
	return cloneProfile(p), nil
}

// AddHealthRecord appends a record to the owning mother's sequence, runs the
// classifier over the new latest reading and updates the profile's cached
// risk fields in place. A failing call allocates no id and changes nothing.
func (s *Store) AddHealthRecord(in HealthRecordInput) (*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[in.MotherID]
	if !ok {
		return nil, &NotFoundError{Resource: "mother", ID: in.MotherID}
	}
	if in.Weight <= 0 {
		return nil, &ValidationError{Field: "weight", Reason: "must be positive"}
	}

	id := s.nextRecordID
	s.nextRecordID++

	rec := &HealthRecord{
		ID:              id,
		MotherID:        in.MotherID,
		Timestamp:       s.now(),
		BloodPressure:   in.BloodPressure,
		Weight:          in.Weight,
		Symptoms:        append([]string(nil), in.Symptoms...),
		Notes:           in.Notes,
		NextAppointment: cloneTime(in.NextAppointment),
	}

	var previous *HealthRecord
	if seq := s.records[in.MotherID]; len(seq) > 0 {
		previous = seq[len(seq)-1]
	}

	status, highRisk := s.classifier.Classify(p, rec, previous)
	rec.HealthStatus = status

	s.records[in.MotherID] = append(s.records[in.MotherID], rec)
	p.RiskStatus = status
	p.HighRisk = highRisk
	p.LastCheckup = rec.Timestamp

	return cloneRecord(rec), nil
}

// GetMotherHealthRecords returns the mother's records in insertion order. A
// mother with no records yields an empty slice, not an error.
func (s *Store) GetMotherHealthRecords(motherID uint64) ([]*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[motherID]; !ok {
		return nil, &NotFoundError{Resource: "mother", ID: motherID}
	}
	seq := s.records[motherID]
	out := make([]*HealthRecord, 0, len(seq))
	for _, rec := range seq {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

// CriticalCases returns every profile whose current risk status is critical.
func (s *Store) CriticalCases() []*MotherProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*MotherProfile
	for _, id := range s.sortedMotherIDs() {
		if s.profiles[id].RiskStatus == StatusCritical {
			out = append(out, cloneProfile(s.profiles[id]))
		}
	}
	return out
}

// HighRiskProfiles returns every profile flagged high-risk. This is a
// superset of CriticalCases.
func (s *Store) HighRiskProfiles() []*MotherProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*MotherProfile
	for _, id := range s.sortedMotherIDs() {
		if s.profiles[id].HighRisk {
			out = append(out, cloneProfile(s.profiles[id]))
		}
	}
	return out
}

// UpcomingAppointments scans every mother's latest record and reports the
// next appointment when it falls inside [now, now+windowDays].
func (s *Store) UpcomingAppointments(windowDays int) ([]UpcomingAppointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if windowDays < 0 {
		return nil, &ValidationError{Field: "window_days", Reason: "must not be negative"}
	}

	now := s.now()
	horizon := now.Add(time.Duration(windowDays) * 24 * time.Hour)

	var out []UpcomingAppointment
	for _, id := range s.sortedMotherIDs() {
		seq := s.records[id]
		if len(seq) == 0 {
			continue
		}
		latest := seq[len(seq)-1]
		if latest.NextAppointment == nil {
			continue
		}
		at := *latest.NextAppointment
		if at.Before(now) || at.After(horizon) {
			continue
		}
		out = append(out, UpcomingAppointment{MotherID: id, NextAppointment: at})
	}
	return out, nil
}

func (s *Store) sortedMotherIDs() []uint64 {
	ids := make([]uint64, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func validateProfileInput(in MotherProfileInput, now time.Time) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.EmergencyContact) == "" {
		return &ValidationError{Field: "emergency_contact", Reason: "must not be empty"}
	}
	if in.Age < 13 || in.Age > 65 {
		return &ValidationError{Field: "age", Reason: "must be between 13 and 65"}
	}
	if !in.ExpectedDeliveryDate.After(now) {
		return &ValidationError{Field: "expected_delivery_date", Reason: "must be in the future"}
	}
	return nil
}

func cloneProfile(p *MotherProfile) *MotherProfile {
	cp := *p
	cp.MedicalHistory = append([]string(nil), p.MedicalHistory...)
	return &cp
}

func cloneRecord(r *HealthRecord) *HealthRecord {
	cp := *r
	cp.Symptoms = append([]string(nil), r.Symptoms...)
	cp.NextAppointment = cloneTime(r.NextAppointment)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
