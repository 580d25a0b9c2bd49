package maternity

import (
	"context"
	"fmt"
)

// Service fronts the in-memory store and its snapshot persistence. Store
// operations never block on I/O; snapshots are captured and written only at
// explicit checkpoints (startup restore, shutdown, checkpoint interval).
type Service struct {
	store     *Store
	snapshots SnapshotRepository
}

// NewService wires a store to a snapshot repository. snapshots may be nil
// when durability is disabled (tests, ephemeral runs).
func NewService(store *Store, snapshots SnapshotRepository) *Service {
	return &Service{store: store, snapshots: snapshots}
}

func (s *Service) CreateMotherProfile(ctx context.Context, in MotherProfileInput) (*MotherProfile, error) {
	return s.store.CreateMotherProfile(in)
}

func (s *Service) GetMotherProfile(ctx context.Context, id uint64) (*MotherProfile, error) {
	return s.store.GetMotherProfile(id)
}

func (s *Service) AddHealthRecord(ctx context.Context, in HealthRecordInput) (*HealthRecord, error) {
	return s.store.AddHealthRecord(in)
}

func (s *Service) GetMotherHealthRecords(ctx context.Context, motherID uint64) ([]*HealthRecord, error) {
	return s.store.GetMotherHealthRecords(motherID)
}

func (s *Service) CriticalCases(ctx context.Context) []*MotherProfile {
	return s.store.CriticalCases()
}

func (s *Service) HighRiskProfiles(ctx context.Context) []*MotherProfile {
	return s.store.HighRiskProfiles()
}

func (s *Service) UpcomingAppointments(ctx context.Context, windowDays int) ([]UpcomingAppointment, error) {
	return s.store.UpcomingAppointments(windowDays)
}

// Restore rebuilds the store from the last saved snapshot. A missing
// snapshot is not an error; the store simply starts empty.
func (s *Service) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return nil
	}
	s.store.Restore(snap)
	return nil
}

// Checkpoint captures the current store state and writes it through the
// snapshot repository.
func (s *Service) Checkpoint(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.Save(ctx, s.store.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
