package maternity

import (
	"sort"
)

// Snapshot is the full persistent state of a Store: both counters, every
// profile and every health record. Records are flat and ordered by id; the
// per-mother sequences are rebuilt on restore.
type Snapshot struct {
	NextMotherID uint64
	NextRecordID uint64
	Profiles     []*MotherProfile
	Records      []*HealthRecord
}

// Snapshot captures a consistent copy of the store under the lock.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		NextMotherID: s.nextMotherID,
		NextRecordID: s.nextRecordID,
	}
	for _, id := range s.sortedMotherIDs() {
		snap.Profiles = append(snap.Profiles, cloneProfile(s.profiles[id]))
		for _, rec := range s.records[id] {
			snap.Records = append(snap.Records, cloneRecord(rec))
		}
	}
	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].ID < snap.Records[j].ID })
	return snap
}

// Restore replaces the store's contents with the snapshot. The risk status
// and high-risk flag are recomputed from the raw records rather than trusted
// from the snapshot; the classifier is deterministic, so the result is
// identical to the state at capture time. The stored stage is kept verbatim
// because it is a function of the wall clock, not of the record data.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMotherID = snap.NextMotherID
	s.nextRecordID = snap.NextRecordID
	s.profiles = make(map[uint64]*MotherProfile, len(snap.Profiles))
	s.records = make(map[uint64][]*HealthRecord, len(snap.Profiles))

	for _, p := range snap.Profiles {
		s.profiles[p.ID] = cloneProfile(p)
	}

	ordered := make([]*HealthRecord, len(snap.Records))
	copy(ordered, snap.Records)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	for _, rec := range ordered {
		if _, ok := s.profiles[rec.MotherID]; !ok {
			continue
		}
		s.records[rec.MotherID] = append(s.records[rec.MotherID], cloneRecord(rec))
	}

	for id, p := range s.profiles {
		seq := s.records[id]
		var latest, previous *HealthRecord
		if len(seq) > 0 {
			latest = seq[len(seq)-1]
		}
		if len(seq) > 1 {
			previous = seq[len(seq)-2]
		}
		status, highRisk := s.classifier.Classify(p, latest, previous)
		p.RiskStatus = status
		p.HighRisk = highRisk
	}
}
