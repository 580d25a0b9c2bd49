package maternity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRepoPG persists store snapshots to Postgres. Each Save rewrites the
// snapshot tables in one transaction, so a crash mid-save leaves the previous
// snapshot intact.
type snapshotRepoPG struct{ pool *pgxpool.Pool }

func NewSnapshotRepoPG(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepoPG{pool: pool}
}

const profileCols = `id, name, age, blood_type, expected_delivery_date, medical_history,
	emergency_contact, current_stage, risk_status, high_risk, created_at, last_checkup`

const recordCols = `id, mother_id, recorded_at, blood_pressure, weight, symptoms, notes,
	next_appointment, health_status`

func (r *snapshotRepoPG) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM health_record`); err != nil {
		return fmt.Errorf("clear health_record: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM mother_profile`); err != nil {
		return fmt.Errorf("clear mother_profile: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO store_counter (name, value) VALUES ('mother_id', $1), ('record_id', $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`,
		int64(snap.NextMotherID), int64(snap.NextRecordID)); err != nil {
		return fmt.Errorf("save counters: %w", err)
	}

	for _, p := range snap.Profiles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO mother_profile (`+profileCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			int64(p.ID), p.Name, p.Age, p.BloodType, p.ExpectedDeliveryDate, p.MedicalHistory,
			p.EmergencyContact, string(p.CurrentStage), string(p.RiskStatus), p.HighRisk,
			p.CreatedAt, p.LastCheckup); err != nil {
			return fmt.Errorf("save profile %d: %w", p.ID, err)
		}
	}

	for _, rec := range snap.Records {
		if _, err := tx.Exec(ctx, `
			INSERT INTO health_record (`+recordCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			int64(rec.ID), int64(rec.MotherID), rec.Timestamp, rec.BloodPressure, rec.Weight,
			rec.Symptoms, rec.Notes, rec.NextAppointment, string(rec.HealthStatus)); err != nil {
			return fmt.Errorf("save record %d: %w", rec.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *snapshotRepoPG) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	rows, err := r.pool.Query(ctx, `SELECT name, value FROM store_counter`)
	if err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}
	found := false
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		found = true
		switch name {
		case "mother_id":
			snap.NextMotherID = uint64(value)
		case "record_id":
			snap.NextRecordID = uint64(value)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counters: %w", err)
	}
	if !found {
		return nil, nil
	}

	rows, err = r.pool.Query(ctx, `SELECT `+profileCols+` FROM mother_profile ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		snap.Profiles = append(snap.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	rows, err = r.pool.Query(ctx, `SELECT `+recordCols+` FROM health_record ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return snap, nil
}

func scanProfile(row pgx.Row) (*MotherProfile, error) {
	var p MotherProfile
	var id int64
	var stage, status string
	err := row.Scan(&id, &p.Name, &p.Age, &p.BloodType, &p.ExpectedDeliveryDate, &p.MedicalHistory,
		&p.EmergencyContact, &stage, &status, &p.HighRisk, &p.CreatedAt, &p.LastCheckup)
	if err != nil {
		return nil, err
	}
	p.ID = uint64(id)
	p.CurrentStage = PregnancyStage(stage)
	p.RiskStatus = HealthStatus(status)
	return &p, nil
}

func scanRecord(row pgx.Row) (*HealthRecord, error) {
	var rec HealthRecord
	var id, motherID int64
	var status string
	err := row.Scan(&id, &motherID, &rec.Timestamp, &rec.BloodPressure, &rec.Weight,
		&rec.Symptoms, &rec.Notes, &rec.NextAppointment, &status)
	if err != nil {
		return nil, err
	}
	rec.ID = uint64(id)
	rec.MotherID = uint64(motherID)
	rec.HealthStatus = HealthStatus(status)
	return &rec, nil
}
