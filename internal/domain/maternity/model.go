package maternity

import (
	"time"
)

// HealthStatus is the derived risk classification of a profile or a single
// health record. The set is closed; switches over it must be exhaustive.
type HealthStatus string

const (
	StatusNormal         HealthStatus = "normal"
	StatusNeedsAttention HealthStatus = "needs_attention"
	StatusCritical       HealthStatus = "critical"
)

// Valid reports whether s is one of the known status values.
func (s HealthStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusNeedsAttention, StatusCritical:
		return true
	}
	return false
}

// PregnancyStage is derived from the expected delivery date.
type PregnancyStage string

const (
	StageFirstTrimester  PregnancyStage = "first_trimester"
	StageSecondTrimester PregnancyStage = "second_trimester"
	StageThirdTrimester  PregnancyStage = "third_trimester"
	StagePostPartum      PregnancyStage = "post_partum"
)

// MotherProfile maps to the mother_profile table when snapshotted.
// current_stage, risk_status and high_risk are derived fields; they are never
// set directly by callers.
type MotherProfile struct {
	ID                   uint64         `db:"id" json:"id"`
	Name                 string         `db:"name" json:"name"`
	Age                  int            `db:"age" json:"age"`
	BloodType            string         `db:"blood_type" json:"blood_type"`
	ExpectedDeliveryDate time.Time      `db:"expected_delivery_date" json:"expected_delivery_date"`
	MedicalHistory       []string       `db:"medical_history" json:"medical_history"`
	EmergencyContact     string         `db:"emergency_contact" json:"emergency_contact"`
	CurrentStage         PregnancyStage `db:"current_stage" json:"current_stage"`
	RiskStatus           HealthStatus   `db:"risk_status" json:"risk_status"`
	HighRisk             bool           `db:"high_risk" json:"high_risk"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	LastCheckup          time.Time      `db:"last_checkup" json:"last_checkup"`
}

// HealthRecord maps to the health_record table when snapshotted. Records are
// append-only and owned by exactly one profile.
type HealthRecord struct {
	ID              uint64       `db:"id" json:"id"`
	MotherID        uint64       `db:"mother_id" json:"mother_id"`
	Timestamp       time.Time    `db:"recorded_at" json:"timestamp"`
	BloodPressure   string       `db:"blood_pressure" json:"blood_pressure"`
	Weight          float64      `db:"weight" json:"weight"`
	Symptoms        []string     `db:"symptoms" json:"symptoms"`
	Notes           string       `db:"notes" json:"notes"`
	NextAppointment *time.Time   `db:"next_appointment" json:"next_appointment,omitempty"`
	HealthStatus    HealthStatus `db:"health_status" json:"health_status"`
}

// MotherProfileInput is the create payload for a profile.
type MotherProfileInput struct {
	Name                 string    `json:"name"`
	Age                  int       `json:"age"`
	BloodType            string    `json:"blood_type"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date"`
	MedicalHistory       []string  `json:"medical_history"`
	EmergencyContact     string    `json:"emergency_contact"`
}

// HealthRecordInput is the create payload for a health record.
type HealthRecordInput struct {
	MotherID        uint64     `json:"mother_id"`
	BloodPressure   string     `json:"blood_pressure"`
	Weight          float64    `json:"weight"`
	Symptoms        []string   `json:"symptoms"`
	Notes           string     `json:"notes"`
	NextAppointment *time.Time `json:"next_appointment,omitempty"`
}

// UpcomingAppointment is one row of the appointment-window query.
type UpcomingAppointment struct {
	MotherID        uint64    `json:"mother_id"`
	NextAppointment time.Time `json:"next_appointment"`
}

const weeksPerTrimesterBoundary = 7 * 24 * time.Hour

// StageAt derives the pregnancy stage from the expected delivery date as of
// now. A delivery date in the past means post-partum; otherwise the stage is
// keyed off how many weeks remain until the due date (a full term is ~40
// weeks, so 13 or fewer remaining puts the pregnancy in the third trimester).
func StageAt(deliveryDate, now time.Time) PregnancyStage {
	if !deliveryDate.After(now) {
		return StagePostPartum
	}
	weeksLeft := int(deliveryDate.Sub(now) / weeksPerTrimesterBoundary)
	switch {
	case weeksLeft <= 13:
		return StageThirdTrimester
	case weeksLeft <= 27:
		return StageSecondTrimester
	default:
		return StageFirstTrimester
	}
}
