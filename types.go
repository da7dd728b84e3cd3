package ondilo

import (
	"fmt"
	"time"
)

// MeasureType identifies a probe measurement reported by an ICO device.
type MeasureType string

// Measurement types reported by the ICO probes.
const (
	MeasureTemperature MeasureType = "temperature"
	MeasurePH          MeasureType = "ph"
	MeasureORP         MeasureType = "orp"
	MeasureSalt        MeasureType = "salt"
	MeasureBattery     MeasureType = "battery"
	MeasureTDS         MeasureType = "tds"
	MeasureRSSI        MeasureType = "rssi"
)

// AllMeasureTypes returns every measurement type, in the order the API
// documents them.
func AllMeasureTypes() []MeasureType {
	return []MeasureType{
		MeasureTemperature,
		MeasurePH,
		MeasureORP,
		MeasureSalt,
		MeasureBattery,
		MeasureTDS,
		MeasureRSSI,
	}
}

// Period selects the time window for pool history queries. Any value is
// passed through to the server uninterpreted; the server validates it.
type Period string

// Periods the server accepts.
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// timestampLayout is the vendor's timestamp format. It is almost RFC 3339,
// but the zone offset has no colon, so time.Time cannot decode it directly.
const timestampLayout = "2006-01-02T15:04:05-0700"

// Timestamp wraps time.Time to decode the vendor's timestamp format.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("ondilo: invalid timestamp %s", s)
	}
	s = s[1 : len(s)-1]

	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Some endpoints return proper RFC 3339.
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("ondilo: invalid timestamp %q: %w", s, err)
		}
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler using the vendor's format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(timestampLayout) + `"`), nil
}

// Pool is a body of water (pool or spa) monitored by an ICO device.
type Pool struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type,omitempty"`
	Volume       float64        `json:"volume,omitempty"`
	Disinfection *Disinfection  `json:"disinfection,omitempty"`
	Address      *Address       `json:"address,omitempty"`
	UpdatedAt    *Timestamp     `json:"updated_at,omitempty"`
}

// Disinfection describes a pool's water treatment.
type Disinfection struct {
	Primary   string                 `json:"primary,omitempty"`
	Secondary *SecondaryDisinfection `json:"secondary,omitempty"`
}

// SecondaryDisinfection lists auxiliary treatment equipment.
type SecondaryDisinfection struct {
	UVSanitizer bool `json:"uv_sanitizer"`
	Ozonator    bool `json:"ozonator"`
}

// Address is the postal location of a pool.
type Address struct {
	Street    string  `json:"street,omitempty"`
	Zipcode   string  `json:"zipcode,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// ICODevice is the vendor's water-quality monitoring hardware attached to a
// pool.
type ICODevice struct {
	UUID         string `json:"uuid"`
	SerialNumber string `json:"serial_number"`
	SWVersion    string `json:"sw_version,omitempty"`
}

// Measure is a single probe reading, either the latest value or a point in
// a history series.
type Measure struct {
	DataType        MeasureType `json:"data_type"`
	Value           float64     `json:"value"`
	ValueTime       *Timestamp  `json:"value_time,omitempty"`
	IsValid         bool        `json:"is_valid"`
	ExclusionReason *string     `json:"exclusion_reason"`
}

// Recommendation is a server-generated maintenance suggestion tied to a
// pool. It can be marked done with ValidateRecommendation.
type Recommendation struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	Status    string     `json:"status,omitempty"`
	Deadline  *Timestamp `json:"deadline,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// UserInfo is the account owner's profile.
type UserInfo struct {
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
}

// UserUnits holds the account's preferred units of measurement.
type UserUnits struct {
	Conductivity string `json:"conductivity,omitempty"`
	Hardness     string `json:"hardness,omitempty"`
	ORP          string `json:"orp,omitempty"`
	Pressure     string `json:"pressure,omitempty"`
	Salt         string `json:"salt,omitempty"`
	Speed        string `json:"speed,omitempty"`
	Temperature  string `json:"temperature,omitempty"`
	Volume       string `json:"volume,omitempty"`
}

// PoolConfiguration holds the alert thresholds and maintenance settings of
// a pool.
type PoolConfiguration struct {
	TemperatureLow  float64 `json:"temperature_low"`
	TemperatureHigh float64 `json:"temperature_high"`
	PHLow           float64 `json:"ph_low"`
	PHHigh          float64 `json:"ph_high"`
	ORPLow          float64 `json:"orp_low"`
	ORPHigh         float64 `json:"orp_high"`
	SaltLow         float64 `json:"salt_low"`
	SaltHigh        float64 `json:"salt_high"`
	TDSLow          float64 `json:"tds_low"`
	TDSHigh         float64 `json:"tds_high"`
	PoolGuyNumber   string  `json:"pool_guy_number,omitempty"`
	MaintenanceDay  int     `json:"maintenance_day,omitempty"`
}

// Share is a user a pool has been shared with.
type Share struct {
	Lastname  string `json:"lastname,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Email     string `json:"email"`
}
