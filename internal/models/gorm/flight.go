package gorm

import "time"

// Flight is a single logged flight. Rows are append-only.
type Flight struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PilotID      string    `gorm:"column:pilot_id;index;not null"`
	FlightNumber string    `gorm:"column:flight_number"`
	Aircraft     string    `gorm:"column:aircraft"`
	Dep          string    `gorm:"column:dep"`
	Arr          string    `gorm:"column:arr"`
	Gate         string    `gorm:"column:gate"`
	Altitude     string    `gorm:"column:altitude"`
	FlightTime   int       `gorm:"column:flight_time;not null;default:0"` // minutes
	PIC          string    `gorm:"column:pic"`
	FO           string    `gorm:"column:fo"`
	Crew         string    `gorm:"column:crew"`
	ATC          string    `gorm:"column:atc"`
	Status       string    `gorm:"column:status"`
	Remarks      string    `gorm:"column:remarks"`
	Timestamp    time.Time `gorm:"column:timestamp;not null"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}
