package models

// GSIDSequenceName is the counter backing global security id allocation.
const GSIDSequenceName = "gsid"

// Sequence is a named monotonic counter. The GSID counter is incremented
// inside the same transaction that inserts a new SecurityRecord. Values
// from rolled-back transactions are skipped, never reused.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null"`
}

// TableName maps the model onto the sequences table.
func (Sequence) TableName() string { return "sequences" }
