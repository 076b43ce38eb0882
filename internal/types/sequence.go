package types

// Sequence backs human-readable ID generation. One row per entity type,
// incremented atomically inside the creating transaction.
type Sequence struct {
	Name  string `gorm:"primaryKey;column:name"`
	Value int64  `gorm:"not null;column:value"`
}

func (Sequence) TableName() string {
	return "sequence"
}
