package model

type TableLoad struct {
	LoadID      uint64 `gorm:"column:load_id;primaryKey;autoIncrement"`
	RunID       uint64 `gorm:"column:run_id;not null;index"`
	Table       string `gorm:"column:table_name;type:text;not null"`
	Destination string `gorm:"column:destination;type:text;not null"`
	Rows        int64  `gorm:"column:row_count;not null"`
	LoadedAt    string `gorm:"column:loaded_at;type:text;not null"`
}

func (TableLoad) TableName() string {
	return "table_loads"
}

// All lists every ledger model for migration.
func All() []any {
	return []any{&PipelineRun{}, &TableLoad{}}
}
