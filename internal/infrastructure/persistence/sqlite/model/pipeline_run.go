package model

type PipelineRun struct {
	RunID        uint64 `gorm:"column:run_id;primaryKey;autoIncrement"`
	SinkDriver   string `gorm:"column:sink_driver;type:text;not null"`
	Seed         int64  `gorm:"column:seed;not null;default:0"`
	Status       string `gorm:"column:status;type:text;not null;index"`
	StartedAt    string `gorm:"column:started_at;type:text;not null;index"`
	FinishedAt   string `gorm:"column:finished_at;type:text;not null;default:''"`
	TablesLoaded int    `gorm:"column:tables_loaded;not null;default:0"`
	RowsLoaded   int64  `gorm:"column:rows_loaded;not null;default:0"`
	Error        string `gorm:"column:error;type:text;not null;default:''"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
