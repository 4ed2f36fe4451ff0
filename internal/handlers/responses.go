package handlers

// IDResponse is the response for create operations
type IDResponse struct {
	ID int64 `json:"id"`
}

// FinalizeDueResponse is the response for the cron finalization sweep
type FinalizeDueResponse struct {
	Processed int `json:"processed"`
}

// SettingsResponse is the response for the settings endpoint
type SettingsResponse struct {
	WinnerDelayMinutes int    `json:"winner_delay_minutes"`
	FinalizeBatchSize  int    `json:"finalize_batch_size"`
	MomentumWindow     int    `json:"momentum_window"`
	BaseURL            string `json:"base_url"`
}

// ResetResponse is the response for a database reset
type ResetResponse struct {
	Tables  []string `json:"tables"`
	Message string   `json:"message"`
}
