package dto

type HealthDTO struct {
	OK        bool             `json:"ok"`
	Name      string           `json:"name"`
	Version   string           `json:"version"`
	StartedAt string           `json:"started_at"`
	UptimeSec int64            `json:"uptime_sec"`
	Storage   StorageStatusDTO `json:"storage"`
}

type StorageStatusDTO struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Records int    `json:"records"`
}
