package models

// Settings represents application settings
type Settings struct {
	CheckInterval  int    `json:"check_interval"` // in seconds
	MonitorSources bool   `json:"monitor_sources"`
	Notifications  bool   `json:"notifications"`
	GalleryColumns int    `json:"gallery_columns"`
	Theme          string `json:"theme"`
	LastUsedPath   string `json:"last_used_path"`
}

// DefaultSettings returns default application settings
func DefaultSettings() *Settings {
	return &Settings{
		CheckInterval:  3600, // 1 hour
		MonitorSources: true,
		Notifications:  true,
		GalleryColumns: 3,
		Theme:          "light",
	}
}
