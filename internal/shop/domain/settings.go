package domain

// DefaultAdminPassword is the factory password. The console counts as unconfigured while it is in use.
const DefaultAdminPassword = "1234"

// MinPasswordLength applies to both initial setup and password changes.
const MinPasswordLength = 4

// InstagramConfig is the Instagram link state shown in the inbox header.
type InstagramConfig struct {
	Connected   bool    `json:"connected"`
	Handle      *string `json:"handle"`
	ConnectedAt *int64  `json:"connectedAt"`
}

// Settings is process-wide configuration persisted next to the transactional stores.
type Settings struct {
	AdminPasswordHash string
	Instagram         InstagramConfig
}

// SettingsRepository defines the contract for settings access
type SettingsRepository interface {
	Get() Settings
	SetAdminPasswordHash(hash string) error
	SetInstagram(cfg InstagramConfig) error
}
