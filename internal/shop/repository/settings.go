package repository

import "github.com/tair/shop-console/internal/shop/domain"

type settingsRepository struct {
	tx *memoryTx
}

func (r *settingsRepository) Get() domain.Settings {
	return domain.Dataset{Settings: r.tx.data.Settings}.Clone().Settings
}

func (r *settingsRepository) SetAdminPasswordHash(hash string) error {
	if err := r.tx.write(domain.KeyAdminPassword); err != nil {
		return err
	}
	r.tx.data.Settings.AdminPasswordHash = hash
	return nil
}

func (r *settingsRepository) SetInstagram(cfg domain.InstagramConfig) error {
	if err := r.tx.write(domain.KeyInstagram); err != nil {
		return err
	}
	r.tx.data.Settings.Instagram = cfg
	return nil
}
