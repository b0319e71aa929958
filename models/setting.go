package models

import "server/db"

// Setting is a key-value configuration pair, upserted by key.
// Known keys: thankYouMessage, confirmationDeadline.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	UpdatedAt int64
	Key       string `gorm:"type:varchar(100);index:uniq_setting_key,unique"`
	Value     string `gorm:"type:text"`
}

const (
	SettingThankYouMessage      = "thankYouMessage"
	SettingConfirmationDeadline = "confirmationDeadline"
)

func SettingSet(key, value string) error {
	var setting Setting
	result := db.Instance.First(&setting, "key = ?", key)
	if result.Error != nil {
		return db.Instance.Create(&Setting{Key: key, Value: value}).Error
	}
	return db.Instance.Model(&setting).Update("value", value).Error
}

func SettingGet(key string) (string, bool) {
	var setting Setting
	if db.Instance.First(&setting, "key = ?", key).Error != nil {
		return "", false
	}
	return setting.Value, true
}

// SettingsMap returns every setting as a flat key-value map
func SettingsMap() (map[string]string, error) {
	var settings []Setting
	if err := db.Instance.Find(&settings).Error; err != nil {
		return nil, err
	}
	result := map[string]string{}
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}
