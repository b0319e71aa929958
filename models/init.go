package models

import "server/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Invite{})
	db.Instance.AutoMigrate(&Guest{})
	db.Instance.AutoMigrate(&Setting{})

	migrateLegacyConfirmedFlag()
}

// migrateLegacyConfirmedFlag folds rows from the old dual-flag model
// (confirmed boolean overriding the free-text status) into the status
// variant. Runs on every start but only touches unmigrated rows.
func migrateLegacyConfirmedFlag() {
	db.Instance.Model(&Guest{}).
		Where("confirmed = ? AND status != ?", true, StatusConfirmed).
		Update("status", StatusConfirmed)
	db.Instance.Model(&Guest{}).
		Where("status IS NULL OR status = ''").
		Update("status", StatusPending)
}
