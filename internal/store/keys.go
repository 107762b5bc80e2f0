package store

// Key names one persisted slice of State
type Key string

const (
	KeyMissions       Key = "missions"
	KeyStickers       Key = "stickers"
	KeyBonusBalance   Key = "bonus-balance"
	KeyArchives       Key = "archives"
	KeyCurrentMonthID Key = "current-month-id"
	KeyLastResetDate  Key = "last-reset-date"
	KeyPresets        Key = "presets"
	KeyRewardConfig   Key = "reward-config"
	KeyProfile        Key = "profile"
	KeyMissionLogs    Key = "mission-logs"
	KeyPIN            Key = "pin"
)

// AllKeys lists every persisted key in a stable order
var AllKeys = []Key{
	KeyMissions,
	KeyStickers,
	KeyBonusBalance,
	KeyArchives,
	KeyCurrentMonthID,
	KeyLastResetDate,
	KeyPresets,
	KeyRewardConfig,
	KeyProfile,
	KeyMissionLogs,
	KeyPIN,
}

// IsKnownKey reports whether name is one of AllKeys
func IsKnownKey(name string) bool {
	for _, key := range AllKeys {
		if string(key) == name {
			return true
		}
	}
	return false
}
