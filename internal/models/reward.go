package models

// RewardType controls how reward text is displayed
type RewardType string

const (
	RewardCurrency RewardType = "currency"
	RewardText     RewardType = "text"
)

// MaxRewardSteps caps the number of tiers a parent can configure
const MaxRewardSteps = 5

// RewardStep unlocks RewardText once the cumulative sticker count reaches StickersThreshold
type RewardStep struct {
	StickersThreshold int    `json:"stickersThreshold"`
	RewardText        string `json:"rewardText"`
}

// RewardConfig is the parent-defined tier table
type RewardConfig struct {
	Type  RewardType   `json:"type"`
	Steps []RewardStep `json:"steps"`
}
