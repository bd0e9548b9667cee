package domain

import "time"

// RewardType separates rewards from punishments.
type RewardType string

const (
	RewardTypeReward     RewardType = "reward"
	RewardTypePunishment RewardType = "punishment"
)

// Reward is a reward or punishment assigned to a daemon.
type Reward struct {
	ID             int64      `json:"id"`
	DaemonUsername string     `json:"daemonUsername"`
	Type           RewardType `json:"type"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"createdAt"`
}
