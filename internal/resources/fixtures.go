package resources

import (
	"time"

	"github.com/spec-kit/resistance-admin/internal/domain"
)

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureUsers() []domain.User {
	return []domain.User{
		{Username: "admin", Email: "admin@resistance.local", Role: domain.RoleSuperadmin, CreatedAt: at("2024-01-15T10:00:00Z")},
		{Username: "daemon1", Email: "daemon1@resistance.local", Role: domain.RoleDaemon, CreatedAt: at("2024-02-20T14:30:00Z")},
		{Username: "daemon2", Email: "daemon2@resistance.local", Role: domain.RoleDaemon, CreatedAt: at("2024-03-10T09:15:00Z")},
	}
}

func fixtureVictims() []domain.Victim {
	return []domain.Victim{
		{Name: "Target Alpha", DangerLevel: 8, Notes: "High priority - heavily guarded facility", CreatedAt: at("2024-10-01T08:00:00Z"), UpdatedAt: at("2024-10-15T12:30:00Z")},
		{Name: "Target Beta", DangerLevel: 5, Notes: "Medium risk - urban location", CreatedAt: at("2024-10-05T10:20:00Z"), UpdatedAt: at("2024-10-05T10:20:00Z")},
		{Name: "Target Gamma", DangerLevel: 3, Notes: "Low priority - isolated area", CreatedAt: at("2024-10-10T15:45:00Z"), UpdatedAt: at("2024-10-20T09:00:00Z")},
		{Name: "Target Delta", DangerLevel: 9, Notes: "Critical target - maximum security", CreatedAt: at("2024-10-12T07:30:00Z"), UpdatedAt: at("2024-10-25T16:20:00Z")},
		{Name: "Target Epsilon", DangerLevel: 2, CreatedAt: at("2024-10-18T11:10:00Z"), UpdatedAt: at("2024-10-18T11:10:00Z")},
	}
}

func fixtureAttempts() []domain.Attempt {
	return []domain.Attempt{
		{ID: 1, VictimName: "Target Alpha", Description: "Infiltration attempt at north entrance", State: domain.AttemptStateInProgress, DaemonUsername: "daemon1", CreatedAt: at("2024-11-01T14:00:00Z"), UpdatedAt: at("2024-11-02T10:30:00Z")},
		{ID: 2, VictimName: "Target Beta", Description: "Surveillance and reconnaissance mission", State: domain.AttemptStateResolved, DaemonUsername: "daemon1", CreatedAt: at("2024-10-28T09:15:00Z"), UpdatedAt: at("2024-10-30T16:45:00Z")},
		{ID: 3, VictimName: "Target Gamma", Description: "Data extraction operation", State: domain.AttemptStatePending, DaemonUsername: "daemon2", CreatedAt: at("2024-11-03T08:20:00Z"), UpdatedAt: at("2024-11-03T08:20:00Z")},
		{ID: 4, VictimName: "Target Delta", Description: "Asset neutralization plan", State: domain.AttemptStateRejected, DaemonUsername: "daemon2", CreatedAt: at("2024-10-25T11:40:00Z"), UpdatedAt: at("2024-10-26T13:10:00Z")},
	}
}

func fixtureReports() []domain.Report {
	return []domain.Report{
		{ID: 1, Title: "Security Breach at Sector 7", Description: "Unauthorized access detected. Immediate investigation required.", CreatedAt: at("2024-11-01T16:30:00Z")},
		{ID: 2, Title: "Equipment Malfunction", Description: "Communication devices experiencing intermittent failures.", CreatedAt: at("2024-10-30T10:15:00Z")},
		{ID: 3, Title: "Personnel Alert", Description: "Suspicious behavior observed. Recommend increased monitoring.", CreatedAt: at("2024-10-28T14:50:00Z")},
	}
}

func fixtureRewards() []domain.Reward {
	return []domain.Reward{
		{ID: 1, DaemonUsername: "daemon1", Type: domain.RewardTypeReward, Description: "Successfully completed high-risk mission", CreatedAt: at("2024-10-30T17:00:00Z")},
		{ID: 2, DaemonUsername: "daemon1", Type: domain.RewardTypeReward, Description: "Exceptional performance in surveillance operations", CreatedAt: at("2024-10-25T12:30:00Z")},
		{ID: 3, DaemonUsername: "daemon2", Type: domain.RewardTypePunishment, Description: "Protocol violation - unauthorized communication", CreatedAt: at("2024-10-26T09:45:00Z")},
	}
}

func fixtureContent() []domain.Content {
	return []domain.Content{
		{ID: 1, Title: "Resistance Manifesto", Body: "Our principles and mission statement for the liberation movement...", CreatedAt: at("2024-09-15T10:00:00Z"), UpdatedAt: at("2024-10-01T14:20:00Z")},
		{ID: 2, Title: "Operational Security Guidelines", Body: "Essential protocols for maintaining anonymity and secure communications...", CreatedAt: at("2024-09-20T11:30:00Z"), UpdatedAt: at("2024-09-20T11:30:00Z")},
		{ID: 3, Title: "Weekly Intelligence Briefing", Body: "Summary of key developments and strategic updates from the field...", CreatedAt: at("2024-11-01T08:00:00Z"), UpdatedAt: at("2024-11-01T08:00:00Z")},
	}
}
