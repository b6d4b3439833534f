package billing

import "github.com/tubeautomator/backend/internal/models"

// Plan identifiers. These are the only values accepted by the payment gateway.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// planTable is the single source of truth for tier pricing, limits and feature
// flags. Every operation that reports limits reads from here.
var planTable = []models.Plan{
	{
		ID:          PlanFree,
		Name:        "Free",
		PriceCents:  0,
		Description: "Try out TubeAutomator with a few videos a month.",
		Features:    []string{"2 videos per month", "1 GB storage", "Script generation"},
		Limits:      models.PlanLimits{VideosPerMonth: 2, StorageGB: 1, SchedulingFrequency: "manual"},
		Flags:       models.PlanFeatures{},
	},
	{
		ID:          PlanBasic,
		Name:        "Basic",
		PriceCents:  1900,
		Description: "For creators publishing weekly.",
		Features:    []string{"10 videos per month", "10 GB storage", "Script and voiceover generation", "Weekly scheduling"},
		Limits:      models.PlanLimits{VideosPerMonth: 10, StorageGB: 10, SchedulingFrequency: "weekly"},
		Flags:       models.PlanFeatures{Scheduling: true},
	},
	{
		ID:          PlanPro,
		Name:        "Pro",
		PriceCents:  4900,
		Description: "For serious creators automating their channel.",
		Features:    []string{"50 videos per month", "100 GB storage", "Full generation suite", "Daily scheduling", "Analytics", "Channel creation"},
		Limits:      models.PlanLimits{VideosPerMonth: 50, StorageGB: 100, SchedulingFrequency: "daily"},
		Flags:       models.PlanFeatures{Scheduling: true, Analytics: true},
	},
	{
		ID:          PlanEnterprise,
		Name:        "Enterprise",
		PriceCents:  19900,
		Description: "For agencies running multiple channels.",
		Features:    []string{"Unlimited videos", "1 TB storage", "Full generation suite", "Hourly scheduling", "Analytics", "Channel creation", "Viral video rebranding"},
		Limits:      models.PlanLimits{VideosPerMonth: 1000, StorageGB: 1024, SchedulingFrequency: "hourly"},
		Flags:       models.PlanFeatures{Scheduling: true, Analytics: true, ViralVideoRebranding: true},
	},
}

// Plans returns the static plan definitions in display order.
func Plans() []models.Plan {
	out := make([]models.Plan, len(planTable))
	copy(out, planTable)
	return out
}

// PlanByID looks up a plan definition by identifier.
func PlanByID(id string) (models.Plan, bool) {
	for _, plan := range planTable {
		if plan.ID == id {
			return plan, true
		}
	}
	return models.Plan{}, false
}

// LimitsFor returns the limits of the plan, falling back to the free tier for
// unknown identifiers.
func LimitsFor(planID string) models.PlanLimits {
	if plan, ok := PlanByID(planID); ok {
		return plan.Limits
	}
	free, _ := PlanByID(PlanFree)
	return free.Limits
}

// IsPremium reports whether the plan unlocks channel creation.
func IsPremium(planID string) bool {
	return planID == PlanPro || planID == PlanEnterprise
}
