package core

import "math"

// Success thresholds on encounter effectiveness.
const (
	successfulEffectiveness = 2.0
	highImpactEffectiveness = 3.0
)

// ToolStats counts tool selection events by tier.
type ToolStats struct {
	Legacy int `json:"legacy"`
	Hybrid int `json:"hybrid"`
	AI     int `json:"ai"`
	Total  int `json:"total"`
}

// EncounterStats summarizes monster encounters.
type EncounterStats struct {
	Total                int     `json:"total"`
	Successful           int     `json:"successful"` // effectiveness > 2
	MultiTool            int     `json:"multiTool"`  // more than one tool used
	HighImpact           int     `json:"highImpact"` // effectiveness > 3
	AverageEffectiveness float64 `json:"averageEffectiveness"`
	EnergySpent          int     `json:"energySpent"`
}

// ProfileID identifies a researcher profile.
type ProfileID string

const (
	ProfileAIPioneer        ProfileID = "ai_pioneer"
	ProfileStrategicPlanner ProfileID = "strategic_planner"
	ProfilePragmaticAdopter ProfileID = "pragmatic_adopter"
	ProfileTraditional      ProfileID = "traditional_researcher"
	ProfileEmerging         ProfileID = "emerging_innovator"
)

// Profile is the qualitative label shown on the results screen.
type Profile struct {
	ID              ProfileID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Recommendations []string  `json:"recommendations"`
}

var profiles = map[ProfileID]Profile{
	ProfileAIPioneer: {
		ID:          ProfileAIPioneer,
		Name:        "AI Research Pioneer",
		Description: "You lead with AI and convert it into speed and results.",
		Recommendations: []string{
			"Mentor colleagues on AI-assisted workflows",
			"Explore agentic pipelines for systematic reviews",
		},
	},
	ProfileStrategicPlanner: {
		ID:          ProfileStrategicPlanner,
		Name:        "Strategic Planner",
		Description: "You pick routes and tools deliberately and it pays off.",
		Recommendations: []string{
			"Automate the planning steps you repeat",
			"Pair your planning with AI analysis tools",
		},
	},
	ProfilePragmaticAdopter: {
		ID:          ProfilePragmaticAdopter,
		Name:        "Pragmatic Adopter",
		Description: "You bring in AI where it clearly helps and keep what works.",
		Recommendations: []string{
			"Try an AI tool for one task you still do by hand",
			"Combine hybrid tools to cover more monster types",
		},
	},
	ProfileTraditional: {
		ID:          ProfileTraditional,
		Name:        "Traditional Researcher",
		Description: "Proven methods first; new tools have to earn their place.",
		Recommendations: []string{
			"Start with a reference manager or grammar assistant",
			"Run one low-risk AI experiment this month",
		},
	},
	ProfileEmerging: {
		ID:          ProfileEmerging,
		Name:        "Emerging Innovator",
		Description: "You are exploring the landscape and finding your footing.",
		Recommendations: []string{
			"Collect coins early to unlock better tools",
			"Equip tools before facing monsters",
		},
	},
}

// ProfileByID returns the profile record for an ID.
func ProfileByID(id ProfileID) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}

// Scores are the three 0-100 aggregate scores.
type Scores struct {
	Efficiency float64 `json:"efficiencyScore"`
	AIAdoption float64 `json:"aiAdoption"`
	Strategic  float64 `json:"strategicScore"`
}

// Results is the post-game analysis of a session log.
type Results struct {
	Scores
	ToolStats      ToolStats      `json:"toolStats"`
	EncounterStats EncounterStats `json:"encounterStats"`
	PathChoices    int            `json:"pathChoices"`
	PortalUses     int            `json:"portalUses"`
	TotalTime      int            `json:"totalTime"` // seconds
	Profile        Profile        `json:"profile"`
}

// Analyze reduces a session log to scores, statistics and a profile.
// Empty logs produce the lowest-tier scores.
func Analyze(d GameData) Results {
	tools := countTools(d.ToolSelections)
	encounters := summarizeEncounters(d.MonsterEncounters)
	portals := len(d.PortalUsage)
	paths := len(d.PathChoices)
	minutes := float64(d.TimeSpent) / 60

	selections := float64(max(1, tools.Total))
	aiShare := float64(tools.AI) / selections
	hybridShare := float64(tools.Hybrid) / selections
	successRate := float64(encounters.Successful) / float64(max(1, encounters.Total))

	scores := Scores{
		Efficiency: bound(40*successRate +
			30*aiShare +
			5*float64(portals) +
			math.Max(0, 25-5*minutes)),
		AIAdoption: bound(60*aiShare +
			30*hybridShare +
			2*float64(encounters.MultiTool)),
		Strategic: bound(15*float64(portals) +
			math.Min(20, 0.4*float64(paths)) +
			10*float64(encounters.HighImpact)),
	}

	return Results{
		Scores:         scores,
		ToolStats:      tools,
		EncounterStats: encounters,
		PathChoices:    paths,
		PortalUses:     portals,
		TotalTime:      d.TimeSpent,
		Profile:        ClassifyProfile(scores, tools),
	}
}

// ClassifyProfile picks the first matching profile in precedence order.
func ClassifyProfile(s Scores, tools ToolStats) Profile {
	switch {
	case s.AIAdoption >= 70 && s.Efficiency >= 80:
		return profiles[ProfileAIPioneer]
	case s.Strategic >= 70 && s.Efficiency >= 60:
		return profiles[ProfileStrategicPlanner]
	case s.AIAdoption >= 50 && s.AIAdoption < 70:
		return profiles[ProfilePragmaticAdopter]
	case tools.Legacy > tools.AI+tools.Hybrid:
		return profiles[ProfileTraditional]
	default:
		return profiles[ProfileEmerging]
	}
}

func countTools(selections []ToolSelection) ToolStats {
	var st ToolStats
	for _, sel := range selections {
		switch sel.ToolType {
		case ToolLegacy:
			st.Legacy++
		case ToolHybrid:
			st.Hybrid++
		case ToolAI:
			st.AI++
		}
	}
	st.Total = len(selections)
	return st
}

func summarizeEncounters(encounters []MonsterEncounter) EncounterStats {
	st := EncounterStats{Total: len(encounters)}
	var sum float64
	for _, e := range encounters {
		sum += e.Effectiveness
		st.EnergySpent += e.EnergyCost
		if e.Effectiveness > successfulEffectiveness {
			st.Successful++
		}
		if e.Effectiveness > highImpactEffectiveness {
			st.HighImpact++
		}
		if len(e.ToolsUsed) > 1 {
			st.MultiTool++
		}
	}
	if st.Total > 0 {
		st.AverageEffectiveness = sum / float64(st.Total)
	}
	return st
}

// bound clamps a score to [0, 100].
func bound(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
