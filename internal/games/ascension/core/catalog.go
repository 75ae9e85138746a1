package core

import (
	"encoding/json"
)

// EffectivenessTable holds a tool's multiplier against every monster type.
// Indexing by MonsterType keeps the table exhaustive.
type EffectivenessTable [monsterTypeCount]float64

// Against returns the multiplier for the given monster type.
// Out-of-range types fall back to the neutral multiplier 1.
func (e EffectivenessTable) Against(m MonsterType) float64 {
	if m >= monsterTypeCount {
		return 1
	}
	return e[m]
}

// MarshalJSON encodes the table as an object keyed by monster type name.
func (e EffectivenessTable) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(e))
	for i, v := range e {
		out[MonsterType(i).String()] = v
	}
	return json.Marshal(out)
}

// Tool is an equippable catalog entry. The catalog is static reference data.
type Tool struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Type            ToolType           `json:"type"`
	Category        string             `json:"category"`
	Description     string             `json:"description"`
	Cost            int                `json:"cost"`
	RequiredMastery float64            `json:"requiredMastery"`
	Effectiveness   EffectivenessTable `json:"effectiveness"`
	SpeedMultiplier float64            `json:"speedMultiplier"`
	EnergyCost      int                `json:"energyCost"`
}

// Tool categories.
const (
	CategoryLiterature = "literature"
	CategoryAnalysis   = "analysis"
	CategoryWriting    = "writing"
)

var catalog = []Tool{
	{
		ID: "manual_search", Name: "Manual Literature Search", Type: ToolLegacy, Category: CategoryLiterature,
		Description: "Library stacks and keyword queries, one paper at a time.",
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.6, GrantGremlin: 0.3, DataBeast: 0.2, DeadlineDragon: 0.3,
		},
		SpeedMultiplier: 1.0, EnergyCost: 5,
	},
	{
		ID: "spreadsheet", Name: "Spreadsheet", Type: ToolLegacy, Category: CategoryAnalysis,
		Description: "Rows, columns and a lot of copy-paste.",
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.2, GrantGremlin: 0.4, DataBeast: 0.6, DeadlineDragon: 0.3,
		},
		SpeedMultiplier: 1.0, EnergyCost: 5,
	},
	{
		ID: "word_processor", Name: "Word Processor", Type: ToolLegacy, Category: CategoryWriting,
		Description: "Track changes and version_final_v7.docx.",
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.3, GrantGremlin: 0.6, DataBeast: 0.1, DeadlineDragon: 0.4,
		},
		SpeedMultiplier: 1.0, EnergyCost: 5,
	},
	{
		ID: "reference_manager", Name: "Reference Manager", Type: ToolHybrid, Category: CategoryLiterature,
		Description: "Organised libraries with smart recommendations.",
		Cost: 1, RequiredMastery: 5,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 1.2, GrantGremlin: 0.5, DataBeast: 0.4, DeadlineDragon: 0.6,
		},
		SpeedMultiplier: 1.3, EnergyCost: 4,
	},
	{
		ID: "stats_package", Name: "Statistics Package", Type: ToolHybrid, Category: CategoryAnalysis,
		Description: "Scripted analyses with assisted model selection.",
		Cost: 1, RequiredMastery: 5,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.4, GrantGremlin: 0.6, DataBeast: 1.3, DeadlineDragon: 0.5,
		},
		SpeedMultiplier: 1.3, EnergyCost: 4,
	},
	{
		ID: "grammar_assistant", Name: "Grammar Assistant", Type: ToolHybrid, Category: CategoryWriting,
		Description: "Style and clarity suggestions while you write.",
		Cost: 1, RequiredMastery: 5,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.6, GrantGremlin: 1.1, DataBeast: 0.3, DeadlineDragon: 0.8,
		},
		SpeedMultiplier: 1.3, EnergyCost: 4,
	},
	{
		ID: "ai_literature_review", Name: "AI Literature Review", Type: ToolAI, Category: CategoryLiterature,
		Description: "Semantic search and synthesis across thousands of papers.",
		Cost: 2, RequiredMastery: 15,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 2.0, GrantGremlin: 0.8, DataBeast: 0.9, DeadlineDragon: 1.2,
		},
		SpeedMultiplier: 1.8, EnergyCost: 3,
	},
	{
		ID: "ai_data_analyst", Name: "AI Data Analyst", Type: ToolAI, Category: CategoryAnalysis,
		Description: "Conversational analysis, cleaning and visualisation.",
		Cost: 2, RequiredMastery: 15,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 0.8, GrantGremlin: 0.9, DataBeast: 2.0, DeadlineDragon: 1.1,
		},
		SpeedMultiplier: 1.8, EnergyCost: 3,
	},
	{
		ID: "ai_writing_copilot", Name: "AI Writing Copilot", Type: ToolAI, Category: CategoryWriting,
		Description: "Drafts, restructures and polishes proposals with you.",
		Cost: 2, RequiredMastery: 15,
		Effectiveness: EffectivenessTable{
			PaperAvalanche: 1.0, GrantGremlin: 1.8, DataBeast: 0.6, DeadlineDragon: 1.5,
		},
		SpeedMultiplier: 1.8, EnergyCost: 3,
	},
}

// Tools returns a copy of the tool catalog in display order.
func Tools() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// ToolByID looks up a catalog tool.
func ToolByID(id string) (Tool, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Monster is an obstacle record attached to a monster cell.
type Monster struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        MonsterType `json:"type"`
	Health      int         `json:"health"`
	EnergyDrain int         `json:"energyDrain"`
	Glyph       rune        `json:"-"`
	Description string      `json:"description"`
}

var archetypes = [monsterTypeCount]Monster{
	PaperAvalanche: {
		Name: "Paper Avalanche", Type: PaperAvalanche, Health: 30, EnergyDrain: 20, Glyph: 'P',
		Description: "A landslide of unread PDFs burying the path.",
	},
	GrantGremlin: {
		Name: "Grant Gremlin", Type: GrantGremlin, Health: 40, EnergyDrain: 25, Glyph: 'G',
		Description: "Chews through budgets and rewrites your aims page.",
	},
	DataBeast: {
		Name: "Data Beast", Type: DataBeast, Health: 50, EnergyDrain: 30, Glyph: 'D',
		Description: "Raw, messy datasets with missing values everywhere.",
	},
	DeadlineDragon: {
		Name: "Deadline Dragon", Type: DeadlineDragon, Health: 60, EnergyDrain: 35, Glyph: 'X',
		Description: "Breathes submission portals that close at midnight.",
	},
}

// NewMonster synthesizes a monster record of the given type.
func NewMonster(id string, t MonsterType) Monster {
	m := archetypes[t%monsterTypeCount]
	m.ID = id
	return m
}

// Portal is the exit record attached to the goal cell.
type Portal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Destination int    `json:"destination"` // level unlocked by passing through
	Description string `json:"description"`
}
