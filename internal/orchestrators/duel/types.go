package duel

import (
	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
)

// CreateWizardInput defines the request for creating a wizard
type CreateWizardInput struct {
	Name          string
	Level         magic.Level
	BaseHP        int
	HP            int
	BaseMP        int
	MP            int
	Money         int
	Capacity      int
	KnownSpells   []spells.Spell
	ProtectedFrom []string
	Inventory     []items.Item
}

// CreateWizardOutput defines the response for creating a wizard
type CreateWizardOutput struct {
	Wizard *wizard.Wizard
}

// GetWizardInput defines the request for loading a wizard
type GetWizardInput struct {
	ID string
}

// GetWizardOutput defines the response for loading a wizard
type GetWizardOutput struct {
	Wizard *wizard.Wizard
}

// ListWizardsInput defines the request for listing wizards
type ListWizardsInput struct{}

// ListWizardsOutput defines the response for listing wizards
type ListWizardsOutput struct {
	Wizards []*wizard.Wizard
}

// DeleteWizardInput defines the request for removing a wizard
type DeleteWizardInput struct {
	ID string
}

// DeleteWizardOutput defines the response for removing a wizard
type DeleteWizardOutput struct{}

// LearnSpellInput defines the request for teaching a wizard a spell
type LearnSpellInput struct {
	WizardID string
	Spell    spells.Spell
}

// LearnSpellOutput defines the response for teaching a wizard a spell
type LearnSpellOutput struct {
	Learned bool
	Wizard  *wizard.Wizard
}

// ForgetSpellInput defines the request for making a wizard forget a spell
type ForgetSpellInput struct {
	WizardID string
	SpellID  string
}

// ForgetSpellOutput defines the response for making a wizard forget a spell
type ForgetSpellOutput struct {
	Forgotten bool
	Wizard    *wizard.Wizard
}

// CastSpellInput defines the request for casting a known spell.
// CasterID and TargetID may be the same.
type CastSpellInput struct {
	CasterID string
	TargetID string
	SpellID  string
}

// CastSpellOutput defines the response for casting a spell
type CastSpellOutput struct {
	// Cast reports whether the cast was attempted
	Cast   bool
	Caster *wizard.Wizard
	Target *wizard.Wizard
}

// CastRandomSpellInput defines the request for casting a random known spell
type CastRandomSpellInput struct {
	CasterID string
	TargetID string
}

// UseItemInput defines the request for using a carried item.
// WizardID and TargetID may be the same.
type UseItemInput struct {
	WizardID string
	TargetID string
	ItemID   string
}

// UseItemOutput defines the response for using an item
type UseItemOutput struct {
	Used   bool
	Wizard *wizard.Wizard
	Target *wizard.Wizard
}

// UseRandomItemInput defines the request for using a random carried item
type UseRandomItemInput struct {
	WizardID string
	TargetID string
}

// SellItemInput defines the request for selling a carried item
type SellItemInput struct {
	SellerID string
	BuyerID  string
	ItemID   string
}

// SellItemOutput defines the response for selling an item
type SellItemOutput struct {
	Sold   bool
	Seller *wizard.Wizard
	Buyer  *wizard.Wizard
}

// SellRandomItemInput defines the request for selling a random carried item
type SellRandomItemInput struct {
	SellerID string
	BuyerID  string
}

// GiveItemInput defines the request for giving an item away
type GiveItemInput struct {
	GiverID string
	TakerID string
	ItemID  string
}

// GiveItemOutput defines the response for giving an item away
type GiveItemOutput struct {
	Given bool
	Giver *wizard.Wizard
	Taker *wizard.Wizard
}

// StealInput defines the request for a thief stealing from a victim
type StealInput struct {
	VictimID string
	ThiefID  string
}

// StealOutput defines the response for a theft
type StealOutput struct {
	Stolen bool
	Victim *wizard.Wizard
	Thief  *wizard.Wizard
}

// LootInput defines the request for a looter emptying a dead victim
type LootInput struct {
	VictimID string
	LooterID string
}

// LootOutput defines the response for looting
type LootOutput struct {
	Looted bool
	Victim *wizard.Wizard
	Looter *wizard.Wizard
}
