package magic

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Tradeable is an item that can change hands and be used on a target.
// Items are identified by GetID; two values with the same ID are the same item.
type Tradeable interface {
	core.Entity

	Price() int
	Weight() int
	UseOn(target Target) error
}

// Trader owns an inventory and a wallet.
//
// Every (bool, error) method returns an invalid argument error for nil items
// or negative amounts, and false when the business rule does not allow the
// action.
type Trader interface {
	Possesses(item Tradeable) (bool, error)
	CanAfford(amount int) (bool, error)
	HasCapacity(weight int) (bool, error)
	Pay(amount int) (bool, error)
	Earn(amount int) (bool, error)
	AddToInventory(item Tradeable) (bool, error)
	RemoveFromInventory(item Tradeable) (bool, error)

	CanSteal() bool
	Steal(thief Trader) (bool, error)
	IsLootable() bool
	CanLoot() bool
	Loot(looter Trader) (bool, error)
}

// PassiveTrader supplies the capability flags of a trader that can neither
// steal, loot nor be looted. Embed it by value.
type PassiveTrader struct{}

// CanSteal is always false
func (PassiveTrader) CanSteal() bool { return false }

// IsLootable is always false
func (PassiveTrader) IsLootable() bool { return false }

// CanLoot is always false
func (PassiveTrader) CanLoot() bool { return false }

// Give hands item from giver to taker without payment. It succeeds when the
// giver holds the item and the taker can carry it.
func Give(item Tradeable, giver, taker Trader) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item must not be nil")
	}
	if giver == nil || taker == nil {
		return false, errors.InvalidArgument("giver and taker must not be nil")
	}
	if giver == taker {
		return false, errors.InvalidArgument("giver and taker must not be the same trader")
	}

	owned, err := giver.Possesses(item)
	if err != nil || !owned {
		return false, err
	}
	fits, err := taker.HasCapacity(item.Weight())
	if err != nil || !fits {
		return false, err
	}

	return transfer(item, giver, taker)
}

// Purchase sells item from seller to buyer at its price.
//
// Settlement runs buyer.Pay, seller.Earn, then the transfer, and stops at the
// first step that reports false. Steps already applied are not rolled back, so
// a buyer can pay without receiving the item when a later step fails.
func Purchase(item Tradeable, seller, buyer Trader) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item must not be nil")
	}
	if seller == nil || buyer == nil {
		return false, errors.InvalidArgument("seller and buyer must not be nil")
	}
	if seller == buyer {
		return false, errors.InvalidArgument("seller and buyer must not be the same trader")
	}

	price := item.Price()

	owned, err := seller.Possesses(item)
	if err != nil || !owned {
		return false, err
	}
	affordable, err := buyer.CanAfford(price)
	if err != nil || !affordable {
		return false, err
	}
	fits, err := buyer.HasCapacity(item.Weight())
	if err != nil || !fits {
		return false, err
	}

	paid, err := buyer.Pay(price)
	if err != nil || !paid {
		return false, err
	}
	earned, err := seller.Earn(price)
	if err != nil || !earned {
		return false, err
	}

	return transfer(item, seller, buyer)
}

// transfer removes item from src and adds it to dest. When the add fails
// the item is gone.
func transfer(item Tradeable, src, dest Trader) (bool, error) {
	removed, err := src.RemoveFromInventory(item)
	if err != nil || !removed {
		return false, err
	}
	return dest.AddToInventory(item)
}
