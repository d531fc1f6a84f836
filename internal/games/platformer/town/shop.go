package town

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Item is something the shop sells.
type Item int

const (
	ItemArmour Item = iota
	ItemMedicine
)

func (i Item) String() string {
	switch i {
	case ItemArmour:
		return "Armour"
	case ItemMedicine:
		return "Medicine"
	default:
		return "Unknown"
	}
}

// Offer is an item with its price under the active difficulty.
type Offer struct {
	Item  Item
	Price int
}

// Shop is the modal purchase menu.
type Shop struct {
	Open   bool
	Cursor int
	Offers []Offer
}

func newShop(cfg config.ShopConfig, profile config.DifficultyProfile) *Shop {
	return &Shop{
		Offers: []Offer{
			{Item: ItemArmour, Price: profile.Price(cfg.ArmourPrice)},
			{Item: ItemMedicine, Price: profile.Price(cfg.MedicinePrice)},
		},
	}
}

// Selected returns the offer under the cursor.
func (s *Shop) Selected() Offer {
	return s.Offers[s.Cursor]
}

func (s *Shop) move(delta int) {
	n := len(s.Offers)
	s.Cursor = ((s.Cursor+delta)%n + n) % n
}

// buy applies an offer to the hero profile. It reports false and leaves the
// profile untouched when the hero cannot afford it or would gain nothing.
func buy(p *world.HeroProfile, o Offer, hc config.HeroConfig) bool {
	if p.Coins < o.Price {
		return false
	}
	switch o.Item {
	case ItemArmour:
		if p.Armour >= hc.MaxArmour {
			return false
		}
		p.Armour++
	case ItemMedicine:
		if p.Hearts >= hc.MaxHearts {
			return false
		}
		p.Hearts = hc.MaxHearts
	default:
		return false
	}
	p.Coins -= o.Price
	return true
}
