package dnd5e

// Location is a named equipment slot on a character
type Location string

// Equipment locations
const (
	LocationMainHand Location = "main_hand"
	LocationOffHand  Location = "off_hand"
	LocationHead     Location = "head"
	LocationNeck     Location = "neck"
	LocationCloak    Location = "cloak"
	LocationArmor    Location = "armor"
	LocationClothes  Location = "clothes"
	LocationBelt     Location = "belt"
	LocationHands    Location = "hands"
	LocationRing1    Location = "ring_1"
	LocationRing2    Location = "ring_2"
	LocationFeet     Location = "feet"
	LocationBackpack Location = "backpack"
)

// Locations lists every valid location
var Locations = []Location{
	LocationMainHand,
	LocationOffHand,
	LocationHead,
	LocationNeck,
	LocationCloak,
	LocationArmor,
	LocationClothes,
	LocationBelt,
	LocationHands,
	LocationRing1,
	LocationRing2,
	LocationFeet,
	LocationBackpack,
}

// IsValid reports whether l is a known location
func (l Location) IsValid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// IsEquipped reports whether an item at l counts as equipped
func (l Location) IsEquipped() bool {
	return l != LocationBackpack
}
