// Package testhelpers provides catalog fixtures and assertions shared by the
// package tests.
package testhelpers

// SampleCatalog is a small payload covering every field shape: named and
// custom classes, unnamed items, sets, the "None" slot and null arrays.
// Load order is 10, 4, 7, 1, 12.
const SampleCatalog = `[
	{"id": 10, "name": "Flamestrike Staff", "class": "Weapon", "subclass": "Staves",
	 "inventory_icon": "inv_staff_01", "inventory_type": "TwoHand", "set": null,
	 "required_level": 15, "stats": ["+10 Intellect"], "spells": ["Fire", "Ice"],
	 "requires": [], "rarity": "Epic", "hands": "Two-Hand", "damage": "40 - 61 Damage",
	 "speed": "Speed 3.20", "dps": "(15.8 damage per second)", "bonding": "Binds when equipped"},
	{"id": 4, "name": "<unknown>", "class": {"Custom": 14}, "subclass": "",
	 "inventory_icon": "", "inventory_type": "None", "set": null, "required_level": 25,
	 "stats": null, "spells": null, "requires": null, "rarity": "Poor"},
	{"id": 7, "name": "Valor Helm", "class": "Armor", "subclass": "Plate",
	 "inventory_icon": "inv_helmet_01", "inventory_type": "Head",
	 "set": {"name": "Battlegear of Valor", "id": 210, "spells": [[2, "+200 Armor"], [4, "+40 Attack Power"]]},
	 "required_level": 10, "stats": ["+20 Stamina"], "spells": [], "requires": ["Warrior"],
	 "rarity": "Rare", "armor": "540 Armor"},
	{"id": 1, "name": "<unknown>", "class": "Armor", "subclass": "Cloth",
	 "inventory_icon": "inv_fire_robe", "inventory_type": "Chest", "set": null,
	 "required_level": 20, "stats": [], "spells": ["Fire resistance"], "requires": [],
	 "rarity": "Rare"},
	{"id": 12, "name": "Ironwood Shield", "class": "Armor", "subclass": "Shield",
	 "inventory_icon": "inv_shield_05", "inventory_type": "Off Hand", "set": null,
	 "required_level": 0, "stats": ["+5 Stamina"], "spells": [], "requires": [],
	 "rarity": "Uncommon"}
]`

// SampleIDs is the load order of SampleCatalog
var SampleIDs = []int{10, 4, 7, 1, 12}

// ChangedCatalog is SampleCatalog with one item removed
const ChangedCatalog = `[
	{"id": 10, "name": "Flamestrike Staff", "class": "Weapon", "subclass": "Staves",
	 "inventory_icon": "inv_staff_01", "inventory_type": "TwoHand", "set": null,
	 "required_level": 15, "stats": [], "spells": [], "requires": [], "rarity": "Epic"},
	{"id": 7, "name": "Valor Helm", "class": "Armor", "subclass": "Plate",
	 "inventory_icon": "inv_helmet_01", "inventory_type": "Head", "set": null,
	 "required_level": 10, "stats": [], "spells": [], "requires": [], "rarity": "Rare"}
]`
