package generation

// DefaultPrefixes qualify regular monster names
var DefaultPrefixes = []string{
	"Feral", "Ashen", "Gloom", "Rabid", "Hollow", "Bristling", "Mossy", "Cinder",
	"Frost", "Rotting", "Venomous", "Howling", "Shade", "Thorned", "Brine", "Storm",
}

// DefaultCreatures is the pool monster names are built from. It must hold at
// least RosterSize distinct entries so every roster can draw unique creatures.
var DefaultCreatures = []string{
	"Rat", "Wolf", "Boar", "Spider", "Bat", "Goblin", "Slime", "Wisp",
	"Serpent", "Ghoul", "Harpy", "Troll", "Wraith", "Golem", "Basilisk", "Drake",
	"Kobold", "Imp", "Gargoyle", "Lurker", "Stalker", "Revenant", "Mantis", "Crawler",
}

// DefaultBossTitles prefix the boss entry of each roster
var DefaultBossTitles = []string{
	"Elder", "Ancient", "Dread", "Sovereign", "Primal", "Abyssal", "Grand", "Tyrant",
}
