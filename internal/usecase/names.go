package usecase

// Name pools for procedural generation. Combinations are sampled without
// replacement so every card, team and GM name in a league is unique.

var cardNamePrefixes = []string{
	"Royal", "Mega", "Dark", "Elite", "Skeleton", "Electro", "Inferno",
	"Frost", "Goblin", "Giant", "Shadow", "Crystal", "Thunder", "Lava",
	"Arcane", "Wild", "Iron", "Phantom", "Storm", "Ancient",
}

var cardNameBases = []string{
	"Knight", "Archer", "Golem", "Witch", "Dragon", "Hound", "Wizard",
	"Prince", "Valkyrie", "Miner", "Barbarian", "Executioner", "Bandit",
	"Healer", "Sentinel", "Ram", "Marauder", "Colossus", "Warden", "Seer",
}

var teamCities = []string{
	"Arena", "Harbor", "Summit", "Canyon", "Ember", "Frostfall", "Oasis",
	"Thorn", "Gale", "Cinder", "Marsh", "Aurora", "Drift", "Hollow",
	"Bastion", "Meridian", "Vanguard", "Zephyr", "Obsidian", "Crag",
	"Tempest", "Willow", "Sable", "Quartz", "Verdant", "Onyx", "Solstice",
	"Rook", "Titan", "Lumen",
}

var teamMascots = []string{
	"Kings", "Raiders", "Spirits", "Wolves", "Chargers", "Outlaws",
	"Monarchs", "Reapers", "Guardians", "Crushers", "Heralds", "Nomads",
	"Wraiths", "Pioneers", "Stingers", "Juggernauts", "Falcons", "Vipers",
	"Warlocks", "Raptors", "Gladiators", "Scorpions", "Sentries", "Rhinos",
	"Drakes", "Pumas", "Specters", "Mammoths", "Cobras", "Griffins",
}

var gmFirstNames = []string{
	"Avery", "Blake", "Casey", "Devon", "Ellis", "Finley", "Gray",
	"Harper", "Indigo", "Jules", "Kendall", "Logan", "Morgan", "Noel",
	"Oakley", "Parker", "Quinn", "Reese", "Sawyer", "Tatum", "Urban",
	"Vesper", "Winter", "Xen", "Yael", "Zion", "Arden", "Briar", "Cove",
	"Dane",
}

var gmLastNames = []string{
	"Ashford", "Briggs", "Calloway", "Draper", "Ellington", "Foss",
	"Granger", "Hale", "Irons", "Jennings", "Keats", "Lockhart", "Mercer",
	"North", "Osborne", "Pike", "Quill", "Rutherford", "Slate", "Thorne",
	"Underwood", "Vance", "Whitlock", "Xiong", "York", "Zane", "Abbot",
	"Blackwood", "Crane", "Dunmore",
}

var gmPersonalities = []string{
	"ruthless negotiator", "stat sheet obsessive", "loyal to a fault",
	"chaos merchant", "quiet tactician", "headline chaser",
	"old-school scout", "spreadsheet visionary",
}

var patchBuffReactions = []string{
	"The balance team finally showed %s some love.",
	"%s mains are eating well this patch.",
	"Nobody saw the %s buff coming.",
}

var patchNerfReactions = []string{
	"%s was terrorizing ladder. Justice served.",
	"The %s nerf hammer has fallen.",
	"GMs everywhere breathe easier: %s got toned down.",
}

var highlightTemplates = []string{
	"%s tore through the bridge for a crown!",
	"%s countered everything and slammed a crown home.",
	"An unstoppable push from %s sealed a crown.",
	"%s baited the counter and punished for a crown.",
}
