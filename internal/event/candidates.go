package event

// Fixed candidate tables per domain. The labels are presentation content;
// selection cares only about table length and order, so entries may be
// reworded but never reordered or removed within a release.
var candidates = map[Domain][]string{
	DomainFokus: {
		"Der Magier",
		"Die Hohepriesterin",
		"Die Herrscherin",
		"Der Eremit",
		"Das Rad des Schicksals",
		"Der Stern",
		"Die Mäßigkeit",
		"Die Sonne",
	},
	DomainBeruf: {
		"Sonne Trigon Jupiter",
		"Merkur Sextil Saturn",
		"Mars Konjunktion MC",
		"Venus Trigon Merkur",
		"Saturn Sextil Sonne",
		"Jupiter Konjunktion Merkur",
	},
	DomainLiebe: {
		"Venus Trigon Mond",
		"Mond Sextil Neptun",
		"Venus Konjunktion Sonne",
		"Ass der Kelche",
		"Zwei der Kelche",
		"Die Liebenden",
		"Mond Trigon Venus",
	},
	DomainEnergie: {
		"Mars Trigon Sonne",
		"Mond Sextil Mars",
		"Der Wagen",
		"Die Kraft",
		"Sonne Sextil Uranus",
		"Mars Sextil Jupiter",
	},
	DomainSozial: {
		"Das Empfangende",
		"Frieden",
		"Die Wiederkehr",
		"Innere Wahrheit",
		"Gemeinschaft mit Menschen",
		"Das Auftreten",
	},
}
