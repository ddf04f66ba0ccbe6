package voice

type numeral struct {
	word  string
	value int
}

// Categories a parsed food name can map to.
const (
	CategoryDairy      = "Latticini"
	CategoryMeat       = "Carne"
	CategoryFish       = "Pesce"
	CategoryFruit      = "Frutta"
	CategoryVegetables = "Verdure"
	CategoryCereals    = "Cereali"
	CategoryOther      = "Altro"
)

// Storage locations a transcript can name.
const (
	LocationFridge  = "Frigorifero"
	LocationFreezer = "Freezer"
	LocationPantry  = "Dispensa"
)

// Iteration order matters: the first numeral that matches wins.
var numerals = []numeral{
	{"uno", 1}, {"una", 1}, {"due", 2}, {"tre", 3}, {"quattro", 4}, {"cinque", 5},
	{"sei", 6}, {"sette", 7}, {"otto", 8}, {"nove", 9}, {"dieci", 10},
	{"quindici", 15}, {"venti", 20}, {"trenta", 30},
}

// Iteration order matters for equal-length matches.
var foodVocabulary = []string{
	"latte", "pane", "mele", "pomodori", "carne", "pesce", "formaggio", "yogurt", "pasta", "riso",
	"insalata", "lattuga", "verdure", "carote", "patate", "cipolle", "aglio",
	"prosciutto", "salame", "mortadella", "bresaola",
	"banana", "arance", "limoni", "kiwi", "fragole", "uva",
	"pollo", "manzo", "maiale", "vitello",
	"salmone", "tonno", "orata", "branzino",
	"mozzarella", "parmigiano", "gorgonzola", "ricotta",
	"biscotti", "crackers", "grissini",
	"olio", "aceto", "sale", "zucchero", "farina",
	"uova", "burro", "margarina",
}

var stopWords = map[string]struct{}{
	"che": {}, "tra": {}, "per": {}, "con": {}, "nel": {}, "dal": {}, "del": {},
	"della": {}, "delle": {}, "dei": {}, "degli": {},
	"scade": {}, "scadenza": {}, "giorni": {}, "giorno": {},
	"aggiungi": {}, "inserisci": {},
}

var foodCategories = map[string]string{
	"latte": CategoryDairy, "formaggio": CategoryDairy, "yogurt": CategoryDairy,
	"mozzarella": CategoryDairy, "parmigiano": CategoryDairy, "gorgonzola": CategoryDairy,
	"ricotta": CategoryDairy, "burro": CategoryDairy, "margarina": CategoryDairy,

	"carne": CategoryMeat, "pollo": CategoryMeat, "manzo": CategoryMeat, "maiale": CategoryMeat,
	"vitello": CategoryMeat, "prosciutto": CategoryMeat, "salame": CategoryMeat,
	"mortadella": CategoryMeat, "bresaola": CategoryMeat,

	"pesce": CategoryFish, "salmone": CategoryFish, "tonno": CategoryFish,
	"orata": CategoryFish, "branzino": CategoryFish,

	"mele": CategoryFruit, "banana": CategoryFruit, "arance": CategoryFruit,
	"limoni": CategoryFruit, "kiwi": CategoryFruit, "fragole": CategoryFruit, "uva": CategoryFruit,

	"pomodori": CategoryVegetables, "insalata": CategoryVegetables, "lattuga": CategoryVegetables,
	"verdure": CategoryVegetables, "carote": CategoryVegetables, "patate": CategoryVegetables,
	"cipolle": CategoryVegetables, "aglio": CategoryVegetables,

	"pane": CategoryCereals, "pasta": CategoryCereals, "riso": CategoryCereals,
	"biscotti": CategoryCereals, "crackers": CategoryCereals, "grissini": CategoryCereals,
	"farina": CategoryCereals,

	"uova": CategoryOther, "olio": CategoryOther, "aceto": CategoryOther,
	"sale": CategoryOther, "zucchero": CategoryOther,
}

// Evaluated in order; the first rule with a matching cue wins.
var locationRules = []struct {
	cues     []string
	location string
}{
	{[]string{"frigorifero", "frigo"}, LocationFridge},
	{[]string{"freezer", "congelatore"}, LocationFreezer},
	{[]string{"dispensa", "credenza"}, LocationPantry},
	{[]string{"cassetto"}, LocationFridge},
}

// CategoryFor maps a food name to its category, defaulting to CategoryOther.
func CategoryFor(name string) string {
	if c, ok := foodCategories[name]; ok {
		return c
	}
	return CategoryOther
}

// Categories returns the closed set of categories in display order.
func Categories() []string {
	return []string{
		CategoryDairy, CategoryMeat, CategoryFish, CategoryFruit,
		CategoryVegetables, CategoryCereals, CategoryOther,
	}
}
