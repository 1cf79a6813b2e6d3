package usecase

// Default lookup tables for the tokenizer and matcher. These are injected at
// construction time so tests can substitute smaller tables; the defaults are
// the production values used by the curation scripts.

// defaultStopWords are dropped during tokenization (units and filler words
// common in ingredient lists).
var defaultStopWords = []string{
	"the", "and", "with", "for", "cup", "tbsp", "tsp", "fresh", "raw", "organic",
}

// defaultIngredientSynonyms maps a canonical ingredient to its alternate
// surface forms for better matching.
var defaultIngredientSynonyms = map[string][]string{
	"dragonfruit": {"pitaya", "dragon fruit"},
	"chickpea":    {"garbanzo", "chick pea", "chickpeas", "garbanzos"},
	"quinoa":      {"keen-wah", "quinoa grain"},
	"acai":        {"acai berry", "açaí", "acai puree"},
	"goji":        {"goji berry", "wolfberry", "goji berries"},
	"chia":        {"chia seed", "chia seeds"},
	"cacao":       {"cocoa", "chocolate", "dark chocolate"},
	"coconut":     {"coconut milk", "coconut flakes", "coconut oil"},
	"almond":      {"almonds", "almond butter", "chopped almonds"},
	"avocado":     {"avocados", "avo"},
	"broccoli":    {"broccoli florets"},
	"cauliflower": {"cauliflower rice", "cauliflower florets"},
	"spinach":     {"baby spinach", "spinach leaves"},
	"kale":        {"kale leaves", "baby kale"},
	"salmon":      {"atlantic salmon", "wild salmon"},
	"chicken":     {"chicken breast", "chicken thigh"},
	"beef":        {"ground beef", "beef strips"},
	"tofu":        {"firm tofu", "silken tofu"},
	"mushroom":    {"mushrooms", "shiitake", "portobello"},
	"bell pepper": {"red pepper", "yellow pepper", "green pepper", "peppers"},
	"tomato":      {"tomatoes", "cherry tomatoes", "roma tomatoes"},
	"onion":       {"onions", "red onion", "white onion", "yellow onion"},
	"garlic":      {"garlic clove", "garlic cloves"},
	"lemon":       {"lemon juice", "lemon zest"},
	"lime":        {"lime juice", "lime zest"},
	"ginger":      {"fresh ginger", "ginger root"},
	"turmeric":    {"turmeric powder", "fresh turmeric"},
	"basil":       {"fresh basil", "basil leaves"},
	"cilantro":    {"fresh cilantro", "coriander"},
	"parsley":     {"fresh parsley", "parsley leaves"},
}

// defaultMealCategories maps a meal category to dish keywords expected in a
// matching image's tokens.
var defaultMealCategories = map[string][]string{
	"breakfast": {"bowl", "smoothie", "parfait", "toast", "eggs", "pancakes", "oatmeal"},
	"lunch":     {"salad", "wrap", "sandwich", "soup", "bowl"},
	"dinner":    {"stir fry", "pasta", "curry", "roast", "casserole", "pizza"},
	"snack":     {"bites", "chips", "crackers", "bars"},
	"dessert":   {"ice cream", "cake", "cookies", "pudding", "mousse"},
	"beverage":  {"smoothie", "juice", "tea", "latte", "water"},
}

// defaultForbiddenMismatches are high-risk ingredients that must not appear in
// an image unless the recipe actually calls for them.
var defaultForbiddenMismatches = []string{
	"dragonfruit", "pitaya",
	"quinoa", "buckwheat",
	"pork", "bacon", "ham",
	"shellfish", "shrimp", "crab", "lobster",
	"alcohol", "wine", "beer",
	"dairy", "milk", "cheese", "yogurt",
	"wheat", "bread", "pasta",
	"rice",
	"sweet potato", "potato",
}

// defaultCategoryPatterns are looser filename patterns used by the category
// fallback matcher when no candidate clears the primary score floor.
var defaultCategoryPatterns = map[string][]string{
	"breakfast": {"breakfast", "morning", "bowl", "smoothie", "parfait", "eggs", "oatmeal"},
	"lunch":     {"lunch", "salad", "bowl", "wrap", "sandwich", "soup"},
	"dinner":    {"dinner", "plate", "stir", "curry", "pasta", "roast", "grill"},
	"snack":     {"snack", "bite", "ball", "chip", "bar", "energy"},
	"dessert":   {"dessert", "sweet", "cake", "ice", "cream", "mousse"},
	"beverage":  {"drink", "smoothie", "juice", "tea", "coffee", "latte"},
}

// defaultProteins are the protein keywords the category fallback looks for in
// both recipe and image tokens.
var defaultProteins = []string{"chicken", "beef", "fish", "salmon", "turkey", "tofu", "egg"}
