package assistant

// Canned answers. Edit freely; the matching rules live in assistant.go.

const greeting = "Hello! I'm your cooking assistant. I can help you with recipe suggestions, " +
	"cooking tips, ingredient substitutions, and answer any cooking questions you might have. " +
	"What would you like to know?"

const answerPasta = `To cook pasta perfectly:

1. Use a large pot with plenty of water (4-6 quarts for 1 pound pasta)
2. Add salt to the water (about 1-2 tablespoons per pound)
3. Bring water to a rolling boil before adding pasta
4. Cook according to package directions, but test 2 minutes before
5. Reserve 1 cup of pasta water before draining
6. Drain pasta but don't rinse (unless making a cold salad)
7. Toss immediately with sauce and reserved water if needed`

const answerEggSubstitute = `Here are great egg substitutes:

• 1/4 cup applesauce = 1 egg (for baking)
• 1/4 cup mashed banana = 1 egg (for baking)
• 1 tablespoon ground flaxseed + 3 tablespoons water = 1 egg
• 1/4 cup silken tofu = 1 egg
• 1/4 cup yogurt = 1 egg
• Commercial egg replacers (follow package directions)

Note: Substitutes work best in baking, not for dishes that rely on eggs for structure like omelets.`

const answerRoux = `A roux is a mixture of equal parts fat and flour used to thicken sauces and soups:

1. Melt butter or heat oil in a pan over medium heat
2. Add an equal amount of flour (e.g., 2 tbsp butter + 2 tbsp flour)
3. Cook while stirring constantly:
   • White roux: 2-3 minutes (for white sauces)
   • Blond roux: 5-6 minutes (for velouté)
   • Brown roux: 8-10 minutes (for gumbo, darker sauces)
4. Gradually whisk in liquid (milk, stock, etc.)
5. Continue cooking until thickened`

const answerSeasonChicken = `Here's how to season chicken perfectly:

Basic Seasoning:
• Salt and pepper (essential!)
• Garlic powder and onion powder
• Paprika for color and mild heat

Flavor Profiles:
• Italian: Basil, oregano, rosemary, thyme
• Mexican: Cumin, chili powder, oregano, lime
• Asian: Ginger, soy sauce, sesame oil, garlic
• Mediterranean: Lemon, herbs de Provence, olive oil

Tips:
• Season generously - chicken needs more salt than you think
• Let seasoned chicken rest 15-30 minutes before cooking
• Season both sides and under the skin if possible`

const answerOnionCry = `To prevent crying when cutting onions:

Before Cutting:
• Chill onions in the fridge for 30 minutes
• Cut under running water (not recommended for precision)
• Use a very sharp knife (dull knives crush more cells)
• Wear contact lenses or swimming goggles

While Cutting:
• Cut near a fan or open window
• Light a candle nearby (burns the sulfur compounds)
• Chew gum or bread
• Cut the root end last (contains most irritants)

Best Method:
Cut off the top, peel, then cut in half from top to bottom. Lay flat and make horizontal cuts, then vertical cuts. This minimizes cell damage.`

const answerBakingSoda = `Baking Soda vs Baking Powder:

Baking Soda (Sodium Bicarbonate):
• Single-acting (reacts immediately with acid)
• Requires acidic ingredients (buttermilk, yogurt, vinegar, lemon juice)
• Use 1/4 teaspoon per cup of flour
• Creates carbon dioxide bubbles for rise

Baking Powder:
• Double-acting (reacts twice - when mixed and when heated)
• Contains its own acid
• Use 1 teaspoon per cup of flour
• More forgiving in recipes

Key Difference:
Baking soda needs acid to work, baking powder doesn't. Never substitute 1:1!`

const answerNoRecipes = "I'd love to suggest recipes, but you haven't added any to your collection yet! " +
	"Try adding some recipes first, and then I can help you discover new dishes based on what you like to cook."

// answerSuggestion is formatted with name, difficulty, cuisine, minutes and collection size.
const answerSuggestion = "Based on your recipe collection, I'd recommend trying %s! It's a %s %s dish " +
	"that takes %d minutes to prepare. You have %d recipes in your collection - would you like me to " +
	"suggest something specific based on ingredients or cooking time?"

// answerTip is formatted with one of tips.
const answerTip = "Here's a great cooking tip: %s\n\nWould you like more tips on a specific cooking technique or ingredient?"

const answerFallback = `That's an interesting question! I'm here to help with cooking techniques, recipe suggestions, ingredient substitutions, and general cooking advice. Could you be more specific about what you'd like to know? I can help with things like:

• Cooking techniques and methods
• Ingredient substitutions
• Recipe suggestions from your collection
• Cooking tips and tricks
• Troubleshooting cooking problems`

var quickQuestions = []string{
	"How do I cook pasta perfectly?",
	"What can I substitute for eggs?",
	"How do I make a roux?",
	"What's the best way to season chicken?",
	"How do I prevent onions from making me cry?",
	"What's the difference between baking soda and baking powder?",
}

var tips = []string{
	"Always read the recipe completely before starting",
	"Prep all ingredients before cooking (mise en place)",
	"Taste as you cook and adjust seasoning",
	"Don't overcrowd the pan when sautéing",
	"Let meat rest after cooking",
	"Use a timer for precise cooking times",
}
