package interpreter

import "fmt"

// systemPrompt anchors the extraction role. Kept separate from the user
// prompt so providers that distinguish system messages can use it.
const systemPrompt = "You are a helpful assistant that extracts nutritional requirements " +
	"from natural language and outputs only valid JSON."

// promptTemplate embeds the user text into a fixed instruction with
// few-shot examples and explicit unit conventions. The model is told to
// answer with only the structured object and to emit {} for off-topic
// input.
const promptTemplate = `Your goal is to extract nutritional, taste-based, and price information from user prompts in the form of a structured json object.
For example, the user might ask 'I want to eat something that has at least 30g of protein, less than 500 calories, is pretty spicy, and costs under $8.'
The response should be a json object with the following fields:
{
"spice_level": {"min": 3},
"calories": {"max": 500},
"protein": {"min": 30},
"price": {"max": 8},
"item": {"name": "burger"}
}
Respond only with the json object and nothing else. If a field is not mentioned in the prompt, it should be omitted from the response.

IMPORTANT: When the user mentions a specific food item name (like "burger", "Big Mac", "chicken sandwich", "salad", etc.), include it in the response as:
{"item": {"name": "food_name"}}
Items names do not necessarily have to be exact items, they can be generic food types as well (like "chicken", "fried chicken", "taco", "pizza" etc.)

You may include both "min" and "max" if the user specifies a range (for example, "between 400 and 600 calories" → "calories": {"min": 400, "max": 600}).

Assume these default units (convert if necessary):

calories → kcal

fats/protein/carbs/fiber/sugars → grams (g)

sodium/cholesterol → milligrams (mg)

price → USD ($) - extract numeric value only (e.g., "$5" or "5 dollars" → 5)

Here are some examples:
User prompt: "I want a meal with at least 20g of fiber and low sugar."
Response: {"fiber": {"min": 20}, "sugars": {"max": 10}}

User prompt: "Give me a dessert that's not too sweet and has under 300 calories."
Response: {"sugars": {"max": 15}, "calories": {"max": 300}}

User prompt: "Between 400 and 600 calories, high protein, no sugar."
Response: {"calories": {"min": 400, "max": 600}, "protein": {"min": 20}, "sugars": {"max": 0}}

User prompt: "Cheap meal under $5"
Response: {"price": {"max": 5}}

User prompt: "Show me meals between $8 and $12"
Response: {"price": {"min": 8, "max": 12}}

User prompt: "High protein lunch under $10"
Response: {"protein": {"min": 20}, "price": {"max": 10}}

User prompt: "Budget-friendly healthy meal"
Response: {"price": {"max": 7}, "calories": {"max": 600}}

User prompt: "Show me Big Mac nutritional information"
Response: {"item": {"name": "Big Mac"}}

User prompt: "I want a burger with high protein"
Response: {"item": {"name": "burger"}, "protein": {"min": 20}}

User prompt: "Find chicken sandwiches under 400 calories"
Response: {"item": {"name": "chicken sandwich"}, "calories": {"max": 400}}

Sample fields that are available in the database:
company:"McDonald's"
item:"Big N' Tasty with Cheese"
calories:510
caloriesFromFat:250
totalFat:28
saturatedFat:11
transFat:1.5
cholesterol:85
sodium:960
carbs:38
fiber:3
sugars:8
protein:27
weightWatchersPoints:502

Companies:
McDonald's,
Burger King,
Wendy's,
KFC,
Taco Bell,
Pizza Hut

If the user prompt is not related to food or nutrition, respond with an empty json object: {} and nothing else.

Now, here is the user prompt: %s
`

// buildPrompt embeds the user text into the instruction template.
func buildPrompt(userText string) string {
	return fmt.Sprintf(promptTemplate, userText)
}
