// Package hello implements the greeting recipe.
package hello

import "github.com/Lllllllleong/functionrecipes/internal/recipe"

// DefaultName is greeted when the event carries no name.
const DefaultName = "satoshi"

// Handle returns {"greetings": "Hello <name>!"}.
func Handle(event recipe.Event) recipe.Response {
	name := event.StringOr("name", DefaultName)
	return recipe.OK(map[string]any{
		"greetings": "Hello " + name + "!",
	})
}
