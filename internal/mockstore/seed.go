package mockstore

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// DefaultCategories are the labels the browser ships icons for
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// DefaultQuestions is a small catalog for local runs
var DefaultQuestions = []models.Question{
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
	{Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4},
	{Question: "Which Dutch graphic artist, initials M C, was a creator of optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1},
	{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
	{Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4},
	{Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: 3, Difficulty: 2},
	{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
	{Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
	{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
	{Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4},
	{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
	{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1},
	{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
	{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
	{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
	{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
	{Question: "Was Maradona better than Messi?", Answer: "Maradona won the World Cup in 1986.", Category: 6, Difficulty: 5},
}

// Seed loads the default catalog into an empty store
func Seed(ctx context.Context, store Store) error {
	existing, err := store.ListCategories(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to inspect store: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for i, label := range DefaultCategories {
		category := &models.Category{ID: i + 1, Type: label}
		if err := store.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", label, err)
		}
	}
	for _, q := range DefaultQuestions {
		question := q
		if err := store.CreateQuestion(ctx, &question); err != nil {
			return fmt.Errorf("failed to seed question: %w", err)
		}
	}
	return nil
}
