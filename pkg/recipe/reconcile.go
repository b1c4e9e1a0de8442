package recipe

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/entities"
)

// EditSession collects the removals made while reconciling a recipe so they
// can be written in the same commit as the rest of the aggregate.
type EditSession interface {
	DeleteIngredient(ingredient entities.Ingredient)
	DeleteInstruction(instruction entities.Instruction)
}

// Reconcile makes the recipe's ingredient and instruction collections match
// a submitted edit. Items are handled in submission order:
//
//   - IsDeleted: the child with that ID is removed, if present.
//   - ID == 0: a new child is appended.
//   - otherwise: the child with that ID is overwritten in place, if present.
//
// IDs that do not belong to the recipe are skipped. A new instruction is
// numbered after the instructions present at the moment it is appended.
// Nothing is persisted here; the caller commits the session afterwards.
func Reconcile(session EditSession, recipe *entities.Recipe, ingredients []domain.IngredientItem, instructions []domain.InstructionItem) {
	for _, item := range ingredients {
		idx := indexOfIngredient(recipe.Ingredients, item.ID)

		switch {
		case item.IsDeleted:
			if idx < 0 {
				continue
			}
			session.DeleteIngredient(recipe.Ingredients[idx])
			recipe.Ingredients = append(recipe.Ingredients[:idx], recipe.Ingredients[idx+1:]...)
		case item.ID == 0:
			recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{
				Name:     item.Name,
				Quantity: item.Quantity,
				RecipeID: recipe.ID,
			})
		case idx >= 0:
			recipe.Ingredients[idx].Name = item.Name
			recipe.Ingredients[idx].Quantity = item.Quantity
		}
	}

	for _, item := range instructions {
		idx := indexOfInstruction(recipe.Instructions, item.ID)

		switch {
		case item.IsDeleted:
			if idx < 0 {
				continue
			}
			session.DeleteInstruction(recipe.Instructions[idx])
			recipe.Instructions = append(recipe.Instructions[:idx], recipe.Instructions[idx+1:]...)
		case item.ID == 0:
			recipe.Instructions = append(recipe.Instructions, entities.Instruction{
				StepNumber:  len(recipe.Instructions) + 1,
				Description: item.Step,
				RecipeID:    recipe.ID,
			})
		case idx >= 0:
			recipe.Instructions[idx].Description = item.Step
		}
	}
}

// id 0 never matches: unsaved children cannot be addressed by a submission.
func indexOfIngredient(ingredients []entities.Ingredient, id uint) int {
	if id == 0 {
		return -1
	}
	for i := range ingredients {
		if ingredients[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfInstruction(instructions []entities.Instruction, id uint) int {
	if id == 0 {
		return -1
	}
	for i := range instructions {
		if instructions[i].ID == id {
			return i
		}
	}
	return -1
}

// unknownItemIDs lists submitted non-zero ids that match no child of recipe.
// Reconcile skips these.
func unknownItemIDs(recipe *entities.Recipe, ingredients []domain.IngredientItem, instructions []domain.InstructionItem) []uint {
	var ids []uint
	for _, item := range ingredients {
		if item.ID != 0 && indexOfIngredient(recipe.Ingredients, item.ID) < 0 {
			ids = append(ids, item.ID)
		}
	}
	for _, item := range instructions {
		if item.ID != 0 && indexOfInstruction(recipe.Instructions, item.ID) < 0 {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
