package game

import "github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"

func caseGeneratedMessage(language models.Language) string {
	if language == models.LanguageFrench {
		return "Nouvelle affaire générée avec succès !"
	}
	return "New case generated successfully!"
}

func needMoreDetailMessage(language models.Language) string {
	if language == models.LanguageFrench {
		return "Veuillez fournir une déduction plus détaillée"
	}
	return "Please provide a more detailed deduction"
}
