package cases

import "github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"

// Fallback records stand in for model output when generation or evaluation
// fails. They are deliberately indistinguishable from real records to the
// phase machine; the error returned alongside them carries the distinction.

// FallbackCase returns the localized placeholder case.
func FallbackCase(language models.Language) models.Case {
	if language == models.LanguageFrench {
		return models.Case{
			Title:    "Erreur dans la génération de l'affaire",
			Scenario: "Nous avons des difficultés à nous connecter à notre IA d'écriture de mystères. Veuillez réessayer plus tard.",
			Characters: []models.Character{
				{Name: "System", Description: "Une erreur s'est produite"},
			},
			Conversations: []models.Exchange{
				{Speaker: "System", Text: "Erreur lors de la génération de la conversation"},
			},
			Culprit: "Inconnu",
		}
	}
	return models.Case{
		Title:    "Error in Case Generation",
		Scenario: "We're having trouble connecting to our mystery writing AI. Please try again later.",
		Characters: []models.Character{
			{Name: "System", Description: "Error occurred"},
		},
		Conversations: []models.Exchange{
			{Speaker: "System", Text: "Error generating conversation"},
		},
		Culprit: "Unknown",
	}
}

// FallbackVerdict returns the localized placeholder verdict.
func FallbackVerdict(language models.Language) models.Verdict {
	if language == models.LanguageFrench {
		return models.Verdict{
			Correct:   false,
			Feedback:  "Nous n'avons pas pu évaluer votre déduction en raison d'un problème technique.",
			Reasoning: "Veuillez essayer de soumettre à nouveau votre déduction plus tard.",
		}
	}
	return models.Verdict{
		Correct:   false,
		Feedback:  "We couldn't evaluate your deduction due to a technical issue.",
		Reasoning: "Please try submitting your deduction again later.",
	}
}

func generationFailedMessage(language models.Language) string {
	if language == models.LanguageFrench {
		return "Échec de la génération du scénario criminel"
	}
	return "Failed to generate crime scenario"
}

func evaluationFailedMessage(language models.Language) string {
	if language == models.LanguageFrench {
		return "Échec de l'évaluation de votre déduction"
	}
	return "Failed to evaluate your deduction"
}
