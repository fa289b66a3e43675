// Package prompt builds the natural-language instructions sent to the
// chat-completion service. The JSON shapes spelled out in the instruction
// texts are the parse contract; keep them in sync with [models.Case] and
// [models.Verdict].
package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
)

const englishGenerationTemplate = `
You are a master mystery writer creating crime investigation scenarios. Generate a detailed crime scenario with the following structure:
1. A title for the case
2. A scenario description (200-300 words) that includes:
   - A diverse and specific location (like "a family-owned winery in Tuscany", "a research station in Antarctica", "a tech startup in Singapore", etc.)
   - The specific type of crime (be creative - not just theft but also fraud, sabotage, blackmail, art forgery, corporate espionage, etc.)
   - At the beginning, clearly introduce each character with their name and role/occupation
   - Setting and background details that set the stage

3. 4-6 characters involved in the case, each with a name and brief description (include diverse backgrounds, ages, and occupations)
4. A conversation between the characters with at least 10 exchanges, where subtle clues are hidden
5. Indicate who the culprit is (but don't reveal this in the conversation)

The difficulty level is: %s
For easy: Make the clues fairly obvious and the motive clear
For medium: Make the clues somewhat subtle but logical, with some misdirection
For hard: Make the clues very subtle, include multiple red herrings and complex motives

Respond in JSON format like this:
{
  "title": "Case title",
  "scenario": "Full scenario description",
  "characters": [
    {"name": "Character Name", "description": "Brief description including their role/occupation and personality traits"},
    ...
  ],
  "conversations": [
    {"speaker": "Character Name", "text": "What they say"},
    ...
  ],
  "culprit": "Name of the guilty character"
}
`

const frenchGenerationTemplate = `
Vous êtes un maître écrivain de mystères créant des scénarios d'enquête criminelle. Générer un scénario criminel détaillé avec la structure suivante :
1. Un titre pour l'affaire
2. Une description du scénario (200-300 mots) qui inclut :
   - Un lieu divers et spécifique (comme "un vignoble familial en Toscane", "une station de recherche en Antarctique", "une startup technologique à Singapour", etc.)
   - Le type de crime spécifique (soyez créatif - pas seulement un vol mais aussi une fraude, un sabotage, un chantage, une contrefaçon d'art, de l'espionnage industriel, etc.)
   - Au début, présentez clairement chaque personnage avec son nom et son rôle/occupation
   - Détails de mise en scène et de contexte qui établissent le décor

3. 4-6 personnages impliqués dans l'affaire, chacun avec un nom et une brève description (inclure des origines diverses, âges, professions et traits de personnalité)
4. Une conversation entre les personnages avec au moins 10 échanges, où des indices subtils sont cachés
5. Indiquez qui est le coupable (mais ne le révélez pas dans la conversation)

Le niveau de difficulté est : %s
Pour facile : Rendez les indices assez évidents et le mobile clair
Pour moyen : Rendez les indices quelque peu subtils mais logiques, avec quelques fausses pistes
Pour difficile : Rendez les indices très subtils, incluez plusieurs fausses pistes et des mobiles complexes

Répondez au format JSON comme ceci :
{
  "title": "Titre de l'affaire",
  "scenario": "Description complète du scénario",
  "characters": [
    {"name": "Nom du personnage", "description": "Brève description incluant leur rôle/occupation et traits de personnalité"},
    ...
  ],
  "conversations": [
    {"speaker": "Nom du personnage", "text": "Ce qu'ils disent"},
    ...
  ],
  "culprit": "Nom du personnage coupable"
}
`

const englishEvaluationTemplate = `
You are an expert detective evaluating a user's deduction for a crime scenario.

The crime scenario is:
%s

The user's deduction is:
"%s"

Evaluate if the user correctly identified the culprit and how sound their reasoning was.
Respond in JSON format:
{
  "correct": true/false,
  "feedback": "Brief feedback on their overall deduction (50-100 words)",
  "reasoning": "Detailed analysis of their reasoning (100-200 words)"
}
`

const frenchEvaluationTemplate = `
Vous êtes un détective expert évaluant la déduction d'un utilisateur pour un scénario criminel.

Le scénario criminel est :
%s

La déduction de l'utilisateur est :
"%s"

Évaluez si l'utilisateur a correctement identifié le coupable et si son raisonnement était solide.
Répondez au format JSON :
{
  "correct": true/false,
  "feedback": "Bref commentaire sur leur déduction globale (50-100 mots)",
  "reasoning": "Analyse détaillée de leur raisonnement (100-200 mots)"
}
`

// frenchDifficultyTiers translates the tier names so that the French
// instruction refers to the same tiers it describes.
var frenchDifficultyTiers = map[models.Difficulty]string{
	models.DifficultyEasy:   "facile",
	models.DifficultyMedium: "moyen",
	models.DifficultyHard:   "difficile",
}

// BuildGenerationInstruction produces the instruction asking the model for a
// new crime case at the given difficulty, in the given language.
func BuildGenerationInstruction(difficulty models.Difficulty, language models.Language) string {
	if language == models.LanguageFrench {
		return fmt.Sprintf(frenchGenerationTemplate, frenchDifficultyTiers[difficulty])
	}
	return fmt.Sprintf(englishGenerationTemplate, difficulty)
}

// BuildEvaluationInstruction produces the instruction asking the model to
// judge the player's deduction against the full case record.
func BuildEvaluationInstruction(kase models.Case, deduction string, language models.Language) string {
	caseJSON, err := json.Marshal(kase)
	if err != nil {
		// Case contains only strings and slices of strings, so this cannot happen.
		caseJSON = []byte("{}")
	}
	if language == models.LanguageFrench {
		return fmt.Sprintf(frenchEvaluationTemplate, caseJSON, deduction)
	}
	return fmt.Sprintf(englishEvaluationTemplate, caseJSON, deduction)
}
