package feedback

import (
	"fmt"
	"strings"
)

const (
	ClassificationHigh = "HIGH"
	ClassificationLow  = "LOW"

	// Ratings of 4 and 5 count as positive; everything below requires a
	// negative comment and gets its coupon at creation time.
	highRatingMin = 4
)

const (
	RuleConsentRequired = "consent_required"
	RuleRatingRange     = "rating_out_of_range"
	RuleCommentMismatch = "comment_rating_mismatch"
)

// ValidationError carries the specific intake rule that was violated so
// callers can branch without string matching.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Submission struct {
	Name            string
	Email           string
	Phone           string
	ConsumedItem    string
	Rating          int
	ConsentGiven    bool
	NegativeComment *string
}

func (s Submission) hasComment() bool {
	return s.NegativeComment != nil && strings.TrimSpace(*s.NegativeComment) != ""
}

// ValidateSubmission enforces the intake rules: consent is mandatory, the
// rating stays in 1..5, and a negative comment is present exactly when the
// rating is below 4.
func ValidateSubmission(s Submission) error {
	if !s.ConsentGiven {
		return &ValidationError{
			Rule:    RuleConsentRequired,
			Message: "Não é possível prosseguir sem consentimento LGPD.",
		}
	}

	if s.Rating < 1 || s.Rating > 5 {
		return &ValidationError{
			Rule:    RuleRatingRange,
			Message: "A nota deve estar entre 1 e 5.",
		}
	}

	if s.Rating >= highRatingMin && s.hasComment() {
		return &ValidationError{
			Rule:    RuleCommentMismatch,
			Message: "Feedback de nota alta não pode ter mensagem negativa.",
		}
	}

	if s.Rating < highRatingMin && !s.hasComment() {
		return &ValidationError{
			Rule:    RuleCommentMismatch,
			Message: "Para notas 1 a 3 é obrigatório informar uma mensagem negativa.",
		}
	}

	return nil
}

func IsPositive(rating int) bool {
	return rating >= highRatingMin
}

func Classify(rating int) string {
	if IsPositive(rating) {
		return ClassificationHigh
	}
	return ClassificationLow
}

// IntakeMessage is the customer-facing text returned right after submission.
// High ratings get instructions to finish the external review before the
// coupon is released; low ratings get their coupon immediately.
func IntakeMessage(rating int) string {
	if IsPositive(rating) {
		return fmt.Sprintf("Muito obrigado pelo seu feedback!\n"+
			"Falta pouco para liberar seu cupom 🎁\n"+
			"Agora complete sua avaliação no Google escolhendo as %d estrelas digitadas nesta página.\n"+
			"Clique no botão abaixo somente após concluir sua avaliação no Google.\n\n"+
			"[ Botão ] Já fiz minha avaliação\n\n"+
			"Após isso, seu cupom será exibido automaticamente!", rating)
	}
	return "Obrigado! Seu feedback foi registrado e enviado ao estabelecimento. Seu cupom já está disponível."
}
