package lifecycle

import (
	"fmt"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
)

const (
	PolicyConfirmation = "confirmacion"
	PolicyFinalized    = "finalizado"
)

// Eligibility is the outcome of a successful rating check.
type Eligibility struct {
	RaterRole string
	Rated     Helper
}

// RatingPolicy decides whether raterID may rate the other party of a favor.
type RatingPolicy interface {
	Name() string
	Check(f *models.Favor, raterID string) (Eligibility, error)
}

// ConfirmationGated requires both confirmations and only lets the requester
// rate the helper. The helper never gets rating rights under this policy.
type ConfirmationGated struct{}

func (ConfirmationGated) Name() string { return PolicyConfirmation }

func (ConfirmationGated) Check(f *models.Favor, raterID string) (Eligibility, error) {
	role, ok := ResolveRole(f, raterID)
	if !ok {
		return Eligibility{}, apperrors.ErrNotParticipant
	}
	if role != models.RolSolicitante {
		return Eligibility{}, apperrors.ErrForbidden
	}
	if !f.Confirmaciones.Both() {
		return Eligibility{}, apperrors.ErrNotEligible
	}
	helper, ok := HelperOfRecord(f)
	if !ok {
		return Eligibility{}, apperrors.ErrNotEligible
	}
	return Eligibility{RaterRole: role, Rated: helper}, nil
}

// FinalizedGated lets either party rate the other once the favor is finalized
// and has a helper of record.
type FinalizedGated struct{}

func (FinalizedGated) Name() string { return PolicyFinalized }

func (FinalizedGated) Check(f *models.Favor, raterID string) (Eligibility, error) {
	if f.Estado != models.EstadoFinalizado && f.Estado != models.EstadoConfirmado {
		return Eligibility{}, apperrors.ErrNotEligible
	}
	if f.AyudanteID == "" {
		return Eligibility{}, apperrors.ErrNotEligible
	}
	role, ok := ResolveRole(f, raterID)
	if !ok {
		return Eligibility{}, apperrors.ErrNotParticipant
	}
	rated, _ := Counterpart(f, role)
	return Eligibility{RaterRole: role, Rated: rated}, nil
}

// PolicyByName returns the named policy. An empty name yields fallback.
func PolicyByName(name, fallback string) (RatingPolicy, error) {
	if name == "" {
		name = fallback
	}
	switch name {
	case PolicyConfirmation:
		return ConfirmationGated{}, nil
	case PolicyFinalized:
		return FinalizedGated{}, nil
	}
	return nil, apperrors.ErrInvalidParams.Wrap(fmt.Errorf("unknown rating policy %q", name))
}
