package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

func TestGeneralStructure_NotConfiguredIsValid(t *testing.T) {
	diag := document(validSignature("S-1"), validSignature("S-2"))
	pc := NewProcessContext(diag, domain.NewValidationPolicy("empty"), validationTime, nil)

	conclusion := GeneralStructure{}.Run(pc, domain.NewTrace("ValidationData"))
	require.True(t, conclusion.IsValid())
}

func TestGeneralStructure_CountsPrimarySignaturesOnly(t *testing.T) {
	counter := validSignature("S-3")
	counter.Type = domain.SignatureTypeCounterSignature
	counter.ParentID = "S-1"
	policy := domain.NewValidationPolicy("one")
	policy.Set(domain.ContextGeneral, domain.SubContextNone, domain.CheckSignatureCount,
		domain.ConstraintSpec{Level: domain.LevelFail, Min: domain.IntPtr(1), Max: domain.IntPtr(1)})

	pc := NewProcessContext(document(validSignature("S-1"), counter), policy, validationTime, nil)
	require.True(t, GeneralStructure{}.Run(pc, domain.NewTrace("ValidationData")).IsValid())

	pc = NewProcessContext(document(validSignature("S-1"), validSignature("S-2"), counter), policy, validationTime, nil)
	conclusion := GeneralStructure{}.Run(pc, domain.NewTrace("ValidationData"))
	require.Equal(t, domain.IndicationInvalid, conclusion.Indication)
	require.Equal(t, domain.SubSigConstraintsFailure, conclusion.SubIndication)
	require.Equal(t, domain.MsgGSSignatureCountAns, conclusion.Errors[0].ID)
}
