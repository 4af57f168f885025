package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

func newValueConstraint(level domain.Level) (*Constraint, *domain.Conclusion, *domain.TraceNode) {
	root := domain.NewTrace("Test")
	conclusion := domain.NewConclusion(root.Location())
	c := NewConstraint(domain.CheckSigningTime, domain.ConstraintSpec{Level: level})
	c.Create(root, domain.MsgSAVSigningTime)
	c.SetIndications(domain.IndicationInvalid, domain.SubSigConstraintsFailure, domain.MsgSAVSigningTimeAns)
	c.SetConclusionReceiver(conclusion)
	return c, conclusion, root
}

func TestConstraint_IgnoreAlwaysPasses(t *testing.T) {
	for _, value := range []bool{true, false} {
		c, conclusion, root := newValueConstraint(domain.LevelIgnore)
		c.SetBoolValue(value)

		require.True(t, c.Check())
		require.Empty(t, conclusion.Errors)
		require.Empty(t, conclusion.Warnings)
		require.Empty(t, conclusion.Indication)
		require.Equal(t, domain.StatusIgnored, root.Children[0].Attribute(domain.AttrStatus))
	}
}

func TestConstraint_InformDecoratesOnly(t *testing.T) {
	c, conclusion, root := newValueConstraint(domain.LevelInform)
	c.SetBoolValue(false)
	c.SetAttribute(domain.AttrURI, "#ref-1")

	require.True(t, c.Check())
	require.Empty(t, conclusion.Indication)
	require.Empty(t, conclusion.Errors)
	require.Len(t, conclusion.Infos, 1)
	require.Equal(t, "#ref-1", conclusion.Infos[0].Attributes[domain.AttrURI])
	require.Equal(t, domain.StatusInformation, root.Children[0].Attribute(domain.AttrStatus))
}

func TestConstraint_WarnMismatchContinues(t *testing.T) {
	c, conclusion, root := newValueConstraint(domain.LevelWarn)
	c.SetBoolValue(false)

	require.True(t, c.Check())
	require.Empty(t, conclusion.Indication)
	require.Empty(t, conclusion.SubIndication)
	require.Len(t, conclusion.Warnings, 1)
	require.Equal(t, domain.MsgSAVSigningTimeAns, conclusion.Warnings[0].ID)
	require.Equal(t, domain.StatusWarn, root.Children[0].Attribute(domain.AttrStatus))
}

func TestConstraint_FailMismatchSetsIndication(t *testing.T) {
	c, conclusion, root := newValueConstraint(domain.LevelFail)
	c.SetBoolValue(false)

	require.False(t, c.Check())
	require.Equal(t, domain.IndicationInvalid, conclusion.Indication)
	require.Equal(t, domain.SubSigConstraintsFailure, conclusion.SubIndication)
	require.Len(t, conclusion.Errors, 1)
	require.Equal(t, domain.MsgSAVSigningTimeAns, conclusion.Errors[0].ID)

	node := root.Children[0]
	require.Equal(t, domain.StatusKO, node.Attribute(domain.AttrStatus))
	require.Equal(t, "true", node.Attribute(domain.AttrExpectedValue))
	require.Equal(t, "false", node.Attribute(domain.AttrConstraintValue))
	require.NotNil(t, node.Child("Error"))
}

func TestConstraint_FailMatchRecordsOK(t *testing.T) {
	c, conclusion, root := newValueConstraint(domain.LevelFail)
	c.SetBoolValue(true)

	require.True(t, c.Check())
	require.Empty(t, conclusion.Errors)
	require.Equal(t, domain.StatusOK, root.Children[0].Attribute(domain.AttrStatus))
}

func TestConstraint_CheckedOnce(t *testing.T) {
	c, conclusion, _ := newValueConstraint(domain.LevelFail)
	c.SetBoolValue(false)

	require.False(t, c.Check())
	require.False(t, c.Check())
	require.Len(t, conclusion.Errors, 1)
}

func TestConstraint_CheckInList(t *testing.T) {
	spec := domain.ConstraintSpec{Level: domain.LevelFail, Identifiers: []string{"signer", "approver"}}

	c := NewConstraint(domain.CheckClaimedRoles, spec).SetValues([]string{"witness", "approver"})
	require.True(t, c.CheckInList())

	c = NewConstraint(domain.CheckClaimedRoles, spec).SetValues([]string{"witness"})
	require.False(t, c.CheckInList())

	c = NewConstraint(domain.CheckClaimedRoles, spec).SetValues(nil)
	require.False(t, c.CheckInList())

	c = NewConstraint(domain.CheckClaimedRoles, spec).SetExpectedValue("*").SetValues(nil)
	require.True(t, c.CheckInList())

	wildcard := domain.ConstraintSpec{Level: domain.LevelFail, Identifiers: []string{"*"}}
	c = NewConstraint(domain.CheckClaimedRoles, wildcard).SetValues([]string{"anything"})
	require.True(t, c.CheckInList())
}

func TestElementNumberConstraint_Range(t *testing.T) {
	spec := domain.ConstraintSpec{Level: domain.LevelFail, Min: domain.IntPtr(1), Max: domain.IntPtr(1)}

	require.False(t, NewConstraint(domain.CheckSignatureCount, spec).SetIntValue(2).Check())
	require.True(t, NewConstraint(domain.CheckSignatureCount, spec).SetIntValue(1).Check())
	require.False(t, NewConstraint(domain.CheckSignatureCount, spec).SetIntValue(0).Check())

	open := domain.ConstraintSpec{Level: domain.LevelFail, Min: domain.IntPtr(2)}
	require.True(t, NewConstraint(domain.CheckSignatureCount, open).SetIntValue(10).Check())
}

func TestElementNumberConstraint_RecordsRange(t *testing.T) {
	root := domain.NewTrace("Test")
	spec := domain.ConstraintSpec{Level: domain.LevelFail, Min: domain.IntPtr(1), Max: domain.IntPtr(1)}
	c := NewConstraint(domain.CheckSignatureCount, spec)
	c.Create(root, domain.MsgGSSignatureCount)
	c.SetIntValue(3)

	require.False(t, c.Check())
	require.Equal(t, "[1..1]", root.Children[0].Attribute(domain.AttrExpectedValue))
	require.Equal(t, "3", root.Children[0].Attribute(domain.AttrConstraintValue))
}

func expirationConstraint(expiredInfo *time.Time, now time.Time) (*Constraint, *domain.Conclusion) {
	conclusion := domain.NewConclusion("")
	c := NewConstraint(domain.CheckCertificateExpiration, domain.ConstraintSpec{Level: domain.LevelFail})
	c.Create(domain.NewTrace("Test"), domain.MsgXCVExpiration)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubOutOfBoundsNoPOE, domain.MsgXCVExpirationAns)
	c.SetConclusionReceiver(conclusion)
	c.SetCurrentTime(now)
	c.SetCertificateValidity(date(2020, 1, 1), date(2021, 1, 1), expiredInfo)
	return c, conclusion
}

func TestCertificateExpirationConstraint(t *testing.T) {
	c, conclusion := expirationConstraint(nil, date(2022, 1, 1))
	require.False(t, c.Check())
	require.Equal(t, domain.IndicationIndeterminate, conclusion.Indication)
	require.Equal(t, domain.SubOutOfBoundsNoPOE, conclusion.SubIndication)

	override := date(2022, 6, 1)
	c, conclusion = expirationConstraint(&override, date(2022, 1, 1))
	require.True(t, c.Check())
	require.Empty(t, conclusion.Indication)
	require.Len(t, conclusion.Infos, 1)
	require.Equal(t, "2022-06-01T00:00:00Z", conclusion.Infos[0].Attributes[domain.AttrExpiredCertsRevocationInfo])

	c, _ = expirationConstraint(nil, date(2020, 6, 1))
	require.True(t, c.Check())

	c, _ = expirationConstraint(nil, date(2021, 1, 1))
	require.True(t, c.Check(), "bounds are inclusive")
}

func TestSignatureCryptographicConstraint(t *testing.T) {
	spec := domain.ConstraintSpec{Level: domain.LevelFail, Crypto: &domain.CryptoSpec{
		EncryptionAlgos: []string{"RSA"},
		DigestAlgos:     []string{"SHA256"},
		MinKeySizes:     map[string]int{"RSA": 2048},
	}}
	expirations := map[string]time.Time{"RSA2048": date(2026, 1, 1), "SHA256": date(2030, 1, 1)}

	check := func(basic domain.BasicSignature, now time.Time) (bool, *domain.Conclusion) {
		conclusion := domain.NewConclusion("")
		c := NewConstraint(domain.CheckCryptographic, spec)
		c.Create(domain.NewTrace("Test"), domain.MsgSAVCryptographic)
		c.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgSAVCryptographicAns)
		c.SetConclusionReceiver(conclusion)
		c.SetCurrentTime(now)
		c.SetCryptographic(basic, expirations)
		return c.Check(), conclusion
	}

	ok, _ := check(rsa2048(), validationTime)
	require.True(t, ok)

	weak := rsa2048()
	weak.KeyLength = 1024
	ok, conclusion := check(weak, validationTime)
	require.False(t, ok)
	require.Equal(t, "RSA1024", conclusion.Errors[0].Attributes[domain.AttrAlgorithm])

	sha1 := rsa2048()
	sha1.DigestAlgo = "SHA1"
	ok, _ = check(sha1, validationTime)
	require.False(t, ok)

	ok, conclusion = check(rsa2048(), date(2026, 1, 1))
	require.False(t, ok, "expiration date is exclusive")
	require.Equal(t, domain.SubCryptoConstraintsFailureNoPOE, conclusion.SubIndication)
	require.Equal(t, "2026-01-01", conclusion.Errors[0].Attributes[domain.AttrAlgorithmExpiration])
}
