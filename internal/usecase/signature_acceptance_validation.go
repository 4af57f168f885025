package usecase

import (
	"strings"

	"sigval/internal/domain"
)

// SignatureAcceptanceValidation checks the signed and unsigned properties of
// one signature against the policy.
type SignatureAcceptanceValidation struct{}

type savRun struct {
	sc   *SignatureContext
	sig  *domain.Signature
	node *domain.TraceNode
}

func (SignatureAcceptanceValidation) Run(sc *SignatureContext, parent *domain.TraceNode) (*domain.Conclusion, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}
	node := parent.AddChild(SubprocessSignatureAccept)
	r := &savRun{sc: sc, sig: sc.Signature, node: node}
	conclusion := domain.NewConclusion(node.Location())
	return runChecks(conclusion,
		r.checkFormat,
		r.checkStructure,
		r.checkDataObjectFormat,
		r.checkSigningTime,
		r.checkContentType,
		r.checkContentHints,
		r.checkContentIdentifier,
		r.checkCommitmentType,
		r.checkSignerLocation,
		r.checkContentTimestamps,
		r.checkClaimedRoles,
		r.checkCounterSignatures,
		r.checkSignatureTimestamps,
		r.checkArchiveTimestamps,
		r.checkCertifiedRoles,
		r.checkCompleteCertificateRefs,
		r.checkCompleteRevocationRefs,
		r.checkRefsOnlyTimestamps,
		r.checkCertificateValues,
		r.checkRevocationValues,
		r.checkCryptographic,
	), nil
}

func (r *savRun) constraint(cp domain.CheckPoint) *Constraint {
	return r.sc.Process.constraint(r.sc.Context, domain.SubContextNone, cp)
}

// prepare creates the trace node and wires the default failure outcome.
func (r *savRun) prepare(c *Constraint, conclusion *domain.Conclusion, msg, failMsg domain.MessageID) *Constraint {
	c.Create(r.node, msg)
	c.SetIndications(domain.IndicationInvalid, domain.SubSigConstraintsFailure, failMsg)
	c.SetConclusionReceiver(conclusion)
	return c
}

func (r *savRun) checkFormat(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckAcceptableFormats)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVFormat, domain.MsgSAVFormatAns)
	c.SetValue(r.sig.SignatureFormat)
	return c.CheckInList()
}

func (r *savRun) checkStructure(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckStructuralValidation)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVStructure, domain.MsgSAVStructureAns)
	c.SetIndications(domain.IndicationInvalid, domain.SubFormatFailure, domain.MsgSAVStructureAns)
	c.SetBoolValue(r.sig.StructuralValidation.Valid)
	if msg := r.sig.StructuralValidation.Message; msg != "" {
		c.SetAttribute(domain.AttrLog, msg)
	}
	return c.Check()
}

func (r *savRun) checkDataObjectFormat(conclusion *domain.Conclusion) bool {
	refs := r.sig.BasicSignature.References
	if len(refs) == 0 {
		return true
	}
	c := r.constraint(domain.CheckDataObjectFormat)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVDataObjectFormat, domain.MsgSAVDataObjectFormatAns)
	present := true
	for _, ref := range refs {
		if !ref.DataObjectFormat {
			present = false
			c.SetAttribute(domain.AttrURI, ref.URI)
			break
		}
	}
	c.SetBoolValue(present)
	return c.Check()
}

func (r *savRun) checkSigningTime(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckSigningTime)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVSigningTime, domain.MsgSAVSigningTimeAns)
	c.SetBoolValue(r.sig.SigningTime != nil)
	return c.Check()
}

func (r *savRun) checkContentType(conclusion *domain.Conclusion) bool {
	return r.checkStringProperty(conclusion, domain.CheckContentType, r.sig.ContentType,
		domain.MsgSAVContentType, domain.MsgSAVContentTypeAns)
}

func (r *savRun) checkContentHints(conclusion *domain.Conclusion) bool {
	return r.checkStringProperty(conclusion, domain.CheckContentHints, r.sig.ContentHints,
		domain.MsgSAVContentHints, domain.MsgSAVContentHintsAns)
}

func (r *savRun) checkContentIdentifier(conclusion *domain.Conclusion) bool {
	return r.checkStringProperty(conclusion, domain.CheckContentIdentifier, r.sig.ContentIdentifier,
		domain.MsgSAVContentIdentifier, domain.MsgSAVContentIdentifierAns)
}

func (r *savRun) checkStringProperty(conclusion *domain.Conclusion, cp domain.CheckPoint, value string, msg, failMsg domain.MessageID) bool {
	c := r.constraint(cp)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, msg, failMsg)
	c.SetValue(value)
	if len(c.spec.Identifiers) > 0 {
		return c.CheckInList()
	}
	return c.Check()
}

func (r *savRun) checkCommitmentType(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckCommitmentTypeIndication)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVCommitmentType, domain.MsgSAVCommitmentTypeAns)
	ids := make([]string, 0, len(r.sig.CommitmentTypeIndications))
	for _, cti := range r.sig.CommitmentTypeIndications {
		ids = append(ids, cti.Identifier)
	}
	c.SetValues(ids)
	if !c.CheckInList() {
		return false
	}

	refs := NewConstraint(domain.CheckCommitmentTypeIndication, domain.ConstraintSpec{Level: c.Level(), Expected: trueValue})
	r.prepare(refs, conclusion, domain.MsgSAVCommitmentObjectRefs, domain.MsgSAVCommitmentObjectRefsAns)
	// Commitments without any object reference do not bind the signed data.
	intact, seen := true, 0
	for _, cti := range r.sig.CommitmentTypeIndications {
		for _, ref := range cti.ObjectReferences {
			seen++
			if !ref.Exists && intact {
				intact = false
				refs.SetAttribute(domain.AttrObjectReference, ref.Value)
			}
		}
	}
	if seen == 0 {
		intact = false
	}
	refs.SetBoolValue(intact)
	return refs.Check()
}

func (r *savRun) checkSignerLocation(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckSignerLocation)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVSignerLocation, domain.MsgSAVSignerLocationAns)
	location := r.sig.SignatureProductionPlace.Formatted()
	if c.expected == trueValue {
		c.SetBoolValue(location != "")
	} else {
		c.SetValue(location)
	}
	return c.Check()
}

func (r *savRun) checkContentTimestamps(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckContentTimestampCount)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVContentTimestampCount, domain.MsgSAVContentTimestampCountAns)
	types := r.sc.Process.Policy.ContentTimestampTypes
	if len(types) == 0 {
		types = []domain.TimestampType{domain.TimestampContent}
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	c.SetAttribute(domain.AttrExpectedTypeList, strings.Join(names, ","))
	c.SetIntValue(len(r.sig.TimestampsOfType(types...)))
	return c.Check()
}

func (r *savRun) checkClaimedRoles(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckClaimedRoles)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVClaimedRole, domain.MsgSAVClaimedRoleAns)
	if strings.EqualFold(r.sc.Process.Policy.ClaimedRolesAttendance, domain.ClaimedRolesAttendanceAny) {
		c.SetExpectedValue(anyValue)
	}
	c.SetValues(r.sig.ClaimedRoles)
	return c.CheckInList()
}

func (r *savRun) checkCounterSignatures(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckCounterSignatureCount)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, domain.MsgSAVCounterSignatureCount, domain.MsgSAVCounterSignatureCountAns)
	c.SetIntValue(len(r.sc.Process.Diagnostic.CounterSignaturesOf(r.sig.ID)))
	return c.Check()
}

func (r *savRun) checkSignatureTimestamps(conclusion *domain.Conclusion) bool {
	return r.checkTimestampCount(conclusion, domain.CheckSignatureTimestampCount,
		domain.MsgSAVSignatureTimestampCount, domain.MsgSAVSignatureTimestampCountAns, domain.TimestampSignature)
}

func (r *savRun) checkArchiveTimestamps(conclusion *domain.Conclusion) bool {
	return r.checkTimestampCount(conclusion, domain.CheckArchiveTimestampCount,
		domain.MsgSAVArchiveTimestampCount, domain.MsgSAVArchiveTimestampCountAns, domain.TimestampArchive)
}

func (r *savRun) checkRefsOnlyTimestamps(conclusion *domain.Conclusion) bool {
	return r.checkTimestampCount(conclusion, domain.CheckRefsOnlyTimestampCount,
		domain.MsgSAVRefsOnlyTimestampCount, domain.MsgSAVRefsOnlyTimestampCountAns,
		domain.TimestampValidationDataRefsOnly, domain.TimestampValidationData)
}

func (r *savRun) checkTimestampCount(conclusion *domain.Conclusion, cp domain.CheckPoint, msg, failMsg domain.MessageID, types ...domain.TimestampType) bool {
	c := r.constraint(cp)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, msg, failMsg)
	c.SetIntValue(len(r.sig.TimestampsOfType(types...)))
	return c.Check()
}

// checkCertifiedRoles gates role membership on the attribute certificate
// being valid at the current time.
func (r *savRun) checkCertifiedRoles(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckCertifiedRoles)
	if c == nil {
		return true
	}
	roles := r.sig.CertifiedRoles
	now := r.sc.Process.CurrentTime

	validity := NewConstraint(domain.CheckCertifiedRoles, domain.ConstraintSpec{Level: c.Level(), Expected: trueValue})
	validity.Create(r.node, domain.MsgSAVCertifiedRoleValid)
	validity.SetIndications(domain.IndicationInvalid, domain.SubSigConstraintsFailure, domain.MsgSAVCertifiedRoleValidAns)
	validity.SetConclusionReceiver(conclusion)
	valid := roles != nil && roles.NotBefore != nil && roles.NotAfter != nil &&
		roles.NotBefore.Before(now) && now.Before(*roles.NotAfter)
	if roles != nil && roles.NotBefore != nil && roles.NotAfter != nil {
		validity.SetAttribute(domain.AttrNotBefore, formatTime(*roles.NotBefore))
		validity.SetAttribute(domain.AttrNotAfter, formatTime(*roles.NotAfter))
	}
	validity.SetBoolValue(valid)
	if !validity.Check() {
		return false
	}
	if valid {
		conclusion.AddInfo(domain.MsgCertifiedRoleOK, map[string]string{domain.AttrValidationTime: formatTime(now)})
	}

	r.prepare(c, conclusion, domain.MsgSAVCertifiedRole, domain.MsgSAVCertifiedRoleAns)
	var values []string
	if roles != nil {
		values = roles.Roles
	}
	c.SetValues(values)
	return c.CheckInList()
}

func (r *savRun) checkCompleteCertificateRefs(conclusion *domain.Conclusion) bool {
	return r.checkPresence(conclusion, domain.CheckCompleteCertificateRefs, r.sig.CompleteCertificateRefs,
		domain.MsgSAVCompleteCertificateRefs, domain.MsgSAVCompleteCertificateRefsAns)
}

func (r *savRun) checkCompleteRevocationRefs(conclusion *domain.Conclusion) bool {
	return r.checkPresence(conclusion, domain.CheckCompleteRevocationRefs, r.sig.CompleteRevocationRefs,
		domain.MsgSAVCompleteRevocationRefs, domain.MsgSAVCompleteRevocationRefsAns)
}

func (r *savRun) checkCertificateValues(conclusion *domain.Conclusion) bool {
	return r.checkPresence(conclusion, domain.CheckCertificateValues, r.sig.CertificateValues,
		domain.MsgSAVCertificateValues, domain.MsgSAVCertificateValuesAns)
}

func (r *savRun) checkRevocationValues(conclusion *domain.Conclusion) bool {
	return r.checkPresence(conclusion, domain.CheckRevocationValues, r.sig.RevocationValues,
		domain.MsgSAVRevocationValues, domain.MsgSAVRevocationValuesAns)
}

func (r *savRun) checkPresence(conclusion *domain.Conclusion, cp domain.CheckPoint, present bool, msg, failMsg domain.MessageID) bool {
	c := r.constraint(cp)
	if c == nil {
		return true
	}
	r.prepare(c, conclusion, msg, failMsg)
	c.SetBoolValue(present)
	return c.Check()
}

func (r *savRun) checkCryptographic(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckCryptographic)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgSAVCryptographic)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgSAVCryptographicAns)
	c.SetConclusionReceiver(conclusion)
	c.SetCryptographic(r.sig.BasicSignature, r.sc.Process.Policy.AlgoExpirationDates)
	return c.Check()
}
