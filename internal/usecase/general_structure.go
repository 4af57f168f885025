package usecase

import "sigval/internal/domain"

// GeneralStructure checks the shape of the document before any signature is
// looked at.
type GeneralStructure struct{}

func (GeneralStructure) Run(pc *ProcessContext, parent *domain.TraceNode) *domain.Conclusion {
	node := parent.AddChild(SubprocessGeneralStructure)
	conclusion := domain.NewConclusion(node.Location())

	c := pc.constraint(domain.ContextGeneral, domain.SubContextNone, domain.CheckSignatureCount)
	if c == nil {
		conclusion.SetIndication(domain.IndicationValid, "")
		return conclusion
	}
	c.Create(node, domain.MsgGSSignatureCount)
	c.SetIntValue(len(pc.Diagnostic.PrimarySignatures()))
	c.SetIndications(domain.IndicationInvalid, domain.SubSigConstraintsFailure, domain.MsgGSSignatureCountAns)
	c.SetConclusionReceiver(conclusion)
	if !c.Check() {
		return conclusion
	}
	conclusion.SetIndication(domain.IndicationValid, "")
	return conclusion
}
