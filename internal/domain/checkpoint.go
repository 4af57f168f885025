package domain

// ConstraintKind selects the evaluation rule of a constraint.
type ConstraintKind int

const (
	KindValue ConstraintKind = iota
	KindElementCount
	KindCryptographic
	KindCertificateExpiration
)

func (k ConstraintKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindElementCount:
		return "element-count"
	case KindCryptographic:
		return "cryptographic"
	case KindCertificateExpiration:
		return "certificate-expiration"
	}
	return "unknown"
}

type Context string

const (
	ContextGeneral          Context = "General"
	ContextMainSignature    Context = "MainSignature"
	ContextCounterSignature Context = "CounterSignature"
	ContextTimestamp        Context = "Timestamp"
	ContextRevocation       Context = "Revocation"
	ContextLongTerm         Context = "LongTerm"
)

type SubContext string

const (
	SubContextNone               SubContext = ""
	SubContextSigningCertificate SubContext = "SigningCertificate"
	SubContextCACertificate      SubContext = "CACertificate"
)

// CheckPoint identifies one configurable rule of the validation policy.
type CheckPoint string

const (
	CheckSignatureCount CheckPoint = "SignatureCount"

	CheckAcceptableFormats        CheckPoint = "AcceptableFormats"
	CheckStructuralValidation     CheckPoint = "StructuralValidation"
	CheckDataObjectFormat         CheckPoint = "DataObjectFormat"
	CheckSigningTime              CheckPoint = "SigningTime"
	CheckContentType              CheckPoint = "ContentType"
	CheckContentHints             CheckPoint = "ContentHints"
	CheckContentIdentifier        CheckPoint = "ContentIdentifier"
	CheckCommitmentTypeIndication CheckPoint = "CommitmentTypeIndication"
	CheckSignerLocation           CheckPoint = "SignerLocation"
	CheckContentTimestampCount    CheckPoint = "ContentTimestampCount"
	CheckClaimedRoles             CheckPoint = "ClaimedRoles"
	CheckCounterSignatureCount    CheckPoint = "CounterSignatureCount"
	CheckSignatureTimestampCount  CheckPoint = "SignatureTimestampCount"
	CheckArchiveTimestampCount    CheckPoint = "ArchiveTimestampCount"
	CheckCertifiedRoles           CheckPoint = "CertifiedRoles"
	CheckCompleteCertificateRefs  CheckPoint = "CompleteCertificateRefs"
	CheckCompleteRevocationRefs   CheckPoint = "CompleteRevocationRefs"
	CheckRefsOnlyTimestampCount   CheckPoint = "RefsOnlyTimestampCount"
	CheckCertificateValues        CheckPoint = "CertificateValues"
	CheckRevocationValues         CheckPoint = "RevocationValues"
	CheckCryptographic            CheckPoint = "Cryptographic"

	CheckSigningCertificateAttributePresent CheckPoint = "SigningCertificateAttributePresent"
	CheckDigestValuePresent                 CheckPoint = "DigestValuePresent"
	CheckDigestValueMatch                   CheckPoint = "DigestValueMatch"
	CheckIssuerSerialMatch                  CheckPoint = "IssuerSerialMatch"

	CheckReferenceDataExistence CheckPoint = "ReferenceDataExistence"
	CheckReferenceDataIntact    CheckPoint = "ReferenceDataIntact"
	CheckSignatureIntact        CheckPoint = "SignatureIntact"

	CheckProspectiveCertificateChain    CheckPoint = "ProspectiveCertificateChain"
	CheckCertificateExpiration          CheckPoint = "CertificateExpiration"
	CheckKeyUsage                       CheckPoint = "KeyUsage"
	CheckCertificateSignature           CheckPoint = "CertificateSignature"
	CheckRevocationDataAvailable        CheckPoint = "RevocationDataAvailable"
	CheckRevocationDataIsTrusted        CheckPoint = "RevocationDataIsTrusted"
	CheckRevocationDataFreshness        CheckPoint = "RevocationDataFreshness"
	CheckCertificateRevoked             CheckPoint = "CertificateRevoked"
	CheckCertificateOnHold              CheckPoint = "CertificateOnHold"
	CheckTSLStatus                      CheckPoint = "TSLStatus"
	CheckIntermediateCertificateRevoked CheckPoint = "IntermediateCertificateRevoked"
	CheckCertificateQualification       CheckPoint = "CertificateQualification"
	CheckSupportedBySSCD                CheckPoint = "SupportedBySSCD"
	CheckIssuedToLegalPerson            CheckPoint = "IssuedToLegalPerson"

	CheckMessageImprintDataFound  CheckPoint = "MessageImprintDataFound"
	CheckMessageImprintDataIntact CheckPoint = "MessageImprintDataIntact"

	CheckTimestampCoherence                            CheckPoint = "TimestampCoherence"
	CheckTimestampDelaySigningTime                     CheckPoint = "TimestampDelaySigningTime"
	CheckBestSignatureTimeBeforeIssuance               CheckPoint = "BestSignatureTimeBeforeIssuance"
	CheckRevocationTime                                CheckPoint = "RevocationTime"
	CheckSigningCertificateValidityAtBestSignatureTime CheckPoint = "SigningCertificateValidityAtBestSignatureTime"
	CheckAlgorithmReliableAtBestSignatureTime          CheckPoint = "AlgorithmReliableAtBestSignatureTime"
)

type placement uint8

const (
	inGeneral placement = 1 << iota
	inSignature
	inTimestamp
	inRevocation
	inSigningCert
	inCACert
	inLongTerm
)

type checkPointInfo struct {
	kind   ConstraintKind
	placed placement
}

var checkPoints = map[CheckPoint]checkPointInfo{
	CheckSignatureCount: {KindElementCount, inGeneral},

	CheckAcceptableFormats:        {KindValue, inSignature},
	CheckStructuralValidation:     {KindValue, inSignature},
	CheckDataObjectFormat:         {KindValue, inSignature},
	CheckSigningTime:              {KindValue, inSignature},
	CheckContentType:              {KindValue, inSignature},
	CheckContentHints:             {KindValue, inSignature},
	CheckContentIdentifier:        {KindValue, inSignature},
	CheckCommitmentTypeIndication: {KindValue, inSignature},
	CheckSignerLocation:           {KindValue, inSignature},
	CheckContentTimestampCount:    {KindElementCount, inSignature},
	CheckClaimedRoles:             {KindValue, inSignature},
	CheckCounterSignatureCount:    {KindElementCount, inSignature},
	CheckSignatureTimestampCount:  {KindElementCount, inSignature},
	CheckArchiveTimestampCount:    {KindElementCount, inSignature},
	CheckCertifiedRoles:           {KindValue, inSignature},
	CheckCompleteCertificateRefs:  {KindValue, inSignature},
	CheckCompleteRevocationRefs:   {KindValue, inSignature},
	CheckRefsOnlyTimestampCount:   {KindElementCount, inSignature},
	CheckCertificateValues:        {KindValue, inSignature},
	CheckRevocationValues:         {KindValue, inSignature},
	CheckCryptographic:            {KindCryptographic, inSignature | inTimestamp | inRevocation | inSigningCert | inCACert},

	CheckSigningCertificateAttributePresent: {KindValue, inSigningCert},
	CheckDigestValuePresent:                 {KindValue, inSigningCert},
	CheckDigestValueMatch:                   {KindValue, inSigningCert},
	CheckIssuerSerialMatch:                  {KindValue, inSigningCert},

	CheckReferenceDataExistence: {KindValue, inSignature},
	CheckReferenceDataIntact:    {KindValue, inSignature},
	CheckSignatureIntact:        {KindValue, inSignature},

	CheckProspectiveCertificateChain:    {KindValue, inSignature | inTimestamp},
	CheckCertificateExpiration:          {KindCertificateExpiration, inSigningCert},
	CheckKeyUsage:                       {KindValue, inSigningCert},
	CheckCertificateSignature:           {KindValue, inSigningCert | inCACert},
	CheckRevocationDataAvailable:        {KindValue, inSigningCert},
	CheckRevocationDataIsTrusted:        {KindValue, inSigningCert},
	CheckRevocationDataFreshness:        {KindValue, inSigningCert},
	CheckCertificateRevoked:             {KindValue, inSigningCert},
	CheckCertificateOnHold:              {KindValue, inSigningCert},
	CheckTSLStatus:                      {KindValue, inSigningCert},
	CheckIntermediateCertificateRevoked: {KindValue, inCACert},
	CheckCertificateQualification:       {KindValue, inSigningCert},
	CheckSupportedBySSCD:                {KindValue, inSigningCert},
	CheckIssuedToLegalPerson:            {KindValue, inSigningCert},

	CheckMessageImprintDataFound:  {KindValue, inTimestamp},
	CheckMessageImprintDataIntact: {KindValue, inTimestamp},

	CheckTimestampCoherence:                            {KindValue, inLongTerm},
	CheckTimestampDelaySigningTime:                     {KindValue, inLongTerm},
	CheckBestSignatureTimeBeforeIssuance:               {KindValue, inLongTerm},
	CheckRevocationTime:                                {KindValue, inLongTerm},
	CheckSigningCertificateValidityAtBestSignatureTime: {KindValue, inLongTerm},
	CheckAlgorithmReliableAtBestSignatureTime:          {KindValue, inLongTerm},
}

// Known reports whether cp is a registered check point.
func (cp CheckPoint) Known() bool {
	_, ok := checkPoints[cp]
	return ok
}

// Kind is the fixed constraint variant of the check point.
func (cp CheckPoint) Kind() ConstraintKind {
	return checkPoints[cp].kind
}

// Accepts reports whether cp may be configured under ctx and sub.
func (cp CheckPoint) Accepts(ctx Context, sub SubContext) bool {
	info, ok := checkPoints[cp]
	if !ok {
		return false
	}
	var want placement
	switch sub {
	case SubContextSigningCertificate:
		want = inSigningCert
	case SubContextCACertificate:
		want = inCACert
	case SubContextNone:
		switch ctx {
		case ContextGeneral:
			want = inGeneral
		case ContextMainSignature, ContextCounterSignature:
			want = inSignature
		case ContextTimestamp:
			want = inTimestamp
		case ContextRevocation:
			want = inRevocation
		case ContextLongTerm:
			want = inLongTerm
		}
	}
	if sub != SubContextNone {
		switch ctx {
		case ContextMainSignature, ContextCounterSignature, ContextTimestamp, ContextRevocation:
		default:
			return false
		}
	}
	return want != 0 && info.placed&want != 0
}

// CheckPoints lists every registered check point.
func CheckPoints() []CheckPoint {
	out := make([]CheckPoint, 0, len(checkPoints))
	for cp := range checkPoints {
		out = append(out, cp)
	}
	return out
}
