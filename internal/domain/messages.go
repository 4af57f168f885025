package domain

// MessageID names an entry of the message catalog. Check-point messages are
// questions; their "_ANS" counterparts explain a failed answer.
type MessageID string

const (
	MsgGSSignatureCount    MessageID = "BBB_GS_DNSCVP"
	MsgGSSignatureCountAns MessageID = "BBB_GS_DNSCVP_ANS"

	MsgSAVFormat                     MessageID = "BBB_SAV_DSFCVP"
	MsgSAVFormatAns                  MessageID = "BBB_SAV_DSFCVP_ANS"
	MsgSAVStructure                  MessageID = "BBB_SAV_ISSV"
	MsgSAVStructureAns               MessageID = "BBB_SAV_ISSV_ANS"
	MsgSAVDataObjectFormat           MessageID = "BBB_SAV_ISQPDOFP"
	MsgSAVDataObjectFormatAns        MessageID = "BBB_SAV_ISQPDOFP_ANS"
	MsgSAVSigningTime                MessageID = "BBB_SAV_ISQPSTP"
	MsgSAVSigningTimeAns             MessageID = "BBB_SAV_ISQPSTP_ANS"
	MsgSAVContentType                MessageID = "BBB_SAV_ISQPCTP"
	MsgSAVContentTypeAns             MessageID = "BBB_SAV_ISQPCTP_ANS"
	MsgSAVContentHints               MessageID = "BBB_SAV_ISQPCHP"
	MsgSAVContentHintsAns            MessageID = "BBB_SAV_ISQPCHP_ANS"
	MsgSAVContentIdentifier          MessageID = "BBB_SAV_ISQPCIP"
	MsgSAVContentIdentifierAns       MessageID = "BBB_SAV_ISQPCIP_ANS"
	MsgSAVCommitmentType             MessageID = "BBB_SAV_ISQPXTIP"
	MsgSAVCommitmentTypeAns          MessageID = "BBB_SAV_ISQPXTIP_ANS"
	MsgSAVCommitmentObjectRefs       MessageID = "BBB_SAV_DCTIPER"
	MsgSAVCommitmentObjectRefsAns    MessageID = "BBB_SAV_DCTIPER_ANS"
	MsgSAVSignerLocation             MessageID = "BBB_SAV_ISQPSLP"
	MsgSAVSignerLocationAns          MessageID = "BBB_SAV_ISQPSLP_ANS"
	MsgSAVContentTimestampCount      MessageID = "BBB_SAV_DNCTCVP"
	MsgSAVContentTimestampCountAns   MessageID = "BBB_SAV_DNCTCVP_ANS"
	MsgSAVClaimedRole                MessageID = "BBB_SAV_ICRM"
	MsgSAVClaimedRoleAns             MessageID = "BBB_SAV_ICRM_ANS"
	MsgSAVCounterSignatureCount      MessageID = "BBB_SAV_DNCSCVP"
	MsgSAVCounterSignatureCountAns   MessageID = "BBB_SAV_DNCSCVP_ANS"
	MsgSAVSignatureTimestampCount    MessageID = "BBB_SAV_DNSTCVP"
	MsgSAVSignatureTimestampCountAns MessageID = "BBB_SAV_DNSTCVP_ANS"
	MsgSAVArchiveTimestampCount      MessageID = "BBB_SAV_2"
	MsgSAVArchiveTimestampCountAns   MessageID = "BBB_SAV_2_ANS"
	MsgSAVCertifiedRoleValid         MessageID = "BBB_SAV_IACV"
	MsgSAVCertifiedRoleValidAns      MessageID = "BBB_SAV_IACV_ANS"
	MsgSAVCertifiedRole              MessageID = "BBB_SAV_ICERRM"
	MsgSAVCertifiedRoleAns           MessageID = "BBB_SAV_ICERRM_ANS"
	MsgSAVCompleteCertificateRefs    MessageID = "BBB_SAV_3"
	MsgSAVCompleteCertificateRefsAns MessageID = "BBB_SAV_3_ANS"
	MsgSAVCompleteRevocationRefs     MessageID = "BBB_SAV_4"
	MsgSAVCompleteRevocationRefsAns  MessageID = "BBB_SAV_4_ANS"
	MsgSAVRefsOnlyTimestampCount     MessageID = "BBB_SAV_1"
	MsgSAVRefsOnlyTimestampCountAns  MessageID = "BBB_SAV_1_ANS"
	MsgSAVCertificateValues          MessageID = "BBB_SAV_5"
	MsgSAVCertificateValuesAns       MessageID = "BBB_SAV_5_ANS"
	MsgSAVRevocationValues           MessageID = "BBB_SAV_6"
	MsgSAVRevocationValuesAns        MessageID = "BBB_SAV_6_ANS"
	MsgSAVCryptographic              MessageID = "BBB_SAV_ASCCM"
	MsgSAVCryptographicAns           MessageID = "BBB_SAV_ASCCM_ANS"

	MsgICSCandidate           MessageID = "BBB_ICS_ISCI"
	MsgICSCandidateAns        MessageID = "BBB_ICS_ISCI_ANS"
	MsgICSAttributePresent    MessageID = "BBB_ICS_ISASCP"
	MsgICSAttributePresentAns MessageID = "BBB_ICS_ISASCP_ANS"
	MsgICSDigestPresent       MessageID = "BBB_ICS_ISACDP"
	MsgICSDigestPresentAns    MessageID = "BBB_ICS_ISACDP_ANS"
	MsgICSDigestMatch         MessageID = "BBB_ICS_ICDVV"
	MsgICSDigestMatchAns      MessageID = "BBB_ICS_ICDVV_ANS"
	MsgICSIssuerSerial        MessageID = "BBB_ICS_AIDNASNE"
	MsgICSIssuerSerialAns     MessageID = "BBB_ICS_AIDNASNE_ANS"

	MsgCVReferenceFound     MessageID = "BBB_CV_IRDOF"
	MsgCVReferenceFoundAns  MessageID = "BBB_CV_IRDOF_ANS"
	MsgCVReferenceIntact    MessageID = "BBB_CV_IRDOI"
	MsgCVReferenceIntactAns MessageID = "BBB_CV_IRDOI_ANS"
	MsgCVSignatureIntact    MessageID = "BBB_CV_ISI"
	MsgCVSignatureIntactAns MessageID = "BBB_CV_ISI_ANS"

	MsgXCVChain                   MessageID = "BBB_XCV_CCCBB"
	MsgXCVChainAns                MessageID = "BBB_XCV_CCCBB_ANS"
	MsgXCVExpiration              MessageID = "BBB_XCV_ICTIVRSC"
	MsgXCVExpirationAns           MessageID = "BBB_XCV_ICTIVRSC_ANS"
	MsgXCVKeyUsage                MessageID = "BBB_XCV_ISCGKU"
	MsgXCVKeyUsageAns             MessageID = "BBB_XCV_ISCGKU_ANS"
	MsgXCVCertificateSignature    MessageID = "BBB_XCV_ICSI"
	MsgXCVCertificateSignatureAns MessageID = "BBB_XCV_ICSI_ANS"
	MsgXCVRevocationPresent       MessageID = "BBB_XCV_IRDPFC"
	MsgXCVRevocationPresentAns    MessageID = "BBB_XCV_IRDPFC_ANS"
	MsgXCVRevocationTrusted       MessageID = "BBB_XCV_IRDTFC"
	MsgXCVRevocationTrustedAns    MessageID = "BBB_XCV_IRDTFC_ANS"
	MsgXCVRevocationFresh         MessageID = "BBB_XCV_RFC"
	MsgXCVRevocationFreshAns      MessageID = "BBB_XCV_RFC_ANS"
	MsgXCVRevocationCrypto        MessageID = "BBB_XCV_ARCCM"
	MsgXCVRevocationCryptoAns     MessageID = "BBB_XCV_ARCCM_ANS"
	MsgXCVNotRevoked              MessageID = "BBB_XCV_ISCR"
	MsgXCVNotRevokedAns           MessageID = "BBB_XCV_ISCR_ANS"
	MsgXCVNotOnHold               MessageID = "BBB_XCV_ISCOH"
	MsgXCVNotOnHoldAns            MessageID = "BBB_XCV_ISCOH_ANS"
	MsgXCVTSLStatus               MessageID = "BBB_XCV_CMDCIITLP"
	MsgXCVTSLStatusAns            MessageID = "BBB_XCV_CMDCIITLP_ANS"
	MsgXCVCertificateCrypto       MessageID = "BBB_XCV_ACCM"
	MsgXCVCertificateCryptoAns    MessageID = "BBB_XCV_ACCM_ANS"
	MsgXCVCANotRevoked            MessageID = "BBB_XCV_IICRCA"
	MsgXCVCANotRevokedAns         MessageID = "BBB_XCV_IICRCA_ANS"
	MsgXCVCACrypto                MessageID = "BBB_XCV_ACACCM"
	MsgXCVCACryptoAns             MessageID = "BBB_XCV_ACACCM_ANS"
	MsgXCVQualified               MessageID = "BBB_XCV_ICQ"
	MsgXCVQualifiedAns            MessageID = "BBB_XCV_ICQ_ANS"
	MsgXCVSSCD                    MessageID = "BBB_XCV_ISSS"
	MsgXCVSSCDAns                 MessageID = "BBB_XCV_ISSS_ANS"
	MsgXCVLegalPerson             MessageID = "BBB_XCV_IICR"
	MsgXCVLegalPersonAns          MessageID = "BBB_XCV_IICR_ANS"

	MsgTSVCandidate        MessageID = "BBB_TSV_ISCI"
	MsgTSVCandidateAns     MessageID = "BBB_TSV_ISCI_ANS"
	MsgTSVImprintFound     MessageID = "BBB_TSV_IMIDF"
	MsgTSVImprintFoundAns  MessageID = "BBB_TSV_IMIDF_ANS"
	MsgTSVImprintIntact    MessageID = "BBB_TSV_IMIVC"
	MsgTSVImprintIntactAns MessageID = "BBB_TSV_IMIVC_ANS"
	MsgTSVCryptographic    MessageID = "BBB_TSV_ASCCM"
	MsgTSVCryptographicAns MessageID = "BBB_TSV_ASCCM_ANS"

	MsgLTVCoherence         MessageID = "LTV_ITSC"
	MsgLTVCoherenceAns      MessageID = "LTV_ITSC_ANS"
	MsgLTVDelay             MessageID = "LTV_ITDSTC"
	MsgLTVDelayAns          MessageID = "LTV_ITDSTC_ANS"
	MsgLTVIssuance          MessageID = "LTV_IBSTBI"
	MsgLTVIssuanceAns       MessageID = "LTV_IBSTBI_ANS"
	MsgLTVRevocationTime    MessageID = "LTV_IRTBBST"
	MsgLTVRevocationTimeAns MessageID = "LTV_IRTBBST_ANS"
	MsgLTVCertValidity      MessageID = "LTV_ISCVBST"
	MsgLTVCertValidityAns   MessageID = "LTV_ISCVBST_ANS"
	MsgLTVAlgorithm         MessageID = "LTV_IARBST"
	MsgLTVAlgorithmAns      MessageID = "LTV_IARBST_ANS"

	MsgUnexpectedError   MessageID = "UNEXPECTED_ERROR"
	MsgFactError         MessageID = "FACT_ERROR"
	MsgCertifiedRoleOK   MessageID = "CERTIFIED_ROLE_VALID"
	MsgBestSignatureTime MessageID = "BEST_SIGNATURE_TIME"
)

var messageText = map[MessageID]string{
	MsgGSSignatureCount:    "Is the number of signatures valid?",
	MsgGSSignatureCountAns: "The number of signatures is not valid!",

	MsgSAVFormat:                     "Is the signature format acceptable?",
	MsgSAVFormatAns:                  "The signature format is not allowed by the validation policy!",
	MsgSAVStructure:                  "Is the structure of the signature valid?",
	MsgSAVStructureAns:               "The structure of the signature is not valid!",
	MsgSAVDataObjectFormat:           "Is signed qualifying property: 'data-object-format' present?",
	MsgSAVDataObjectFormatAns:        "The signed qualifying property: 'data-object-format' is not present!",
	MsgSAVSigningTime:                "Is signed qualifying property: 'signing-time' present?",
	MsgSAVSigningTimeAns:             "The signed qualifying property: 'signing-time' is not present!",
	MsgSAVContentType:                "Is signed qualifying property: 'content-type' present?",
	MsgSAVContentTypeAns:             "The signed qualifying property: 'content-type' is not present or does not match!",
	MsgSAVContentHints:               "Is signed qualifying property: 'content-hints' present?",
	MsgSAVContentHintsAns:            "The signed qualifying property: 'content-hints' is not present or does not match!",
	MsgSAVContentIdentifier:          "Is signed qualifying property: 'content-identifier' present?",
	MsgSAVContentIdentifierAns:       "The signed qualifying property: 'content-identifier' is not present or does not match!",
	MsgSAVCommitmentType:             "Is signed qualifying property: 'commitment-type-indication' present?",
	MsgSAVCommitmentTypeAns:          "The signed qualifying property: 'commitment-type-indication' is not present or is not acceptable!",
	MsgSAVCommitmentObjectRefs:       "Do the commitment type indication object references exist?",
	MsgSAVCommitmentObjectRefsAns:    "A commitment type indication object reference does not exist!",
	MsgSAVSignerLocation:             "Is signed qualifying property: 'signer-location' present?",
	MsgSAVSignerLocationAns:          "The signed qualifying property: 'signer-location' is not present!",
	MsgSAVContentTimestampCount:      "Is the number of content timestamps valid?",
	MsgSAVContentTimestampCountAns:   "The number of content timestamps is not valid!",
	MsgSAVClaimedRole:                "Is the claimed role matching?",
	MsgSAVClaimedRoleAns:             "The claimed role is not acceptable!",
	MsgSAVCounterSignatureCount:      "Is the number of counter-signatures valid?",
	MsgSAVCounterSignatureCountAns:   "The number of counter-signatures is not valid!",
	MsgSAVSignatureTimestampCount:    "Is the number of signature timestamps valid?",
	MsgSAVSignatureTimestampCountAns: "The number of signature timestamps is not valid!",
	MsgSAVArchiveTimestampCount:      "Is the number of archive timestamps valid?",
	MsgSAVArchiveTimestampCountAns:   "The number of archive timestamps is not valid!",
	MsgSAVCertifiedRoleValid:         "Is the certified role valid at the validation time?",
	MsgSAVCertifiedRoleValidAns:      "The certified role is not valid at the validation time!",
	MsgSAVCertifiedRole:              "Is the certified role matching?",
	MsgSAVCertifiedRoleAns:           "The certified role is not acceptable!",
	MsgSAVCompleteCertificateRefs:    "Is unsigned property: 'complete-certificate-references' present?",
	MsgSAVCompleteCertificateRefsAns: "The unsigned property: 'complete-certificate-references' is not present!",
	MsgSAVCompleteRevocationRefs:     "Is unsigned property: 'complete-revocation-references' present?",
	MsgSAVCompleteRevocationRefsAns:  "The unsigned property: 'complete-revocation-references' is not present!",
	MsgSAVRefsOnlyTimestampCount:     "Is the number of references-only timestamps valid?",
	MsgSAVRefsOnlyTimestampCountAns:  "The number of references-only timestamps is not valid!",
	MsgSAVCertificateValues:          "Is unsigned property: 'certificate-values' present?",
	MsgSAVCertificateValuesAns:       "The unsigned property: 'certificate-values' is not present!",
	MsgSAVRevocationValues:           "Is unsigned property: 'revocation-values' present?",
	MsgSAVRevocationValuesAns:        "The unsigned property: 'revocation-values' is not present!",
	MsgSAVCryptographic:              "Are signature cryptographic constraints met?",
	MsgSAVCryptographicAns:           "The signature cryptographic constraints are not met!",

	MsgICSCandidate:           "Is there an identified candidate for the signing certificate?",
	MsgICSCandidateAns:        "There is no candidate for the signing certificate!",
	MsgICSAttributePresent:    "Is the signed attribute: 'signing-certificate' present?",
	MsgICSAttributePresentAns: "The signed attribute: 'signing-certificate' is absent!",
	MsgICSDigestPresent:       "Is the signed qualifying property: 'signing-certificate' digest present?",
	MsgICSDigestPresentAns:    "The signing certificate digest is absent!",
	MsgICSDigestMatch:         "Does the certificate digest value match the digest in the signed attribute?",
	MsgICSDigestMatchAns:      "The certificate digest value does not match!",
	MsgICSIssuerSerial:        "Are the issuer distinguished name and the serial number equal?",
	MsgICSIssuerSerialAns:     "The issuer distinguished name or the serial number do not match!",

	MsgCVReferenceFound:     "Is the reference data object(s) found?",
	MsgCVReferenceFoundAns:  "The reference data object(s) is not found!",
	MsgCVReferenceIntact:    "Is the reference data object(s) intact?",
	MsgCVReferenceIntactAns: "The reference data object(s) is not intact!",
	MsgCVSignatureIntact:    "Is the signature intact?",
	MsgCVSignatureIntactAns: "The signature is not intact!",

	MsgXCVChain:                   "Can the certificate chain be built till the trust anchor?",
	MsgXCVChainAns:                "The certificate chain is not trusted, there is no trusted anchor.",
	MsgXCVExpiration:              "Is the validation time in the validity range of the signer's certificate?",
	MsgXCVExpirationAns:           "The validation time is not in the validity range of the signer's certificate.",
	MsgXCVKeyUsage:                "Has the signer's certificate given key-usage?",
	MsgXCVKeyUsageAns:             "The signer's certificate has not expected key-usage!",
	MsgXCVCertificateSignature:    "Is the certificate's signature intact?",
	MsgXCVCertificateSignatureAns: "The certificate's signature is not intact!",
	MsgXCVRevocationPresent:       "Is the revocation data present for the certificate?",
	MsgXCVRevocationPresentAns:    "No revocation data for the certificate!",
	MsgXCVRevocationTrusted:       "Is the revocation data trusted for the certificate?",
	MsgXCVRevocationTrustedAns:    "The revocation data is not trusted for the certificate!",
	MsgXCVRevocationFresh:         "Is the revocation information fresh for the certificate?",
	MsgXCVRevocationFreshAns:      "The revocation status information is not considered as 'fresh'.",
	MsgXCVRevocationCrypto:        "Are revocation cryptographic constraints met?",
	MsgXCVRevocationCryptoAns:     "The revocation cryptographic constraints are not met!",
	MsgXCVNotRevoked:              "Is the certificate not revoked?",
	MsgXCVNotRevokedAns:           "The certificate is revoked!",
	MsgXCVNotOnHold:               "Is the certificate not on hold?",
	MsgXCVNotOnHoldAns:            "The certificate is on hold!",
	MsgXCVTSLStatus:               "Is the trusted service status acceptable?",
	MsgXCVTSLStatusAns:            "The trusted service status is not acceptable!",
	MsgXCVCertificateCrypto:       "Are the certificate cryptographic constraints met?",
	MsgXCVCertificateCryptoAns:    "The certificate cryptographic constraints are not met!",
	MsgXCVCANotRevoked:            "Is the intermediate CA certificate not revoked?",
	MsgXCVCANotRevokedAns:         "The intermediate CA certificate is revoked!",
	MsgXCVCACrypto:                "Are the CA certificate cryptographic constraints met?",
	MsgXCVCACryptoAns:             "The CA certificate cryptographic constraints are not met!",
	MsgXCVQualified:               "Is the certificate qualified?",
	MsgXCVQualifiedAns:            "The certificate is not qualified!",
	MsgXCVSSCD:                    "Is the certificate supported by an SSCD?",
	MsgXCVSSCDAns:                 "The certificate is not supported by an SSCD!",
	MsgXCVLegalPerson:             "Is the certificate issued to a legal person?",
	MsgXCVLegalPersonAns:          "The certificate is not issued to a legal person!",

	MsgTSVCandidate:        "Is there an identified candidate for the timestamp signing certificate?",
	MsgTSVCandidateAns:     "There is no candidate for the timestamp signing certificate!",
	MsgTSVImprintFound:     "Is the message imprint data found?",
	MsgTSVImprintFoundAns:  "The message imprint data is not found!",
	MsgTSVImprintIntact:    "Is the message imprint data intact?",
	MsgTSVImprintIntactAns: "The message imprint data is not intact!",
	MsgTSVCryptographic:    "Are timestamp cryptographic constraints met?",
	MsgTSVCryptographicAns: "The timestamp cryptographic constraints are not met!",

	MsgLTVCoherence:         "Are the timestamps in the right order?",
	MsgLTVCoherenceAns:      "The timestamps were not generated in the right order!",
	MsgLTVDelay:             "Is the signing time within the timestamp delay?",
	MsgLTVDelayAns:          "The signature timestamp was produced too long after the signing time!",
	MsgLTVIssuance:          "Is the best-signature-time after the issuance of the signing certificate?",
	MsgLTVIssuanceAns:       "The best-signature-time is before the issuance of the signing certificate!",
	MsgLTVRevocationTime:    "Is the best-signature-time before the revocation time?",
	MsgLTVRevocationTimeAns: "The best-signature-time is not before the revocation time!",
	MsgLTVCertValidity:      "Is the signing certificate valid at the best-signature-time?",
	MsgLTVCertValidityAns:   "The signing certificate is not valid at the best-signature-time!",
	MsgLTVAlgorithm:         "Is the algorithm reliable at the best-signature-time?",
	MsgLTVAlgorithmAns:      "The algorithm is not reliable at the best-signature-time!",

	MsgUnexpectedError:   "An unexpected error occurred while validating the signature.",
	MsgFactError:         "The fact provider reported an error.",
	MsgCertifiedRoleOK:   "The certified role is valid at the validation time.",
	MsgBestSignatureTime: "Best-signature-time of the signature.",
}

// Text returns the catalog text for m, or the identifier itself when unknown.
func (m MessageID) Text() string {
	if t, ok := messageText[m]; ok {
		return t
	}
	return string(m)
}

// Attribute keys attached to trace nodes and messages.
const (
	AttrStatus                     = "Status"
	AttrExpectedValue              = "ExpectedValue"
	AttrConstraintValue            = "ConstraintValue"
	AttrLog                        = "Log"
	AttrURI                        = "Uri"
	AttrObjectReference            = "ObjectReference"
	AttrExpectedTypeList           = "ExpectedTypeList"
	AttrExpiredCertsRevocationInfo = "ExpiredCertsRevocationInfo"
	AttrNotBefore                  = "NotBefore"
	AttrNotAfter                   = "NotAfter"
	AttrValidationTime             = "ValidationTime"
	AttrAlgorithm                  = "Algorithm"
	AttrAlgorithmExpiration        = "AlgorithmExpirationDate"
	AttrCertificateID              = "CertificateId"
	AttrTimestampID                = "TimestampId"
	AttrBestSignatureTime          = "BestSignatureTime"
	AttrCause                      = "Cause"
	AttrSignatureID                = "SignatureId"
)

// Trace status values recorded under AttrStatus.
const (
	StatusIgnored     = "IGNORED"
	StatusInformation = "INFORMATION"
	StatusWarn        = "WARN"
	StatusOK          = "OK"
	StatusKO          = "KO"
)
