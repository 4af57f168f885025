package domain

// Indication is the top-level verdict of a validation process.
type Indication string

const (
	IndicationValid         Indication = "VALID"
	IndicationInvalid       Indication = "INVALID"
	IndicationIndeterminate Indication = "INDETERMINATE"
)

// SubIndication refines INVALID and INDETERMINATE indications.
type SubIndication string

const (
	SubFormatFailure                  SubIndication = "FORMAT_FAILURE"
	SubHashFailure                    SubIndication = "HASH_FAILURE"
	SubSigCryptoFailure               SubIndication = "SIG_CRYPTO_FAILURE"
	SubRevoked                        SubIndication = "REVOKED"
	SubSigConstraintsFailure          SubIndication = "SIG_CONSTRAINTS_FAILURE"
	SubChainConstraintsFailure        SubIndication = "CHAIN_CONSTRAINTS_FAILURE"
	SubCertificateChainGeneralFailure SubIndication = "CERTIFICATE_CHAIN_GENERAL_FAILURE"
	SubCryptoConstraintsFailure       SubIndication = "CRYPTO_CONSTRAINTS_FAILURE"
	SubCryptoConstraintsFailureNoPOE  SubIndication = "CRYPTO_CONSTRAINTS_FAILURE_NO_POE"
	SubExpired                        SubIndication = "EXPIRED"
	SubNotYetValid                    SubIndication = "NOT_YET_VALID"
	SubNoSigningCertificateFound      SubIndication = "NO_SIGNING_CERTIFICATE_FOUND"
	SubNoCertificateChainFound        SubIndication = "NO_CERTIFICATE_CHAIN_FOUND"
	SubRevokedNoPOE                   SubIndication = "REVOKED_NO_POE"
	SubRevokedCANoPOE                 SubIndication = "REVOKED_CA_NO_POE"
	SubOutOfBoundsNoPOE               SubIndication = "OUT_OF_BOUNDS_NO_POE"
	SubNoPOE                          SubIndication = "NO_POE"
	SubTryLater                       SubIndication = "TRY_LATER"
	SubSignedDataNotFound             SubIndication = "SIGNED_DATA_NOT_FOUND"
	SubTimestampOrderFailure          SubIndication = "TIMESTAMP_ORDER_FAILURE"
	SubUnexpectedError                SubIndication = "UNEXPECTED_ERROR"
	SubSomeNotValidSignatures         SubIndication = "SOME_NOT_VALID_SIGNATURES"
)

// POERecoverable reports whether a later validation with proof of existence may
// still turn a signature carrying this sub-indication VALID.
func (s SubIndication) POERecoverable() bool {
	switch s {
	case SubRevokedNoPOE, SubOutOfBoundsNoPOE, SubCryptoConstraintsFailureNoPOE:
		return true
	}
	return false
}
