package usecase

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sigval/internal/domain"
)

// Subprocess names used as conclusion keys.
const (
	SubprocessGeneralStructure    = "GeneralStructure"
	SubprocessIdentification      = "IdentificationOfSigningCertificate"
	SubprocessCryptographic       = "CryptographicVerification"
	SubprocessX509Certificate     = "X509CertificateValidation"
	SubprocessSignatureAccept     = "SignatureAcceptanceValidation"
	SubprocessBasicValidation     = "BasicValidation"
	SubprocessTimestampValidation = "TimestampValidation"
	SubprocessLongTermValidation  = "LongTermValidation"
)

// ProcessContext is the run-scoped environment of one document validation.
// The fact tree and policy are shared read-only; per-signature results are
// merged through Record.
type ProcessContext struct {
	Diagnostic  *domain.DiagnosticData
	Policy      *domain.ValidationPolicy
	CurrentTime time.Time
	Logger      *zap.Logger

	mu       sync.Mutex
	general  *domain.Conclusion
	outcomes map[string]*SignatureOutcome
}

func NewProcessContext(diag *domain.DiagnosticData, policy *domain.ValidationPolicy, currentTime time.Time, logger *zap.Logger) *ProcessContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessContext{
		Diagnostic:  diag,
		Policy:      policy,
		CurrentTime: currentTime,
		Logger:      logger,
		outcomes:    map[string]*SignatureOutcome{},
	}
}

// SignatureOutcome carries the conclusions produced for one signature.
type SignatureOutcome struct {
	SignatureID       string
	Conclusions       map[string]*domain.Conclusion
	Timestamps        map[string]*domain.Conclusion
	BestSignatureTime time.Time
	Err               error
}

func newSignatureOutcome(id string) *SignatureOutcome {
	return &SignatureOutcome{
		SignatureID: id,
		Conclusions: map[string]*domain.Conclusion{},
		Timestamps:  map[string]*domain.Conclusion{},
	}
}

func (o *SignatureOutcome) Conclusion(subprocess string) *domain.Conclusion {
	if o == nil {
		return nil
	}
	return o.Conclusions[subprocess]
}

func (pc *ProcessContext) SetGeneralStructure(c *domain.Conclusion) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.general = c
}

func (pc *ProcessContext) GeneralStructure() *domain.Conclusion {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.general
}

// Record merges a signature outcome. Safe for concurrent use.
func (pc *ProcessContext) Record(o *SignatureOutcome) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.outcomes[o.SignatureID] = o
}

func (pc *ProcessContext) Outcome(signatureID string) (*SignatureOutcome, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	o, ok := pc.outcomes[signatureID]
	return o, ok
}

// ForSignature returns the per-signature view used by the signature
// subprocesses.
func (pc *ProcessContext) ForSignature(sig *domain.Signature) *SignatureContext {
	return &SignatureContext{
		Process:   pc,
		Signature: sig,
		Context:   pc.Policy.SignatureContext(sig),
		Outcome:   newSignatureOutcome(sig.ID),
	}
}

// SignatureContext is owned by the goroutine validating one signature.
type SignatureContext struct {
	Process   *ProcessContext
	Signature *domain.Signature
	Context   domain.Context
	Outcome   *SignatureOutcome
}

func (sc *SignatureContext) validate() error {
	if sc == nil || sc.Process == nil {
		return errors.Wrap(domain.ErrConfiguration, "missing process context")
	}
	if sc.Signature == nil {
		return errors.Wrap(domain.ErrConfiguration, "no signature to validate")
	}
	if sc.Process.CurrentTime.IsZero() {
		return errors.Wrap(domain.ErrConfiguration, "current time is not set")
	}
	return nil
}

func (sc *SignatureContext) certificate(id string) (*domain.Certificate, bool) {
	return sc.Process.Diagnostic.Certificate(id)
}

// constraint returns the configured constraint or nil when the check point is
// not configured.
func (pc *ProcessContext) constraint(ctx domain.Context, sub domain.SubContext, cp domain.CheckPoint) *Constraint {
	spec, ok := pc.Policy.Constraint(ctx, sub, cp)
	if !ok {
		return nil
	}
	return NewConstraint(cp, spec).SetCurrentTime(pc.CurrentTime)
}

// checkFunc is one step of a subprocess. It returns false to stop the
// subprocess.
type checkFunc func(conclusion *domain.Conclusion) bool

// runChecks drives the ordered steps and sets VALID only when every step
// asked to continue.
func runChecks(conclusion *domain.Conclusion, checks ...checkFunc) *domain.Conclusion {
	for _, check := range checks {
		if !check(conclusion) {
			return conclusion
		}
	}
	conclusion.SetIndication(domain.IndicationValid, "")
	return conclusion
}

// checkValue runs a configured value constraint. Unconfigured check points
// always continue.
func checkValue(parent *domain.TraceNode, conclusion *domain.Conclusion, c *Constraint, msg, failMsg domain.MessageID, ind domain.Indication, sub domain.SubIndication, value bool) bool {
	if c == nil {
		return true
	}
	c.Create(parent, msg)
	c.SetBoolValue(value)
	c.SetIndications(ind, sub, failMsg)
	c.SetConclusionReceiver(conclusion)
	return c.Check()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
