package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"sigval/internal/domain"
)

const (
	anyValue       = "*"
	trueValue      = "true"
	policyDateForm = "2006-01-02"
)

// Constraint is one policy rule instance. It is populated by a subprocess,
// checked once and folded into the receiving conclusion.
type Constraint struct {
	checkPoint domain.CheckPoint
	kind       domain.ConstraintKind
	spec       domain.ConstraintSpec
	level      domain.Level

	node  *domain.TraceNode
	msgID domain.MessageID

	value    string
	values   []string
	intValue int
	expected string

	indication    domain.Indication
	subIndication domain.SubIndication
	failureMsg    domain.MessageID
	attributes    map[string]string

	currentTime time.Time

	basic       domain.BasicSignature
	expirations map[string]time.Time

	notBefore   time.Time
	notAfter    time.Time
	expiredInfo *time.Time

	conclusion *domain.Conclusion
	checked    bool
	result     bool
}

// NewConstraint builds the constraint for cp from its policy spec. The
// variant is fixed by the check point, never by the spec.
func NewConstraint(cp domain.CheckPoint, spec domain.ConstraintSpec) *Constraint {
	c := &Constraint{
		checkPoint: cp,
		kind:       cp.Kind(),
		spec:       spec,
		level:      spec.Level,
		expected:   spec.Expected,
		attributes: map[string]string{},
	}
	if c.level == "" {
		c.level = domain.LevelFail
	}
	if c.kind == domain.KindValue && c.expected == "" && len(spec.Identifiers) == 0 {
		c.expected = trueValue
	}
	return c
}

// Create attaches the trace node for this check point under parent.
func (c *Constraint) Create(parent *domain.TraceNode, msgID domain.MessageID) *domain.TraceNode {
	c.msgID = msgID
	c.node = parent.AddChild("Constraint")
	c.node.SetAttribute("Id", string(msgID))
	c.node.SetAttribute("Name", msgID.Text())
	return c.node
}

func (c *Constraint) Level() domain.Level { return c.level }

func (c *Constraint) SetValue(v string) *Constraint {
	c.value = v
	return c
}

func (c *Constraint) SetBoolValue(v bool) *Constraint {
	return c.SetValue(strconv.FormatBool(v))
}

func (c *Constraint) SetIntValue(v int) *Constraint {
	c.intValue = v
	c.value = strconv.Itoa(v)
	return c
}

// SetValues sets a multi-valued actual value for CheckInList.
func (c *Constraint) SetValues(vs []string) *Constraint {
	c.values = vs
	c.value = strings.Join(vs, ",")
	return c
}

func (c *Constraint) SetExpectedValue(v string) *Constraint {
	c.expected = v
	return c
}

// SetIndications configures what a failed FAIL-level check writes to the
// conclusion.
func (c *Constraint) SetIndications(ind domain.Indication, sub domain.SubIndication, failureMsg domain.MessageID) *Constraint {
	c.indication = ind
	c.subIndication = sub
	c.failureMsg = failureMsg
	return c
}

func (c *Constraint) SetAttribute(key, value string) *Constraint {
	c.attributes[key] = value
	return c
}

func (c *Constraint) SetConclusionReceiver(conclusion *domain.Conclusion) *Constraint {
	c.conclusion = conclusion
	return c
}

func (c *Constraint) SetCurrentTime(t time.Time) *Constraint {
	c.currentTime = t
	return c
}

// SetCryptographic sets the algorithms and key length under test and the
// expiration table they are checked against.
func (c *Constraint) SetCryptographic(basic domain.BasicSignature, expirations map[string]time.Time) *Constraint {
	c.basic = basic
	c.expirations = expirations
	c.value = basic.EncryptionAlgo + strconv.Itoa(basic.KeyLength) + "/" + basic.DigestAlgo
	return c
}

// SetCertificateValidity sets the validity window under test. expiredInfo is
// the trust service's expired-certs-revocation-info date, if any.
func (c *Constraint) SetCertificateValidity(notBefore, notAfter time.Time, expiredInfo *time.Time) *Constraint {
	c.notBefore = notBefore
	c.notAfter = notAfter
	c.expiredInfo = expiredInfo
	return c
}

// Check evaluates the constraint and records the outcome. It returns false
// only when a FAIL-level check did not match, in which case the owning
// subprocess must stop.
func (c *Constraint) Check() bool {
	return c.run(false)
}

// CheckInList is Check with set membership: any actual value in the accepted
// identifiers matches, and an expected value of "*" matches everything.
func (c *Constraint) CheckInList() bool {
	return c.run(true)
}

func (c *Constraint) run(inList bool) bool {
	if c.checked {
		return c.result
	}
	c.checked = true
	c.result = c.evaluate(inList)
	return c.result
}

func (c *Constraint) evaluate(inList bool) bool {
	switch c.level {
	case domain.LevelIgnore:
		c.status(domain.StatusIgnored)
		return true
	case domain.LevelInform:
		c.status(domain.StatusInformation)
		c.recordAttributes()
		c.nodeMessage("Info", c.msgID)
		if c.conclusion != nil {
			c.conclusion.AddInfo(c.msgID, c.attributes)
		}
		return true
	}

	var matches bool
	switch c.kind {
	case domain.KindElementCount:
		matches = c.countMatches()
	case domain.KindCryptographic:
		matches = c.cryptoMatches()
	case domain.KindCertificateExpiration:
		matches = c.validityMatches()
	default:
		if inList {
			matches = c.listMatches()
		} else {
			matches = c.expected == anyValue || c.value == c.expected
		}
	}

	if matches {
		c.status(domain.StatusOK)
		c.recordAttributes()
		return true
	}
	c.recordExpected()
	if c.level == domain.LevelWarn {
		c.status(domain.StatusWarn)
		c.recordAttributes()
		c.nodeMessage("Warning", c.failureMsg)
		if c.conclusion != nil {
			c.conclusion.AddWarning(c.failureMsg, c.attributes)
		}
		return true
	}
	c.status(domain.StatusKO)
	c.recordAttributes()
	c.nodeMessage("Error", c.failureMsg)
	if c.conclusion != nil {
		c.conclusion.SetIndication(c.indication, c.subIndication)
		c.conclusion.AddError(c.failureMsg, c.attributes)
	}
	return false
}

func (c *Constraint) listMatches() bool {
	if c.expected == anyValue {
		return true
	}
	accepted := c.spec.Identifiers
	for _, id := range accepted {
		if id == anyValue {
			return true
		}
	}
	values := c.values
	if values == nil && c.value != "" {
		values = []string{c.value}
	}
	for _, v := range values {
		for _, id := range accepted {
			if v == id {
				return true
			}
		}
	}
	return false
}

func (c *Constraint) countMatches() bool {
	if c.spec.Min != nil && c.intValue < *c.spec.Min {
		return false
	}
	if c.spec.Max != nil && c.intValue > *c.spec.Max {
		return false
	}
	return true
}

func (c *Constraint) validityMatches() bool {
	if c.expiredInfo != nil {
		c.attributes[domain.AttrExpiredCertsRevocationInfo] = c.expiredInfo.UTC().Format(time.RFC3339)
		if c.conclusion != nil {
			c.conclusion.AddInfo(c.msgID, map[string]string{
				domain.AttrExpiredCertsRevocationInfo: c.expiredInfo.UTC().Format(time.RFC3339),
			})
		}
		return true
	}
	c.attributes[domain.AttrNotBefore] = c.notBefore.UTC().Format(time.RFC3339)
	c.attributes[domain.AttrNotAfter] = c.notAfter.UTC().Format(time.RFC3339)
	c.attributes[domain.AttrValidationTime] = c.currentTime.UTC().Format(time.RFC3339)
	return !c.currentTime.Before(c.notBefore) && !c.currentTime.After(c.notAfter)
}

func (c *Constraint) cryptoMatches() bool {
	crypto := c.spec.Crypto
	if crypto == nil {
		return true
	}
	enc, dig := c.basic.EncryptionAlgo, c.basic.DigestAlgo
	if len(crypto.EncryptionAlgos) > 0 && !containsFold(crypto.EncryptionAlgos, enc) {
		c.attributes[domain.AttrAlgorithm] = enc
		return false
	}
	if len(crypto.DigestAlgos) > 0 && !containsFold(crypto.DigestAlgos, dig) {
		c.attributes[domain.AttrAlgorithm] = dig
		return false
	}
	if minSize, ok := lookupFold(crypto.MinKeySizes, enc); ok && c.basic.KeyLength < minSize {
		c.attributes[domain.AttrAlgorithm] = enc + strconv.Itoa(c.basic.KeyLength)
		return false
	}
	for _, name := range []string{enc + strconv.Itoa(c.basic.KeyLength), dig} {
		exp, ok := lookupFold(c.expirations, name)
		if !ok {
			continue
		}
		if !c.currentTime.Before(exp) {
			c.attributes[domain.AttrAlgorithm] = name
			c.attributes[domain.AttrAlgorithmExpiration] = exp.Format(policyDateForm)
			return false
		}
	}
	return true
}

func (c *Constraint) status(s string) {
	if c.node != nil {
		c.node.SetAttribute(domain.AttrStatus, s)
	}
}

func (c *Constraint) recordExpected() {
	if c.node == nil {
		return
	}
	switch c.kind {
	case domain.KindValue:
		expected := c.expected
		if len(c.spec.Identifiers) > 0 && expected != anyValue {
			expected = strings.Join(c.spec.Identifiers, ",")
		}
		c.node.SetAttribute(domain.AttrExpectedValue, expected)
		c.node.SetAttribute(domain.AttrConstraintValue, c.value)
	case domain.KindElementCount:
		c.node.SetAttribute(domain.AttrExpectedValue, rangeString(c.spec.Min, c.spec.Max))
		c.node.SetAttribute(domain.AttrConstraintValue, c.value)
	}
}

func (c *Constraint) recordAttributes() {
	if c.node == nil {
		return
	}
	keys := make([]string, 0, len(c.attributes))
	for k := range c.attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.node.SetAttribute(k, c.attributes[k])
	}
}

func (c *Constraint) nodeMessage(kind string, id domain.MessageID) {
	if c.node == nil || id == "" {
		return
	}
	c.node.AddChild(kind).SetAttribute("NameId", string(id)).SetAttribute("Text", id.Text())
}

func rangeString(lower, upper *int) string {
	lo, hi := "", ""
	if lower != nil {
		lo = strconv.Itoa(*lower)
	}
	if upper != nil {
		hi = strconv.Itoa(*upper)
	}
	return "[" + lo + ".." + hi + "]"
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func lookupFold[V any](m map[string]V, key string) (V, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
