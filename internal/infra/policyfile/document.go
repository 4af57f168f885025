package policyfile

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"sigval/internal/domain"
)

// dateFormat is the only accepted algorithm expiration date layout, written
// as policies spell it.
const (
	dateFormat = "yyyy-MM-dd"
	dateLayout = "2006-01-02"
)

type document struct {
	Name                           string                   `yaml:"name"`
	Description                    string                   `yaml:"description"`
	General                        map[string]constraintDoc `yaml:"general"`
	MainSignature                  *sectionDoc              `yaml:"mainSignature"`
	CounterSignature               *sectionDoc              `yaml:"counterSignature"`
	Timestamp                      *sectionDoc              `yaml:"timestamp"`
	Revocation                     *sectionDoc              `yaml:"revocation"`
	LongTerm                       map[string]constraintDoc `yaml:"longTerm"`
	ContentTimestampTypes          []string                 `yaml:"contentTimestampTypes"`
	ClaimedRolesAttendance         string                   `yaml:"claimedRolesAttendance"`
	RequireValidSignatureTimestamp *bool                    `yaml:"requireValidSignatureTimestamp"`
	Cryptography                   *cryptographyDoc         `yaml:"cryptography"`
}

type sectionDoc struct {
	Checks             map[string]constraintDoc `yaml:"checks"`
	SigningCertificate map[string]constraintDoc `yaml:"signingCertificate"`
	CACertificate      map[string]constraintDoc `yaml:"caCertificate"`
}

type constraintDoc struct {
	Level       string     `yaml:"level"`
	Expected    string     `yaml:"expected"`
	Identifiers []string   `yaml:"identifiers"`
	Min         *int       `yaml:"min"`
	Max         *int       `yaml:"max"`
	Crypto      *cryptoDoc `yaml:"crypto"`
}

type cryptoDoc struct {
	EncryptionAlgos []string       `yaml:"encryptionAlgos"`
	DigestAlgos     []string       `yaml:"digestAlgos"`
	MinKeySizes     map[string]int `yaml:"minKeySizes"`
}

type cryptographyDoc struct {
	AlgoExpirationDates    *expirationDoc `yaml:"algoExpirationDates"`
	MaxRevocationFreshness string         `yaml:"maxRevocationFreshness"`
	TimestampDelay         string         `yaml:"timestampDelay"`
}

type expirationDoc struct {
	Format string            `yaml:"format"`
	Algos  map[string]string `yaml:"algos"`
}

// Parse decodes one YAML policy document.
func Parse(data []byte, logger *zap.Logger) (*domain.ValidationPolicy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidPolicy, "decode yaml: %v", err)
	}
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return nil, errors.Wrap(domain.ErrInvalidPolicy, "policy name is required")
	}
	b := &builder{policy: domain.NewValidationPolicy(name), logger: logger.With(zap.String("policy", name))}
	b.policy.Description = doc.Description
	b.policy.ClaimedRolesAttendance = strings.ToUpper(strings.TrimSpace(doc.ClaimedRolesAttendance))
	if doc.RequireValidSignatureTimestamp != nil {
		b.policy.RequireValidSignatureTimestamp = *doc.RequireValidSignatureTimestamp
	}
	for _, t := range doc.ContentTimestampTypes {
		b.policy.ContentTimestampTypes = append(b.policy.ContentTimestampTypes, domain.TimestampType(strings.TrimSpace(t)))
	}

	b.section(domain.ContextGeneral, domain.SubContextNone, doc.General)
	b.signatureSection(domain.ContextMainSignature, doc.MainSignature)
	b.signatureSection(domain.ContextCounterSignature, doc.CounterSignature)
	b.signatureSection(domain.ContextTimestamp, doc.Timestamp)
	b.signatureSection(domain.ContextRevocation, doc.Revocation)
	b.section(domain.ContextLongTerm, domain.SubContextNone, doc.LongTerm)
	if doc.Cryptography != nil {
		b.cryptography(*doc.Cryptography)
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.policy, nil
}

type builder struct {
	policy *domain.ValidationPolicy
	logger *zap.Logger
	err    error
}

func (b *builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = errors.Wrapf(domain.ErrInvalidPolicy, format, args...)
	}
}

func (b *builder) signatureSection(ctx domain.Context, s *sectionDoc) {
	if s == nil {
		return
	}
	b.section(ctx, domain.SubContextNone, s.Checks)
	b.section(ctx, domain.SubContextSigningCertificate, s.SigningCertificate)
	b.section(ctx, domain.SubContextCACertificate, s.CACertificate)
}

func (b *builder) section(ctx domain.Context, sub domain.SubContext, checks map[string]constraintDoc) {
	for name, c := range checks {
		cp := domain.CheckPoint(strings.TrimSpace(name))
		if !cp.Known() {
			b.fail("unknown check point %q in %s", name, where(ctx, sub))
			return
		}
		if !cp.Accepts(ctx, sub) {
			b.fail("check point %s is not allowed in %s", cp, where(ctx, sub))
			return
		}
		level, ok := domain.ParseLevel(c.Level)
		if !ok {
			b.logger.Warn("unknown constraint level, check point ignored",
				zap.String("check_point", string(cp)),
				zap.String("context", where(ctx, sub)),
				zap.String("level", c.Level))
		}
		spec := domain.ConstraintSpec{
			Level:       level,
			Expected:    c.Expected,
			Identifiers: c.Identifiers,
			Min:         c.Min,
			Max:         c.Max,
		}
		if c.Crypto != nil {
			spec.Crypto = &domain.CryptoSpec{
				EncryptionAlgos: c.Crypto.EncryptionAlgos,
				DigestAlgos:     c.Crypto.DigestAlgos,
				MinKeySizes:     c.Crypto.MinKeySizes,
			}
		}
		b.policy.Set(ctx, sub, cp, spec)
	}
}

func (b *builder) cryptography(c cryptographyDoc) {
	if exp := c.AlgoExpirationDates; exp != nil {
		if exp.Format != "" && exp.Format != dateFormat {
			b.fail("unsupported algorithm expiration date format %q", exp.Format)
			return
		}
		for algo, raw := range exp.Algos {
			t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
			if err != nil {
				b.fail("expiration date of %s: %q is not %s", algo, raw, dateFormat)
				return
			}
			b.policy.AlgoExpirationDates[algo] = t
		}
	}
	b.policy.MaxRevocationFreshness = b.duration("maxRevocationFreshness", c.MaxRevocationFreshness)
	b.policy.TimestampDelay = b.duration("timestampDelay", c.TimestampDelay)
}

func (b *builder) duration(field, raw string) time.Duration {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d < 0 {
		b.fail("%s: invalid duration %q", field, raw)
		return 0
	}
	return d
}

func where(ctx domain.Context, sub domain.SubContext) string {
	if sub == domain.SubContextNone {
		return string(ctx)
	}
	return string(ctx) + "/" + string(sub)
}
