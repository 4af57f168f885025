package usecase

import (
	"context"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sigval/internal/domain"
)

// ValidationResult is the outcome of one engine run.
type ValidationResult struct {
	Report *domain.SimpleReport
	Trace  *domain.TraceNode
}

// Engine runs the validation pipeline for one document. With Parallel set,
// signatures are validated concurrently; results are merged through the
// process context.
type Engine struct {
	Logger   *zap.Logger
	Parallel bool

	GeneralStructure GeneralStructure
	Basic            BasicValidation
	Timestamp        TimestampValidation
	LongTerm         LongTermValidation
}

func NewEngine(logger *zap.Logger, parallel bool) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Logger: logger, Parallel: parallel}
}

// Validate only returns configuration errors; every validation failure is
// part of the report.
func (e *Engine) Validate(ctx context.Context, diag *domain.DiagnosticData, policy *domain.ValidationPolicy, currentTime time.Time) (*ValidationResult, error) {
	if diag == nil {
		return nil, errors.Wrap(domain.ErrConfiguration, "no diagnostic data")
	}
	if policy == nil {
		return nil, errors.Wrap(domain.ErrConfiguration, "no validation policy")
	}
	if currentTime.IsZero() {
		return nil, errors.Wrap(domain.ErrConfiguration, "no validation time")
	}
	logger := e.logger()
	pc := NewProcessContext(diag, policy, currentTime, logger)
	root := domain.NewTrace("ValidationData").
		SetAttribute("Policy", policy.Name).
		SetAttribute(domain.AttrValidationTime, formatTime(currentTime))

	gs := e.GeneralStructure.Run(pc, root)
	pc.SetGeneralStructure(gs)
	if gs.IsValid() {
		if err := e.validateSignatures(ctx, pc, root); err != nil {
			return nil, err
		}
	} else {
		logger.Debug("document structure rejected",
			zap.String("indication", string(gs.Indication)),
			zap.String("sub_indication", string(gs.SubIndication)))
	}

	report := SimpleReportBuilder{Logger: logger}.Build(pc)
	return &ValidationResult{Report: report, Trace: root}, nil
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) validateSignatures(ctx context.Context, pc *ProcessContext, root *domain.TraceNode) error {
	sigs := pc.Diagnostic.Signatures
	// Each goroutine only touches its own subtree.
	nodes := make([]*domain.TraceNode, len(sigs))
	for i := range sigs {
		nodes[i] = root.AddChild("Signature").SetAttribute(domain.AttrSignatureID, sigs[i].ID)
	}

	if !e.Parallel {
		for i := range sigs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.validateSignature(pc, &sigs[i], nodes[i]); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range sigs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return e.validateSignature(pc, &sigs[i], nodes[i])
		})
	}
	return g.Wait()
}

// validateSignature runs the per-signature subprocesses. A panic is confined
// to the signature and reported as an unexpected error.
func (e *Engine) validateSignature(pc *ProcessContext, sig *domain.Signature, node *domain.TraceNode) (err error) {
	sc := pc.ForSignature(sig)
	log := pc.Logger.With(zap.String("signature_id", sig.ID))
	log.Debug("signature validation started", zap.String("context", string(sc.Context)))
	defer func() {
		if rec := recover(); rec != nil {
			sc.Outcome.Err = errors.Newf("validating signature %s: %v", sig.ID, rec)
			pc.Record(sc.Outcome)
		}
	}()

	for i := range sig.Timestamps {
		ts := &sig.Timestamps[i]
		c := e.Timestamp.Run(pc, ts, node)
		sc.Outcome.Timestamps[ts.ID] = c
		log.Debug("subprocess finished",
			zap.String("subprocess", SubprocessTimestampValidation),
			zap.String("timestamp_id", ts.ID),
			zap.String("indication", string(c.Indication)))
	}
	if _, err := e.Basic.Run(sc, node); err != nil {
		return err
	}
	ltv, err := e.LongTerm.Run(sc, node)
	if err != nil {
		return err
	}
	pc.Record(sc.Outcome)
	log.Debug("signature validation finished", zap.String("indication", string(ltv.Indication)))
	return nil
}
